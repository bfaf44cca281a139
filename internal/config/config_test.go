package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db.internal"
user = "booking"
password = "from-file"
dbname = "booking"

[logs]
level = "debug"

[redis]
enabled = true
addr = "redis:6379"

[booking]
timezone = "Europe/London"

[cors]
allowed_origins = ["https://tattsync.co.uk"]
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ShutdownTimeout) // default
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"https://tattsync.co.uk"}, cfg.CORS.AllowedOrigins)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal port=5432 user=booking")

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("DB_HOST", "pg")
	t.Setenv("HTTP_PORT", "8181")
	t.Setenv("REDIS_ADDR", "cache:6380")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "pg", cfg.Database.Host)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
	assert.Equal(t, "cache:6380", cfg.Redis.Addr)
}

func TestLoad_BadPortEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "eighty")

	_, err := Load(writeConfig(t, sampleConfig))
	assert.ErrorContains(t, err, "HTTP_PORT")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := defaults()
	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, "database.host is required")
	assert.ErrorContains(t, err, "database.user is required")

	cfg.Database.Host = "localhost"
	cfg.Database.User = "u"
	cfg.Database.DBName = "d"
	assert.NoError(t, cfg.Validate())

	cfg.Booking.Timezone = "Mars/Olympus"
	assert.ErrorContains(t, cfg.Validate(), "booking.timezone")

	cfg.Booking.Timezone = "UTC"
	cfg.Redis.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "redis.addr")
}

package calendar

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newConfig(open, closeAt string, duration int) *domain.BookingConfig {
	return &domain.BookingConfig{
		Enabled:             true,
		OpenTime:            types.MustTimeString(open),
		CloseTime:           types.MustTimeString(closeAt),
		SlotDurationMinutes: duration,
	}
}

func spans(windows []domain.TimeWindow) []string {
	out := make([]string, 0, len(windows))
	for _, w := range windows {
		out = append(out, w.Start.String()+"-"+w.End.String())
	}
	return out
}

func TestGenerateWindows(t *testing.T) {
	tests := []struct {
		name     string
		open     string
		closeAt  string
		duration int
		want     []string
	}{
		{"even span", "10:00", "11:00", 30, []string{"10:00-10:30", "10:30-11:00"}},
		{"remainder dropped", "10:00", "11:05", 30, []string{"10:00-10:30", "10:30-11:00"}},
		{"single window", "09:00", "10:00", 60, []string{"09:00-10:00"}},
		{"duration longer than span", "10:00", "10:20", 30, []string{}},
		{"close equals open", "10:00", "10:00", 30, []string{}},
		{"close before open", "12:00", "10:00", 30, []string{}},
		{"zero duration", "10:00", "12:00", 0, []string{}},
		{"runs to midnight", "23:00", "24:00", 30, []string{"23:00-23:30", "23:30-24:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectWindows(testDate, newConfig(tt.open, tt.closeAt, tt.duration))
			assert.Equal(t, tt.want, spans(got))
		})
	}
}

func TestGenerateWindows_ContiguousAndSized(t *testing.T) {
	cfg := newConfig("10:00", "18:00", 45)
	windows := CollectWindows(testDate, cfg)

	require.Len(t, windows, 10) // 480 / 45 = 10, remainder 30 dropped
	assert.True(t, windows[0].Start.Equal(cfg.OpenTime))
	for i, w := range windows {
		assert.Equal(t, 45, w.DurationMinutes())
		assert.False(t, w.End.IsAfter(cfg.CloseTime))
		if i > 0 {
			assert.True(t, windows[i-1].End.Equal(w.Start))
		}
	}
}

func TestGenerateWindows_Restartable(t *testing.T) {
	seq := GenerateWindows(testDate, newConfig("10:00", "12:00", 30))

	first := slices.Collect(seq)
	second := slices.Collect(seq)

	require.Len(t, first, 4)
	assert.Equal(t, first, second)
	assert.Equal(t, "2024-06-01_10:00-10:30", first[0].ID)
}

func TestGenerateWindows_EarlyStop(t *testing.T) {
	count := 0
	for range GenerateWindows(testDate, newConfig("10:00", "18:00", 30)) {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestGenerateWindows_NormalizesDate(t *testing.T) {
	london := time.FixedZone("BST", 3600)
	date := time.Date(2024, 6, 1, 23, 30, 0, 0, london)

	windows := CollectWindows(date, newConfig("10:00", "11:00", 60))

	require.Len(t, windows, 1)
	assert.Equal(t, "2024-06-01_10:00-11:00", windows[0].ID)
}

func TestFindWindow(t *testing.T) {
	cfg := newConfig("10:00", "12:00", 30)

	w, ok := FindWindow(testDate, cfg, types.MustTimeString("10:30"))
	require.True(t, ok)
	assert.Equal(t, "11:00", w.End.String())

	_, ok = FindWindow(testDate, cfg, types.MustTimeString("10:15"))
	assert.False(t, ok)

	_, ok = FindWindow(testDate, cfg, types.MustTimeString("12:00"))
	assert.False(t, ok)
}

package update_booking_config

import (
	"context"

	"github.com/NeedlesUK/tattsync2-sub002/internal/service/config/models"
)

type ConfigService interface {
	Upsert(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

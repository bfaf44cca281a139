package delete_booking_config

import (
	"context"

	"github.com/NeedlesUK/tattsync2-sub002/internal/service/config/models"
)

type ConfigService interface {
	Delete(ctx context.Context, req *models.DeleteConfigRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package notifier

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Publisher часть *redis.Client, нужная для публикации событий
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// FailureRecorder учёт неудачных уведомлений (*metrics.Metrics)
type FailureRecorder interface {
	IncNotificationFailure(event string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

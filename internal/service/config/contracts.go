package config

import (
	"context"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// ConfigRepository интерфейс репозитория настроек календаря
type ConfigRepository interface {
	Get(ctx context.Context, resourceID, eventID int64) (*domain.BookingConfig, error)
	Upsert(ctx context.Context, cfg *domain.BookingConfig) (*domain.BookingConfig, error)
	Delete(ctx context.Context, resourceID, eventID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_available_windows

import (
	"context"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveByDate(ctx context.Context, resourceID, eventID int64, date time.Time) ([]*domain.Reservation, error)
}

// ConfigRepository интерфейс репозитория настроек календаря
type ConfigRepository interface {
	Get(ctx context.Context, resourceID, eventID int64) (*domain.BookingConfig, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

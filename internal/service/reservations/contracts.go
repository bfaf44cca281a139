package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/internal/integrations/notifier"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	Cancel(ctx context.Context, id uuid.UUID, by domain.CancelledBy, reason *string, at time.Time) error
	Complete(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ConfigRepository интерфейс репозитория настроек календаря
type ConfigRepository interface {
	Get(ctx context.Context, resourceID, eventID int64) (*domain.BookingConfig, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений после коммита
type Notifier interface {
	NotifyAsync(evt notifier.ReservationEvent)
}

// OperationRecorder счётчик операций над бронированиями
type OperationRecorder interface {
	IncReservationOperation(operation, result string)
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

package notifier

import (
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// EventType тип события о бронировании
type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
	EventReservationCompleted EventType = "reservation.completed"
)

// ReservationEvent сообщение, которое получает почтовый сервис
type ReservationEvent struct {
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id"`
	ResourceID    int64     `json:"resource_id"`
	EventID       int64     `json:"event_id"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`

	OccupantName  string `json:"occupant_name"`
	OccupantEmail string `json:"occupant_email"`
	OccupantPhone string `json:"occupant_phone"`

	CancelledBy        *string   `json:"cancelled_by,omitempty"`
	CancellationReason *string   `json:"cancellation_reason,omitempty"`
	OccurredAt         time.Time `json:"occurred_at"`
}

// NewReservationEvent собирает событие из бронирования
func NewReservationEvent(eventType EventType, r *domain.Reservation, at time.Time) ReservationEvent {
	evt := ReservationEvent{
		Type:               eventType,
		ReservationID:      r.ID.String(),
		ResourceID:         r.ResourceID,
		EventID:            r.EventID,
		Date:               r.BookingDate.Format(domain.DateFormat),
		StartTime:          r.StartTime.String(),
		EndTime:            r.EndTime.String(),
		Status:             string(r.Status),
		OccupantName:       r.Occupant.Name,
		OccupantEmail:      r.Occupant.Email,
		OccupantPhone:      r.Occupant.Phone,
		CancellationReason: r.CancellationReason,
		OccurredAt:         at.UTC(),
	}
	if r.CancelledBy != nil {
		by := string(*r.CancelledBy)
		evt.CancelledBy = &by
	}
	return evt
}

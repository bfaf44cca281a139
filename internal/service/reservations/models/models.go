package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// Request модели

// CancelReservationRequest запрос на отмену бронирования.
// Владелец календаря определяется по UserID, клиент - по email из бронирования.
type CancelReservationRequest struct {
	UserID int64   `json:"-"`
	Email  string  `json:"email,omitempty"`
	Reason *string `json:"reason,omitempty"`
}

// GetReservationRequest запрос на просмотр бронирования
type GetReservationRequest struct {
	ID     uuid.UUID
	UserID int64
	Email  string
}

// ListReservationsRequest запрос списка бронирований ресурса (для владельца)
type ListReservationsRequest struct {
	UserID           int64
	ResourceID       int64
	EventID          int64
	StartDate        *time.Time
	EndDate          *time.Time
	Status           *string
	IncludeCancelled bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		ResourceID:       r.ResourceID,
		EventID:          r.EventID,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.StartDate != nil && r.EndDate != nil && r.EndDate.Before(*r.StartDate) {
		return filter, fmt.Errorf("endDate is before startDate")
	}

	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		if !status.IsValid() {
			return filter, fmt.Errorf("unknown status %q", *r.Status)
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// OccupantResponse контактные данные клиента
type OccupantResponse struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	Note  *string `json:"note,omitempty"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID          string           `json:"id"`
	ResourceID  int64            `json:"resourceId"`
	EventID     int64            `json:"eventId"`
	WindowID    string           `json:"windowId"`
	BookingDate string           `json:"bookingDate"` // "2025-10-15"
	StartTime   string           `json:"startTime"`   // "10:00"
	EndTime     string           `json:"endTime"`
	Status      string           `json:"status"`
	Occupant    OccupantResponse `json:"occupant"`

	CancelledBy        *string `json:"cancelledBy,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601
	CompletedAt        *string `json:"completedAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:          r.ID.String(),
		ResourceID:  r.ResourceID,
		EventID:     r.EventID,
		WindowID:    domain.WindowID(r.BookingDate, r.StartTime, r.EndTime),
		BookingDate: r.BookingDate.Format(domain.DateFormat),
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		Status:      string(r.Status),
		Occupant: OccupantResponse{
			Name:  r.Occupant.Name,
			Email: r.Occupant.Email,
			Phone: r.Occupant.Phone,
			Note:  r.Occupant.Note,
		},
		CancellationReason: r.CancellationReason,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}

	if r.CancelledBy != nil {
		by := string(*r.CancelledBy)
		resp.CancelledBy = &by
	}
	if r.CancelledAt != nil {
		s := r.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &s
	}
	if r.CompletedAt != nil {
		s := r.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &s
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(reservations)),
	}

	for _, r := range reservations {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}

	return resp
}

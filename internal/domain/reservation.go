package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusUpcoming  ReservationStatus = "upcoming"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CancelledBy identifies who cancelled a reservation
type CancelledBy string

const (
	CancelledByClient CancelledBy = "client"
	CancelledByOwner  CancelledBy = "owner"
)

// Occupant contact details of the person holding a reservation
type Occupant struct {
	Name  string
	Email string
	Phone string
	Note  *string
}

// Reservation represents a booked time window on a resource calendar.
// Reservations are never deleted, cancellation is a status change.
type Reservation struct {
	ID          uuid.UUID
	ResourceID  int64
	EventID     int64
	BookingDate time.Time
	StartTime   types.TimeString
	EndTime     types.TimeString
	Occupant    Occupant
	Status      ReservationStatus

	CancelledBy        *CancelledBy
	CancellationReason *string
	CancelledAt        *time.Time
	CompletedAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation occupies its window
func (r *Reservation) IsActive() bool {
	return r.Status == StatusUpcoming || r.Status == StatusCompleted
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusUpcoming
}

// CanBeCompleted returns true if the reservation can be marked completed
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == StatusUpcoming
}

// StartsAt returns the start instant of the reservation in loc
func (r *Reservation) StartsAt(loc *time.Location) time.Time {
	return r.StartTime.OnDate(r.BookingDate, loc)
}

// Overlaps returns true if both reservations share a date and their spans intersect
func (r *Reservation) Overlaps(other *Reservation) bool {
	if !SameDate(r.BookingDate, other.BookingDate) {
		return false
	}
	return r.StartTime.Minutes() < other.EndTime.Minutes() &&
		other.StartTime.Minutes() < r.EndTime.Minutes()
}

// SameDate compares calendar dates ignoring clock and location
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ReservationsFilter filter for listing reservations of a resource
type ReservationsFilter struct {
	ResourceID       int64              // Required
	EventID          int64              // Required
	StartDate        *time.Time         // Optional lower bound (inclusive)
	EndDate          *time.Time         // Optional upper bound (inclusive)
	Status           *ReservationStatus // Optional
	IncludeCancelled bool
}

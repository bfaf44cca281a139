package domain

import (
	"slices"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

// BookingConfig represents the booking calendar settings of one resource at one event
type BookingConfig struct {
	ResourceID                int64
	EventID                   int64
	OwnerID                   int64 // user that manages the calendar
	Enabled                   bool
	SlotDurationMinutes       int
	OpenTime                  types.TimeString
	CloseTime                 types.TimeString
	BufferMinutes             int
	AvailableDates            []time.Time
	MaxBookingsPerDay         int // 0 = unlimited
	AllowClientCancellation   bool
	CancellationDeadlineHours int
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// NewDefaultBookingConfig returns a disabled config with default values
func NewDefaultBookingConfig(resourceID, eventID, ownerID int64) *BookingConfig {
	return &BookingConfig{
		ResourceID:                resourceID,
		EventID:                   eventID,
		OwnerID:                   ownerID,
		SlotDurationMinutes:       DefaultSlotDurationMinutes,
		OpenTime:                  types.MustTimeString(DefaultOpenTime),
		CloseTime:                 types.MustTimeString(DefaultCloseTime),
		BufferMinutes:             DefaultBufferMinutes,
		MaxBookingsPerDay:         DefaultMaxBookingsPerDay,
		AllowClientCancellation:   true,
		CancellationDeadlineHours: DefaultCancellationDeadlineHours,
	}
}

// IsOwner returns true if userID manages this calendar
func (c *BookingConfig) IsOwner(userID int64) bool {
	return userID != 0 && c.OwnerID == userID
}

// IsDateAvailable returns true if date is one of the available dates
func (c *BookingConfig) IsDateAvailable(date time.Time) bool {
	return slices.ContainsFunc(c.AvailableDates, func(d time.Time) bool {
		return SameDate(d, date)
	})
}

// HasDailyCap returns true if there is a limit on reservations per day
func (c *BookingConfig) HasDailyCap() bool {
	return c.MaxBookingsPerDay > 0
}

// CancellationDeadline returns the last instant a client may cancel a reservation starting at start
func (c *BookingConfig) CancellationDeadline(start time.Time) time.Time {
	return start.Add(-time.Duration(c.CancellationDeadlineHours) * time.Hour)
}

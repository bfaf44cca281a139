package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

// TimeWindow represents one bookable interval on a calendar date
type TimeWindow struct {
	ID       string
	Date     time.Time
	Start    types.TimeString
	End      types.TimeString
	Occupied bool
	// Buffered is set when the window is free but intersects a reservation
	// span widened by the buffer
	Buffered bool

	ReservationID *uuid.UUID
	Occupant      *Occupant
}

// WindowID builds the stable window identifier YYYY-MM-DD_HH:MM-HH:MM
func WindowID(date time.Time, start, end types.TimeString) string {
	return fmt.Sprintf("%s_%s-%s", date.Format(DateFormat), start, end)
}

// ParseWindowID splits a window identifier back into date, start and end
func ParseWindowID(id string) (time.Time, types.TimeString, types.TimeString, error) {
	datePart, span, ok := strings.Cut(id, "_")
	if !ok {
		return time.Time{}, types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: malformed window id %q", ErrValidation, id)
	}
	startPart, endPart, ok := strings.Cut(span, "-")
	if !ok {
		return time.Time{}, types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: malformed window id %q", ErrValidation, id)
	}

	date, err := time.Parse(DateFormat, datePart)
	if err != nil {
		return time.Time{}, types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: window id date: %v", ErrValidation, err)
	}
	start, err := types.NewTimeStringFromString(startPart)
	if err != nil {
		return time.Time{}, types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: window id start: %v", ErrValidation, err)
	}
	end, err := types.NewTimeStringFromString(endPart)
	if err != nil {
		return time.Time{}, types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: window id end: %v", ErrValidation, err)
	}
	if !start.IsBefore(end) {
		return time.Time{}, types.TimeString{}, types.TimeString{}, fmt.Errorf("%w: window id %q ends before it starts", ErrValidation, id)
	}

	return date, start, end, nil
}

// IsBookable returns true if the window can take a new reservation
func (w *TimeWindow) IsBookable() bool {
	return !w.Occupied && !w.Buffered
}

// DurationMinutes returns the window length
func (w *TimeWindow) DurationMinutes() int {
	return w.End.Minutes() - w.Start.Minutes()
}

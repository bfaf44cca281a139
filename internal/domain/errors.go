package domain

import (
	"errors"
	"fmt"
)

// Виды ошибок. Каждая конкретная ошибка оборачивает ровно один вид,
// поэтому вызывающий код может проверять errors.Is как по причине, так и по виду.
var (
	// ErrValidation некорректные входные данные или занятое окно
	ErrValidation = errors.New("validation error")

	// ErrPolicy действие запрещено настройками календаря
	ErrPolicy = errors.New("policy error")

	// ErrState недопустимый переход статуса
	ErrState = errors.New("state error")

	// ErrNotFound объект не найден
	ErrNotFound = errors.New("not found")
)

var (
	ErrSlotOccupied    = fmt.Errorf("%w: time window is already occupied", ErrValidation)
	ErrWindowOffGrid   = fmt.Errorf("%w: start time does not match any generated window", ErrValidation)
	ErrDateUnavailable = fmt.Errorf("%w: date is not available for booking", ErrValidation)
	ErrDateInPast      = fmt.Errorf("%w: time window is in the past", ErrValidation)
	ErrInvalidOccupant = fmt.Errorf("%w: invalid occupant details", ErrValidation)
	ErrInvalidConfig   = fmt.Errorf("%w: invalid booking configuration", ErrValidation)

	ErrBookingDisabled            = fmt.Errorf("%w: booking is disabled for this resource", ErrPolicy)
	ErrDailyCapReached            = fmt.Errorf("%w: daily booking limit reached", ErrPolicy)
	ErrClientCancellationDisabled = fmt.Errorf("%w: client cancellation is not allowed", ErrPolicy)
	ErrCancellationDeadlinePassed = fmt.Errorf("%w: cancellation deadline has passed", ErrPolicy)
	ErrAccessDenied               = fmt.Errorf("%w: access denied", ErrPolicy)

	ErrInvalidTransition       = fmt.Errorf("%w: reservation status transition is not allowed", ErrState)
	ErrOverlappingReservations = fmt.Errorf("%w: reservations overlap", ErrState)

	ErrReservationNotFound = fmt.Errorf("%w: reservation", ErrNotFound)
	ErrConfigNotFound      = fmt.Errorf("%w: booking configuration", ErrNotFound)
)

// FieldError ошибка валидации конкретного поля формы
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Unwrap позволяет проверять errors.Is(err, ErrValidation)
func (e *FieldError) Unwrap() error {
	return ErrInvalidOccupant
}

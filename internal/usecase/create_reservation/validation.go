package create_reservation

import (
	"fmt"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// validateRequest валидирует входные данные запроса, включая поля формы клиента
func validateRequest(req *Request) error {
	if req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	if req.EventID <= 0 {
		return fmt.Errorf("%w: eventID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return domain.ValidateOccupant(req.Occupant)
}

// dateOnly отбрасывает время и зону, оставляя календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

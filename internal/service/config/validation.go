package config

import (
	"fmt"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// ValidateConfig проверяет настройки календаря целиком.
// Все ошибки оборачивают domain.ErrInvalidConfig.
func ValidateConfig(c *domain.BookingConfig) error {
	if c.SlotDurationMinutes < domain.MinSlotDurationMinutes || c.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be between %d and %d",
			domain.ErrInvalidConfig, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if err := c.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: openTime: %v", domain.ErrInvalidConfig, err)
	}
	if err := c.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: closeTime: %v", domain.ErrInvalidConfig, err)
	}
	if !c.OpenTime.IsBefore(c.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", domain.ErrInvalidConfig)
	}

	// Хотя бы одно окно должно помещаться в рабочий день
	if span := c.CloseTime.Minutes() - c.OpenTime.Minutes(); c.SlotDurationMinutes > span {
		return fmt.Errorf("%w: slot of %d min does not fit into %s-%s",
			domain.ErrInvalidConfig, c.SlotDurationMinutes, c.OpenTime, c.CloseTime)
	}

	if c.BufferMinutes < domain.MinBufferMinutes || c.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			domain.ErrInvalidConfig, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if c.MaxBookingsPerDay < domain.MinMaxBookingsPerDay || c.MaxBookingsPerDay > domain.MaxMaxBookingsPerDay {
		return fmt.Errorf("%w: maxBookingsPerDay must be between %d and %d",
			domain.ErrInvalidConfig, domain.MinMaxBookingsPerDay, domain.MaxMaxBookingsPerDay)
	}

	if c.CancellationDeadlineHours < domain.MinCancellationDeadlineHours ||
		c.CancellationDeadlineHours > domain.MaxCancellationDeadlineHours {
		return fmt.Errorf("%w: cancellationDeadlineHours must be between %d and %d",
			domain.ErrInvalidConfig, domain.MinCancellationDeadlineHours, domain.MaxCancellationDeadlineHours)
	}

	if len(c.AvailableDates) > domain.MaxAvailableDates {
		return fmt.Errorf("%w: at most %d available dates are allowed", domain.ErrInvalidConfig, domain.MaxAvailableDates)
	}

	return nil
}

package models

import (
	"fmt"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

// Request модели

// UpdateConfigRequest запрос на создание или обновление настроек календаря.
// Все поля опциональны - обновляются только переданные значения,
// при создании остальные берутся по умолчанию.
type UpdateConfigRequest struct {
	UserID                    int64     `json:"-"`
	ResourceID                int64     `json:"-"`
	EventID                   int64     `json:"-"`
	Enabled                   *bool     `json:"enabled,omitempty"`
	SlotDurationMinutes       *int      `json:"slotDurationMinutes,omitempty"`
	OpenTime                  *string   `json:"openTime,omitempty"`  // HH:MM
	CloseTime                 *string   `json:"closeTime,omitempty"` // HH:MM, допускается 24:00
	BufferMinutes             *int      `json:"bufferMinutes,omitempty"`
	AvailableDates            *[]string `json:"availableDates,omitempty"` // YYYY-MM-DD
	MaxBookingsPerDay         *int      `json:"maxBookingsPerDay,omitempty"`
	AllowClientCancellation   *bool     `json:"allowClientCancellation,omitempty"`
	CancellationDeadlineHours *int      `json:"cancellationDeadlineHours,omitempty"`
}

// DeleteConfigRequest запрос на удаление настроек календаря
type DeleteConfigRequest struct {
	UserID     int64
	ResourceID int64
	EventID    int64
}

// Response модели

// ConfigResponse ответ с настройками календаря
type ConfigResponse struct {
	ResourceID                int64     `json:"resourceId"`
	EventID                   int64     `json:"eventId"`
	OwnerID                   int64     `json:"ownerId"`
	Enabled                   bool      `json:"enabled"`
	SlotDurationMinutes       int       `json:"slotDurationMinutes"`
	OpenTime                  string    `json:"openTime"`
	CloseTime                 string    `json:"closeTime"`
	BufferMinutes             int       `json:"bufferMinutes"`
	AvailableDates            []string  `json:"availableDates"`
	MaxBookingsPerDay         int       `json:"maxBookingsPerDay"`
	AllowClientCancellation   bool      `json:"allowClientCancellation"`
	CancellationDeadlineHours int       `json:"cancellationDeadlineHours"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO
func FromDomainConfig(c *domain.BookingConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	dates := make([]string, 0, len(c.AvailableDates))
	for _, d := range c.AvailableDates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	return &ConfigResponse{
		ResourceID:                c.ResourceID,
		EventID:                   c.EventID,
		OwnerID:                   c.OwnerID,
		Enabled:                   c.Enabled,
		SlotDurationMinutes:       c.SlotDurationMinutes,
		OpenTime:                  c.OpenTime.String(),
		CloseTime:                 c.CloseTime.String(),
		BufferMinutes:             c.BufferMinutes,
		AvailableDates:            dates,
		MaxBookingsPerDay:         c.MaxBookingsPerDay,
		AllowClientCancellation:   c.AllowClientCancellation,
		CancellationDeadlineHours: c.CancellationDeadlineHours,
		CreatedAt:                 c.CreatedAt,
		UpdatedAt:                 c.UpdatedAt,
	}
}

// ApplyToConfig применяет обновления к существующей конфигурации.
// Обновляются только непустые (not nil) поля из request.
// Ошибка возвращается, если время или дата не разбираются.
func (r *UpdateConfigRequest) ApplyToConfig(config *domain.BookingConfig) error {
	if r.Enabled != nil {
		config.Enabled = *r.Enabled
	}
	if r.SlotDurationMinutes != nil {
		config.SlotDurationMinutes = *r.SlotDurationMinutes
	}
	if r.OpenTime != nil {
		open, err := types.NewTimeStringFromString(*r.OpenTime)
		if err != nil {
			return fmt.Errorf("openTime: %v", err)
		}
		config.OpenTime = open
	}
	if r.CloseTime != nil {
		closing, err := types.NewTimeStringFromString(*r.CloseTime)
		if err != nil {
			return fmt.Errorf("closeTime: %v", err)
		}
		config.CloseTime = closing
	}
	if r.BufferMinutes != nil {
		config.BufferMinutes = *r.BufferMinutes
	}
	if r.AvailableDates != nil {
		dates, err := parseDates(*r.AvailableDates)
		if err != nil {
			return err
		}
		config.AvailableDates = dates
	}
	if r.MaxBookingsPerDay != nil {
		config.MaxBookingsPerDay = *r.MaxBookingsPerDay
	}
	if r.AllowClientCancellation != nil {
		config.AllowClientCancellation = *r.AllowClientCancellation
	}
	if r.CancellationDeadlineHours != nil {
		config.CancellationDeadlineHours = *r.CancellationDeadlineHours
	}
	return nil
}

// parseDates разбирает даты YYYY-MM-DD, убирая дубликаты и сохраняя порядок
func parseDates(raw []string) ([]time.Time, error) {
	dates := make([]time.Time, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, s := range raw {
		d, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("availableDates: invalid date %q", s)
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		dates = append(dates, d)
	}
	return dates, nil
}

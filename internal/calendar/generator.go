// Package calendar строит сетку временных окон для календаря ресурса
// и размечает её существующими бронированиями.
package calendar

import (
	"iter"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

// GenerateWindows возвращает последовательность окон [open, close) с шагом SlotDurationMinutes.
// Последовательность ленивая и перезапускаемая: повторный range даёт те же окна.
// Окно, которое выходит за close, отбрасывается. Буфер здесь не учитывается.
func GenerateWindows(date time.Time, cfg *domain.BookingConfig) iter.Seq[domain.TimeWindow] {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	var (
		open     types.TimeString
		closing  types.TimeString
		duration int
	)
	if cfg != nil {
		open, closing, duration = cfg.OpenTime, cfg.CloseTime, cfg.SlotDurationMinutes
	}

	return func(yield func(domain.TimeWindow) bool) {
		if duration <= 0 || open.IsZero() || closing.IsZero() || !open.IsBefore(closing) {
			return
		}

		for start := open; ; {
			end, err := start.AddMinutes(duration)
			if err != nil || end.IsAfter(closing) {
				return
			}

			window := domain.TimeWindow{
				ID:    domain.WindowID(day, start, end),
				Date:  day,
				Start: start,
				End:   end,
			}
			if !yield(window) {
				return
			}

			start = end
		}
	}
}

// CollectWindows материализует последовательность окон
func CollectWindows(date time.Time, cfg *domain.BookingConfig) []domain.TimeWindow {
	var windows []domain.TimeWindow
	for w := range GenerateWindows(date, cfg) {
		windows = append(windows, w)
	}
	return windows
}

// FindWindow ищет окно сетки, начинающееся в start
func FindWindow(date time.Time, cfg *domain.BookingConfig, start types.TimeString) (domain.TimeWindow, bool) {
	for w := range GenerateWindows(date, cfg) {
		if w.Start.Equal(start) {
			return w, true
		}
		if w.Start.IsAfter(start) {
			break
		}
	}
	return domain.TimeWindow{}, false
}

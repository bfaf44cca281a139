package calendar

import (
	"fmt"
	"iter"
	"slices"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// ResolveOccupancy размечает окна существующими бронированиями.
//
// Окно занято, если бронирование начинается ровно в начале окна или начало окна
// лежит строго внутри интервала бронирования. При нескольких совпадениях побеждает
// первое по порядку в reservations. Отменённые бронирования окна не занимают.
//
// Свободное окно помечается Buffered, если его интервал пересекается с интервалом
// какого-либо бронирования, расширенным на buffer в обе стороны. При buffer = 0
// это окна, частично накрывающие бронирование с другой сетки.
func ResolveOccupancy(
	windows iter.Seq[domain.TimeWindow],
	reservations []*domain.Reservation,
	bufferMinutes int,
) iter.Seq[domain.TimeWindow] {
	active := slices.DeleteFunc(slices.Clone(reservations), func(r *domain.Reservation) bool {
		return r == nil || !r.IsActive()
	})

	return func(yield func(domain.TimeWindow) bool) {
		for w := range windows {
			if r := findOccupant(w, active); r != nil {
				occupant := r.Occupant
				id := r.ID
				w.Occupied = true
				w.ReservationID = &id
				w.Occupant = &occupant
			} else {
				w.Buffered = blocked(w, active, bufferMinutes)
			}

			if !yield(w) {
				return
			}
		}
	}
}

// CollectResolved материализует размеченные окна
func CollectResolved(windows iter.Seq[domain.TimeWindow], reservations []*domain.Reservation, bufferMinutes int) []domain.TimeWindow {
	return slices.Collect(ResolveOccupancy(windows, reservations, bufferMinutes))
}

func findOccupant(w domain.TimeWindow, reservations []*domain.Reservation) *domain.Reservation {
	ws := w.Start.Minutes()
	for _, r := range reservations {
		if !domain.SameDate(r.BookingDate, w.Date) {
			continue
		}
		rs, re := r.StartTime.Minutes(), r.EndTime.Minutes()
		if ws == rs || (rs < ws && ws < re) {
			return r
		}
	}
	return nil
}

func blocked(w domain.TimeWindow, reservations []*domain.Reservation, buffer int) bool {
	ws, we := w.Start.Minutes(), w.End.Minutes()
	for _, r := range reservations {
		if !domain.SameDate(r.BookingDate, w.Date) {
			continue
		}
		rs, re := r.StartTime.Minutes()-buffer, r.EndTime.Minutes()+buffer
		if ws < re && rs < we {
			return true
		}
	}
	return false
}

// CheckNonOverlapping проверяет, что активные бронирования не пересекаются.
// Возвращает ErrOverlappingReservations с первой найденной парой.
func CheckNonOverlapping(reservations []*domain.Reservation) error {
	for i, a := range reservations {
		if a == nil || !a.IsActive() {
			continue
		}
		for _, b := range reservations[i+1:] {
			if b == nil || !b.IsActive() {
				continue
			}
			if a.Overlaps(b) {
				return fmt.Errorf("%w: %s (%s-%s) and %s (%s-%s)", domain.ErrOverlappingReservations,
					a.ID, a.StartTime, a.EndTime, b.ID, b.StartTime, b.EndTime)
			}
		}
	}
	return nil
}

// Summary сводка по размеченным окнам
type Summary struct {
	Total    int
	Free     int
	Occupied int
	Buffered int
}

// Summarize считает окна по состояниям
func Summarize(windows []domain.TimeWindow) Summary {
	s := Summary{Total: len(windows)}
	for _, w := range windows {
		switch {
		case w.Occupied:
			s.Occupied++
		case w.Buffered:
			s.Buffered++
		default:
			s.Free++
		}
	}
	return s
}

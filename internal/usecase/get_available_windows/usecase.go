package get_available_windows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/calendar"
	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	configRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/config"
)

// UseCase use case для получения окон календаря на дату
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case.
// loc - часовой пояс, в котором заданы даты и время окон.
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		location:        loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения окон
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableWindows: resource=%d, event=%d, date=%s",
		req.ResourceID, req.EventID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableWindows: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки календаря
	config, err := uc.configRepo.Get(ctx, req.ResourceID, req.EventID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetAvailableWindows: config for resource=%d event=%d not found", req.ResourceID, req.EventID)
			return nil, domain.ErrConfigNotFound
		}
		uc.logger.Error("GetAvailableWindows: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	// 4. Проверяем, что бронирование включено
	if !config.Enabled {
		uc.logger.Warn("GetAvailableWindows: booking disabled for resource=%d event=%d", req.ResourceID, req.EventID)
		return nil, domain.ErrBookingDisabled
	}

	// 5. Проверяем, что дата входит в список доступных
	if !config.IsDateAvailable(req.Date) {
		uc.logger.Warn("GetAvailableWindows: date %s is not available", req.Date.Format(domain.DateFormat))
		return nil, fmt.Errorf("%w: %s", domain.ErrDateUnavailable, req.Date.Format(domain.DateFormat))
	}

	response := &Response{
		Date:         req.Date,
		SlotDuration: config.SlotDurationMinutes,
		Windows:      make([]Window, 0),
	}

	// 6. Для прошедших дат окон нет
	if isDateInPast(req.Date, now, uc.location) {
		uc.logger.Info("GetAvailableWindows: date %s is in the past", req.Date.Format(domain.DateFormat))
		return response, nil
	}

	// 7. Получаем активные бронирования на дату
	reservations, err := uc.reservationRepo.ListActiveByDate(ctx, req.ResourceID, req.EventID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableWindows: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 8. Пересечения не блокируют выдачу: первое совпадение занимает окно
	if err := calendar.CheckNonOverlapping(reservations); err != nil {
		uc.logger.Error("GetAvailableWindows: resource=%d event=%d: %v", req.ResourceID, req.EventID, err)
	}

	// 9. Строим сетку и размечаем занятость
	windows := calendar.CollectResolved(
		calendar.GenerateWindows(req.Date, config),
		reservations,
		config.BufferMinutes,
	)

	summary := calendar.Summarize(windows)
	response.TotalCount = summary.Total
	response.FreeCount = summary.Free
	response.OccupiedCount = summary.Occupied
	response.BufferedCount = summary.Buffered
	response.DailyCapReached = config.HasDailyCap() && len(reservations) >= config.MaxBookingsPerDay

	// 10. Контакты клиентов видит только владелец календаря
	showOccupants := config.IsOwner(req.ViewerID)

	for _, w := range windows {
		if !showOccupants {
			w.Occupant = nil
			w.ReservationID = nil
		}
		started := !w.Start.OnDate(req.Date, uc.location).After(now)
		response.Windows = append(response.Windows, Window{
			TimeWindow: w,
			Bookable:   w.IsBookable() && !started && !response.DailyCapReached,
		})
	}

	uc.logger.Info("GetAvailableWindows: %d windows (%d free, %d occupied, %d buffered), cap reached=%t",
		summary.Total, summary.Free, summary.Occupied, summary.Buffered, response.DailyCapReached)

	return response, nil
}

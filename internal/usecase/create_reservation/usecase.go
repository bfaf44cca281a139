package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"

	"github.com/NeedlesUK/tattsync2-sub002/internal/calendar"
	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	configRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/config"
	reservationRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/reservation"
	"github.com/NeedlesUK/tattsync2-sub002/internal/integrations/notifier"
)

// UseCase use case для бронирования окна календаря
type UseCase struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	txManager       TransactionManager
	notifier        Notifier
	operations      OperationRecorder
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	eventNotifier Notifier,
	operations OperationRecorder,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		configRepo:      configRepo,
		txManager:       txManager,
		notifier:        eventNotifier,
		operations:      operations,
		location:        loc,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются в сериализуемой транзакции,
// ограничения reservations в БД страхуют от гонки двух одновременных запросов.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: resource=%d, event=%d, date=%s, time=%s",
		req.ResourceID, req.EventID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Нормализация и валидация входных данных
	req.Occupant = domain.NormalizeOccupant(req.Occupant)
	req.Date = dateOnly(req.Date)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.record("invalid")
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var (
		result *domain.Reservation
		window domain.TimeWindow
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем настройки календаря
		config, err := uc.configRepo.Get(txCtx, req.ResourceID, req.EventID)
		if err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				uc.logger.Warn("CreateReservation: config for resource=%d event=%d not found", req.ResourceID, req.EventID)
				return domain.ErrConfigNotFound
			}
			uc.logger.Error("CreateReservation: failed to get config: %v", err)
			return fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
		}

		// 3.2. Бронирование должно быть включено
		if !config.Enabled {
			uc.logger.Warn("CreateReservation: booking disabled for resource=%d event=%d", req.ResourceID, req.EventID)
			return domain.ErrBookingDisabled
		}

		// 3.3. Дата должна быть в списке доступных
		if !config.IsDateAvailable(req.Date) {
			uc.logger.Warn("CreateReservation: date %s is not available", req.Date.Format(domain.DateFormat))
			return fmt.Errorf("%w: %s", domain.ErrDateUnavailable, req.Date.Format(domain.DateFormat))
		}

		// 3.4. Время начала должно совпадать с окном сетки
		var ok bool
		window, ok = calendar.FindWindow(req.Date, config, req.StartTime)
		if !ok {
			uc.logger.Warn("CreateReservation: start %s is off the %d-minute grid", req.StartTime, config.SlotDurationMinutes)
			return fmt.Errorf("%w: %s", domain.ErrWindowOffGrid, req.StartTime)
		}
		if !req.EndTime.IsZero() && !req.EndTime.Equal(window.End) {
			uc.logger.Warn("CreateReservation: end %s does not match window %s", req.EndTime, window.ID)
			return fmt.Errorf("%w: %s-%s", domain.ErrWindowOffGrid, req.StartTime, req.EndTime)
		}

		// 3.5. Окно не должно начаться раньше текущего момента
		if !window.Start.OnDate(req.Date, uc.location).After(now) {
			uc.logger.Warn("CreateReservation: window %s is in the past", window.ID)
			return fmt.Errorf("%w: %s", domain.ErrDateInPast, window.ID)
		}

		// 3.6. Получаем активные бронирования на дату с блокировкой (FOR UPDATE)
		reservations, err := uc.reservationRepo.ListActiveByDate(txCtx, req.ResourceID, req.EventID, req.Date)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		if err := calendar.CheckNonOverlapping(reservations); err != nil {
			uc.logger.Error("CreateReservation: resource=%d event=%d: %v", req.ResourceID, req.EventID, err)
		}

		// 3.7. Проверяем занятость окна: пересечение с любым активным бронированием
		// (с учётом буфера) делает окно недоступным
		for w := range calendar.ResolveOccupancy(single(window), reservations, config.BufferMinutes) {
			if !w.IsBookable() {
				uc.logger.Warn("CreateReservation: window %s is taken (occupied=%t, blocked=%t)",
					w.ID, w.Occupied, w.Buffered)
				return fmt.Errorf("%w: %s", domain.ErrSlotOccupied, w.ID)
			}
		}

		// 3.8. Дневной лимит
		if config.HasDailyCap() && len(reservations) >= config.MaxBookingsPerDay {
			uc.logger.Warn("CreateReservation: daily cap %d reached on %s",
				config.MaxBookingsPerDay, req.Date.Format(domain.DateFormat))
			return domain.ErrDailyCapReached
		}

		// 3.9. Сохраняем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			ID:          uuid.New(),
			ResourceID:  req.ResourceID,
			EventID:     req.EventID,
			BookingDate: req.Date,
			StartTime:   window.Start,
			EndTime:     window.End,
			Occupant:    req.Occupant,
			Status:      domain.StatusUpcoming,
		})
		if err != nil {
			if errors.Is(err, reservationRepo.ErrWindowTaken) {
				uc.logger.Warn("CreateReservation: window %s taken concurrently", window.ID)
				return fmt.Errorf("%w: %s", domain.ErrSlotOccupied, window.ID)
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.record(resultLabel(err))
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%s for window %s", result.ID, window.ID)
	uc.record("success")

	// 4. Уведомление после коммита, его ошибка не откатывает бронирование
	uc.notifier.NotifyAsync(notifier.NewReservationEvent(notifier.EventReservationCreated, result, now))

	return &Response{Reservation: result, WindowID: window.ID}, nil
}

func (uc *UseCase) record(result string) {
	if uc.operations != nil {
		uc.operations.IncReservationOperation("create", result)
	}
}

// single последовательность из одного окна
func single(w domain.TimeWindow) iter.Seq[domain.TimeWindow] {
	return func(yield func(domain.TimeWindow) bool) {
		yield(w)
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrSlotOccupied):
		return "occupied"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrPolicy):
		return "rejected"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	configRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/config"
	reservationRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/reservation"
	"github.com/NeedlesUK/tattsync2-sub002/internal/integrations/notifier"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
)

// Service сервис для работы с бронированиями: просмотр, отмена, завершение
type Service struct {
	reservationRepo ReservationRepository
	configRepo      ConfigRepository
	txManager       TransactionManager
	notifier        Notifier
	operations      OperationRecorder
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	configRepo ConfigRepository,
	txManager TransactionManager,
	eventNotifier Notifier,
	operations OperationRecorder,
	loc *time.Location,
	logger Logger,
) *Service {
	return &Service{
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

// GetByID получает бронирование по ID.
// Владелец календаря видит любое бронирование, клиент - только с совпадающим email.
func (s *Service) GetByID(ctx context.Context, req *models.GetReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%s for user=%d", req.ID, req.UserID)

	reservation, config, err := s.load(ctx, "GetByID", req.ID)
	if err != nil {
		return nil, err
	}

	if !config.IsOwner(req.UserID) && !emailMatches(reservation, req.Email) {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%s", req.UserID, req.ID)
		return nil, domain.ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// ListByResource получает бронирования календаря. Доступно только владельцу.
func (s *Service) ListByResource(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("ListByResource: resource=%d, event=%d, user=%d", req.ResourceID, req.EventID, req.UserID)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListByResource: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	config, err := s.configRepo.Get(ctx, req.ResourceID, req.EventID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("ListByResource: config for resource=%d event=%d not found", req.ResourceID, req.EventID)
			return nil, domain.ErrConfigNotFound
		}
		s.logger.Error("ListByResource: failed to get config: %v", err)
		return nil, fmt.Errorf("%w: ListByResource - config error: %v", ErrInternal, err)
	}

	if !config.IsOwner(req.UserID) {
		s.logger.Warn("ListByResource: user=%d is not the owner of resource=%d", req.UserID, req.ResourceID)
		return nil, domain.ErrAccessDenied
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListByResource: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListByResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListByResource: fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// Cancel отменяет бронирование.
// Владелец календаря отменяет без проверки дедлайна. Клиент подтверждает себя email из бронирования
// и может отменить, только если это разрешено настройками и до начала осталось
// больше CancellationDeadlineHours.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%s by user=%d", id, req.UserID)

	if req.Reason != nil && len([]rune(*req.Reason)) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	var cancelled *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование и настройки календаря
		reservation, config, err := s.load(txCtx, "Cancel", id)
		if err != nil {
			return err
		}

		// 2. Определяем, кто отменяет
		var by domain.CancelledBy
		switch {
		case config.IsOwner(req.UserID):
			by = domain.CancelledByOwner
		case emailMatches(reservation, req.Email):
			by = domain.CancelledByClient
		default:
			s.logger.Warn("Cancel: user=%d is neither owner nor occupant of reservation id=%s", req.UserID, id)
			return domain.ErrAccessDenied
		}

		// 3. Отменить можно только upcoming
		if !reservation.CanBeCancelled() {
			s.logger.Warn("Cancel: reservation id=%s cannot be cancelled, status=%s", id, reservation.Status)
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, reservation.Status, domain.StatusCancelled)
		}

		// 4. Политика отмены для клиента
		if by == domain.CancelledByClient {
			if err := s.checkClientPolicy(config, reservation, now); err != nil {
				s.logger.Warn("Cancel: client cancellation of reservation id=%s rejected: %v", id, err)
				return err
			}
		}

		// 5. Условное обновление статуса
		if err := s.reservationRepo.Cancel(txCtx, id, by, req.Reason, now); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusChanged) {
				s.logger.Warn("Cancel: reservation id=%s changed status concurrently", id)
				return fmt.Errorf("%w: reservation is no longer upcoming", domain.ErrInvalidTransition)
			}
			s.logger.Error("Cancel: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCancelled
		reservation.CancelledBy = &by
		reservation.CancellationReason = req.Reason
		reservation.CancelledAt = &now
		reservation.UpdatedAt = now
		cancelled = reservation
		return nil
	})

	if err != nil {
		s.record("cancel", err)
		return nil, err
	}

	s.logger.Info("Cancel: reservation id=%s cancelled by %s", id, *cancelled.CancelledBy)
	s.record("cancel", nil)
	s.notifier.NotifyAsync(notifier.NewReservationEvent(notifier.EventReservationCancelled, cancelled, now))

	return models.FromDomainReservation(cancelled), nil
}

// Complete отмечает бронирование выполненным. Доступно только владельцу календаря.
func (s *Service) Complete(ctx context.Context, id uuid.UUID, ownerID int64) (*models.ReservationResponse, error) {
	s.logger.Info("Complete: completing reservation id=%s by user=%d", id, ownerID)

	now := s.timeProvider.Now()
	var completed *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, config, err := s.load(txCtx, "Complete", id)
		if err != nil {
			return err
		}

		if !config.IsOwner(ownerID) {
			s.logger.Warn("Complete: user=%d is not the owner of reservation id=%s", ownerID, id)
			return domain.ErrAccessDenied
		}

		if !reservation.CanBeCompleted() {
			s.logger.Warn("Complete: reservation id=%s cannot be completed, status=%s", id, reservation.Status)
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, reservation.Status, domain.StatusCompleted)
		}

		if err := s.reservationRepo.Complete(txCtx, id, now); err != nil {
			if errors.Is(err, reservationRepo.ErrStatusChanged) {
				s.logger.Warn("Complete: reservation id=%s changed status concurrently", id)
				return fmt.Errorf("%w: reservation is no longer upcoming", domain.ErrInvalidTransition)
			}
			s.logger.Error("Complete: repository error for reservation id=%s: %v", id, err)
			return fmt.Errorf("%w: Complete - repository error: %v", ErrInternal, err)
		}

		reservation.Status = domain.StatusCompleted
		reservation.CompletedAt = &now
		reservation.UpdatedAt = now
		completed = reservation
		return nil
	})

	if err != nil {
		s.record("complete", err)
		return nil, err
	}

	s.logger.Info("Complete: reservation id=%s completed", id)
	s.record("complete", nil)
	s.notifier.NotifyAsync(notifier.NewReservationEvent(notifier.EventReservationCompleted, completed, now))

	return models.FromDomainReservation(completed), nil
}

// load получает бронирование и настройки его календаря.
// Если настройки удалены, используются значения по умолчанию без владельца.
func (s *Service) load(ctx context.Context, op string, id uuid.UUID) (*domain.Reservation, *domain.BookingConfig, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("%s: reservation id=%s not found", op, id)
			return nil, nil, domain.ErrReservationNotFound
		}
		s.logger.Error("%s: repository error for reservation id=%s: %v", op, id, err)
		return nil, nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	config, err := s.configRepo.Get(ctx, reservation.ResourceID, reservation.EventID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Error("%s: failed to get config for reservation id=%s: %v", op, id, err)
			return nil, nil, fmt.Errorf("%w: %s - config error: %v", ErrInternal, op, err)
		}
		s.logger.Warn("%s: config for resource=%d event=%d not found, using defaults",
			op, reservation.ResourceID, reservation.EventID)
		config = domain.NewDefaultBookingConfig(reservation.ResourceID, reservation.EventID, 0)
	}

	return reservation, config, nil
}

// checkClientPolicy проверяет, что клиент может отменить бронирование сейчас
func (s *Service) checkClientPolicy(config *domain.BookingConfig, reservation *domain.Reservation, now time.Time) error {
	if !config.AllowClientCancellation {
		return domain.ErrClientCancellationDisabled
	}

	deadline := config.CancellationDeadline(reservation.StartsAt(s.location))
	if !now.Before(deadline) {
		return fmt.Errorf("%w: deadline was %s", domain.ErrCancellationDeadlinePassed, deadline.Format(time.RFC3339))
	}

	return nil
}

func (s *Service) record(operation string, err error) {
	if s.operations == nil {
		return
	}

	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrPolicy):
		result = "rejected"
	case errors.Is(err, domain.ErrState):
		result = "conflict"
	case errors.Is(err, domain.ErrValidation):
		result = "invalid"
	default:
		result = "error"
	}
	s.operations.IncReservationOperation(operation, result)
}

// emailMatches сравнивает email клиента без учёта регистра и пробелов
func emailMatches(r *domain.Reservation, email string) bool {
	email = strings.TrimSpace(email)
	return email != "" && strings.EqualFold(email, strings.TrimSpace(r.Occupant.Email))
}

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	configRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/config"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/config/models"
)

// Service сервис для управления настройками календаря ресурса
type Service struct {
	configRepo ConfigRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(configRepo ConfigRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// Get получает настройки календаря. Доступно всем: клиенту нужны даты и расписание.
func (s *Service) Get(ctx context.Context, resourceID, eventID int64) (*models.ConfigResponse, error) {
	if resourceID <= 0 || eventID <= 0 {
		return nil, fmt.Errorf("%w: resourceId and eventId must be positive", ErrInvalidInput)
	}

	config, err := s.configRepo.Get(ctx, resourceID, eventID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Get: config for resource=%d event=%d not found", resourceID, eventID)
			return nil, domain.ErrConfigNotFound
		}
		s.logger.Error("Get: failed to get config for resource=%d event=%d: %v", resourceID, eventID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(config), nil
}

// Upsert создает или обновляет настройки календаря.
// Создавший пользователь становится владельцем, дальше изменять может только он.
func (s *Service) Upsert(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: resource=%d, event=%d by user=%d", req.ResourceID, req.EventID, req.UserID)

	if req.ResourceID <= 0 || req.EventID <= 0 {
		return nil, fmt.Errorf("%w: resourceId and eventId must be positive", ErrInvalidInput)
	}
	if req.UserID <= 0 {
		s.logger.Warn("Upsert: anonymous user tried to change config of resource=%d", req.ResourceID)
		return nil, domain.ErrAccessDenied
	}

	var saved *domain.BookingConfig
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем текущие настройки или создаём по умолчанию
		config, err := s.configRepo.Get(txCtx, req.ResourceID, req.EventID)
		switch {
		case errors.Is(err, configRepo.ErrConfigNotFound):
			s.logger.Info("Upsert: creating config for resource=%d event=%d", req.ResourceID, req.EventID)
			config = domain.NewDefaultBookingConfig(req.ResourceID, req.EventID, req.UserID)
		case err != nil:
			s.logger.Error("Upsert: failed to get config: %v", err)
			return fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем права
		if !config.IsOwner(req.UserID) {
			s.logger.Warn("Upsert: user=%d is not the owner of resource=%d event=%d", req.UserID, req.ResourceID, req.EventID)
			return domain.ErrAccessDenied
		}

		// 3. Применяем изменения на копии и валидируем результат
		updated := *config
		if err := req.ApplyToConfig(&updated); err != nil {
			s.logger.Warn("Upsert: invalid request: %v", err)
			return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
		if err := ValidateConfig(&updated); err != nil {
			s.logger.Warn("Upsert: invalid config: %v", err)
			return err
		}

		// 4. Сохраняем
		saved, err = s.configRepo.Upsert(txCtx, &updated)
		if err != nil {
			s.logger.Error("Upsert: failed to save config: %v", err)
			return fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Upsert: saved config for resource=%d event=%d, enabled=%t, dates=%d",
		saved.ResourceID, saved.EventID, saved.Enabled, len(saved.AvailableDates))
	return models.FromDomainConfig(saved), nil
}

// Delete удаляет настройки календаря. Доступно только владельцу.
func (s *Service) Delete(ctx context.Context, req *models.DeleteConfigRequest) error {
	s.logger.Info("Delete: resource=%d, event=%d by user=%d", req.ResourceID, req.EventID, req.UserID)

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		config, err := s.configRepo.Get(txCtx, req.ResourceID, req.EventID)
		if err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				return domain.ErrConfigNotFound
			}
			s.logger.Error("Delete: failed to get config: %v", err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if !config.IsOwner(req.UserID) {
			s.logger.Warn("Delete: user=%d is not the owner of resource=%d event=%d", req.UserID, req.ResourceID, req.EventID)
			return domain.ErrAccessDenied
		}

		if err := s.configRepo.Delete(txCtx, req.ResourceID, req.EventID); err != nil {
			if errors.Is(err, configRepo.ErrConfigNotFound) {
				return domain.ErrConfigNotFound
			}
			s.logger.Error("Delete: failed to delete config: %v", err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
}

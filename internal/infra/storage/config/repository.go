package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/dbmetrics"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/psqlbuilder"
)

// DBExecutor интерфейс из dbmetrics
type DBExecutor = dbmetrics.DBExecutor

const table = "booking_configs"

// Repository репозиторий для работы с настройками календарей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get получает конфигурацию календаря ресурса на событии
func (r *Repository) Get(ctx context.Context, resourceID, eventID int64) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"resource_id",
		"event_id",
		"owner_id",
		"enabled",
		"slot_duration_minutes",
		"open_time",
		"close_time",
		"buffer_minutes",
		"available_dates",
		"max_bookings_per_day",
		"allow_client_cancellation",
		"cancellation_deadline_hours",
		"created_at",
		"updated_at",
	).
		From(table).
		Where(squirrel.Eq{"resource_id": resourceID, "event_id": eventID})

	// При создании бронирования конфигурация не должна меняться до коммита
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR SHARE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var (
		cfg   domain.BookingConfig
		dates []string
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&cfg.ResourceID,
		&cfg.EventID,
		&cfg.OwnerID,
		&cfg.Enabled,
		&cfg.SlotDurationMinutes,
		&cfg.OpenTime,
		&cfg.CloseTime,
		&cfg.BufferMinutes,
		pq.Array(&dates),
		&cfg.MaxBookingsPerDay,
		&cfg.AllowClientCancellation,
		&cfg.CancellationDeadlineHours,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan config: %v", ErrScanRow, err)
	}

	cfg.AvailableDates = make([]time.Time, 0, len(dates))
	for _, d := range dates {
		parsed, err := time.Parse(domain.DateFormat, d)
		if err != nil {
			return nil, fmt.Errorf("%w: Get - parse available date %q: %v", ErrScanRow, d, err)
		}
		cfg.AvailableDates = append(cfg.AvailableDates, parsed)
	}

	return &cfg, nil
}

// Upsert создает или полностью перезаписывает конфигурацию (ключ resource_id + event_id).
// Владелец при перезаписи не меняется.
func (r *Repository) Upsert(ctx context.Context, cfg *domain.BookingConfig) (*domain.BookingConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	dates := make([]string, 0, len(cfg.AvailableDates))
	for _, d := range cfg.AvailableDates {
		dates = append(dates, d.Format(domain.DateFormat))
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"resource_id",
			"event_id",
			"owner_id",
			"enabled",
			"slot_duration_minutes",
			"open_time",
			"close_time",
			"buffer_minutes",
			"available_dates",
			"max_bookings_per_day",
			"allow_client_cancellation",
			"cancellation_deadline_hours",
		).
		Values(
			cfg.ResourceID,
			cfg.EventID,
			cfg.OwnerID,
			cfg.Enabled,
			cfg.SlotDurationMinutes,
			cfg.OpenTime,
			cfg.CloseTime,
			cfg.BufferMinutes,
			pq.Array(dates),
			cfg.MaxBookingsPerDay,
			cfg.AllowClientCancellation,
			cfg.CancellationDeadlineHours,
		).
		Suffix(`ON CONFLICT (resource_id, event_id) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			buffer_minutes = EXCLUDED.buffer_minutes,
			available_dates = EXCLUDED.available_dates,
			max_bookings_per_day = EXCLUDED.max_bookings_per_day,
			allow_client_cancellation = EXCLUDED.allow_client_cancellation,
			cancellation_deadline_hours = EXCLUDED.cancellation_deadline_hours,
			updated_at = NOW()
		RETURNING owner_id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&cfg.OwnerID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return cfg, nil
}

// Delete удаляет конфигурацию. Бронирования при этом сохраняются.
func (r *Repository) Delete(ctx context.Context, resourceID, eventID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"resource_id": resourceID, "event_id": eventID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

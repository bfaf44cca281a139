package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/dbmetrics"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"resource_id",
	"event_id",
	"booking_date",
	"start_time",
	"end_time",
	"occupant_name",
	"occupant_email",
	"occupant_phone",
	"occupant_note",
	"status",
	"cancelled_by",
	"cancellation_reason",
	"cancelled_at",
	"completed_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование.
// Если в контексте передана активная транзакция, использует её.
// Нарушение ограничений занятости (окно уже занято) возвращается как ErrWindowTaken.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"resource_id",
			"event_id",
			"booking_date",
			"start_time",
			"end_time",
			"occupant_name",
			"occupant_email",
			"occupant_phone",
			"occupant_note",
			"status",
		).
		Values(
			res.ID,
			res.ResourceID,
			res.EventID,
			res.BookingDate,
			res.StartTime,
			res.EndTime,
			res.Occupant.Name,
			res.Occupant.Email,
			res.Occupant.Phone,
			res.Occupant.Note,
			res.Status,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isConflictViolation(err) {
			return nil, ErrWindowTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку до смены статуса
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// ListActiveByDate получает активные (не отменённые) бронирования ресурса на дату,
// отсортированные по времени начала.
// Внутри транзакции строки блокируются (FOR UPDATE) для проверки занятости при создании.
func (r *Repository) ListActiveByDate(ctx context.Context, resourceID, eventID int64, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{
			"resource_id":  resourceID,
			"event_id":     eventID,
			"booking_date": date,
		}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC", "created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// List получает бронирования ресурса с фильтрацией по периоду и статусу.
// Без статуса и без IncludeCancelled отменённые бронирования исключаются.
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"resource_id": filter.ResourceID, "event_id": filter.EventID})

	if filter.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	query, args, err := builder.OrderBy("booking_date ASC", "start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// Cancel переводит бронирование в cancelled.
// Обновление условное: если статус уже не upcoming, возвращается ErrStatusChanged.
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, by domain.CancelledBy, reason *string, at time.Time) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", by).
		Set("cancellation_reason", reason).
		Set("cancelled_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.StatusUpcoming}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, "Cancel", query, args)
}

// Complete переводит бронирование в completed (условно, как Cancel)
func (r *Repository) Complete(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCompleted).
		Set("completed_at", at).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id, "status": domain.StatusUpcoming}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	return r.execTransition(ctx, "Complete", query, args)
}

func (r *Repository) execTransition(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusChanged
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation

	err := row.Scan(
		&res.ID,
		&res.ResourceID,
		&res.EventID,
		&res.BookingDate,
		&res.StartTime,
		&res.EndTime,
		&res.Occupant.Name,
		&res.Occupant.Email,
		&res.Occupant.Phone,
		&res.Occupant.Note,
		&res.Status,
		&res.CancelledBy,
		&res.CancellationReason,
		&res.CancelledAt,
		&res.CompletedAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// scanReservations сканирует результаты запроса в слайс бронирований
func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// isConflictViolation уникальный индекс по началу окна или exclusion по пересечению интервалов
func isConflictViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgerrcode.UniqueViolation || pqErr.Code == pgerrcode.ExclusionViolation
}

package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	configRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/config"
	reservationRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/reservation"
	"github.com/NeedlesUK/tattsync2-sub002/internal/integrations/notifier"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/ptr"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

func (m *mockReservationRepo) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	args := m.Called(ctx, filter)
	res, _ := args.Get(0).([]*domain.Reservation)
	return res, args.Error(1)
}

func (m *mockReservationRepo) Cancel(ctx context.Context, id uuid.UUID, by domain.CancelledBy, reason *string, at time.Time) error {
	return m.Called(ctx, id, by, reason, at).Error(0)
}

func (m *mockReservationRepo) Complete(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

type mockConfigRepo struct{ mock.Mock }

func (m *mockConfigRepo) Get(ctx context.Context, resourceID, eventID int64) (*domain.BookingConfig, error) {
	args := m.Called(ctx, resourceID, eventID)
	cfg, _ := args.Get(0).(*domain.BookingConfig)
	return cfg, args.Error(1)
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct{ events []notifier.ReservationEvent }

func (f *fakeNotifier) NotifyAsync(evt notifier.ReservationEvent) {
	f.events = append(f.events, evt)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

const ownerID int64 = 42

var (
	eventDay       = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	// бронирование начинается 2024-06-10 14:00, дедлайн 24ч - 2024-06-09 14:00
	beforeDeadline = time.Date(2024, 6, 9, 13, 59, 0, 0, time.UTC)
	atDeadline     = time.Date(2024, 6, 9, 14, 0, 0, 0, time.UTC)
)

type fixture struct {
	reservations *mockReservationRepo
	configs      *mockConfigRepo
	notifier     *fakeNotifier
	svc          *Service
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		reservations: &mockReservationRepo{},
		configs:      &mockConfigRepo{},
		notifier:     &fakeNotifier{},
	}
	f.svc = NewService(f.reservations, f.configs, fakeTxManager{}, f.notifier, nil, time.UTC, logger.Nop())
	f.svc.timeProvider = fixedTime{now: now}
	return f
}

func testConfig() *domain.BookingConfig {
	return &domain.BookingConfig{
		ResourceID:                1,
		EventID:                   2,
		OwnerID:                   ownerID,
		Enabled:                   true,
		AllowClientCancellation:   true,
		CancellationDeadlineHours: 24,
	}
}

func upcoming() *domain.Reservation {
	return &domain.Reservation{
		ID:          uuid.MustParse("0f6c8f4e-31a8-4a3e-9d0e-9b1d4b7e2c10"),
		ResourceID:  1,
		EventID:     2,
		BookingDate: eventDay,
		StartTime:   types.MustTimeString("14:00"),
		EndTime:     types.MustTimeString("15:00"),
		Status:      domain.StatusUpcoming,
		Occupant:    domain.Occupant{Name: "Jane Doe", Email: "jane@example.com", Phone: "07700 900123"},
	}
}

func (f *fixture) expectLoad(r *domain.Reservation, cfg *domain.BookingConfig, cfgErr error) {
	f.reservations.On("GetByID", mock.Anything, r.ID).Return(r, nil)
	f.configs.On("Get", mock.Anything, r.ResourceID, r.EventID).Return(cfg, cfgErr)
}

func TestCancel_ClientBeforeDeadline(t *testing.T) {
	f := newFixture(beforeDeadline)
	r := upcoming()
	f.expectLoad(r, testConfig(), nil)
	f.reservations.On("Cancel", mock.Anything, r.ID, domain.CancelledByClient, mock.Anything, beforeDeadline).Return(nil)

	resp, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{
		Email:  " JANE@example.com",
		Reason: ptr.Ptr("can't make it"),
	})

	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	assert.Equal(t, "client", *resp.CancelledBy)
	assert.Equal(t, "can't make it", *resp.CancellationReason)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, notifier.EventReservationCancelled, f.notifier.events[0].Type)
}

func TestCancel_ClientAtDeadline(t *testing.T) {
	f := newFixture(atDeadline)
	r := upcoming()
	f.expectLoad(r, testConfig(), nil)

	_, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{Email: "jane@example.com"})

	assert.ErrorIs(t, err, domain.ErrCancellationDeadlinePassed)
	assert.ErrorIs(t, err, domain.ErrPolicy)
	f.reservations.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, f.notifier.events)
}

func TestCancel_ClientCancellationDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.AllowClientCancellation = false

	f := newFixture(beforeDeadline)
	r := upcoming()
	f.expectLoad(r, cfg, nil)

	_, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{Email: "jane@example.com"})

	assert.ErrorIs(t, err, domain.ErrClientCancellationDisabled)
}

func TestCancel_OwnerSkipsDeadline(t *testing.T) {
	f := newFixture(atDeadline.Add(23 * time.Hour))
	r := upcoming()
	cfg := testConfig()
	cfg.AllowClientCancellation = false
	f.expectLoad(r, cfg, nil)
	f.reservations.On("Cancel", mock.Anything, r.ID, domain.CancelledByOwner, (*string)(nil), mock.Anything).Return(nil)

	resp, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{UserID: ownerID})

	require.NoError(t, err)
	assert.Equal(t, "owner", *resp.CancelledBy)
}

func TestCancel_WrongEmailDenied(t *testing.T) {
	f := newFixture(beforeDeadline)
	r := upcoming()
	f.expectLoad(r, testConfig(), nil)

	_, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{UserID: 7, Email: "someone@example.com"})

	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestCancel_NotUpcoming(t *testing.T) {
	f := newFixture(beforeDeadline)
	r := upcoming()
	r.Status = domain.StatusCompleted
	f.expectLoad(r, testConfig(), nil)

	_, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{UserID: ownerID})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.ErrorIs(t, err, domain.ErrState)
}

func TestCancel_ConcurrentTransition(t *testing.T) {
	f := newFixture(beforeDeadline)
	r := upcoming()
	f.expectLoad(r, testConfig(), nil)
	f.reservations.On("Cancel", mock.Anything, r.ID, domain.CancelledByOwner, mock.Anything, mock.Anything).
		Return(reservationRepo.ErrStatusChanged)

	_, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{UserID: ownerID})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Empty(t, f.notifier.events)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(beforeDeadline)
	id := uuid.New()
	f.reservations.On("GetByID", mock.Anything, id).Return(nil, reservationRepo.ErrReservationNotFound)

	_, err := f.svc.Cancel(context.Background(), id, &models.CancelReservationRequest{UserID: ownerID})

	assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_MissingConfigUsesDefaults(t *testing.T) {
	f := newFixture(beforeDeadline)
	r := upcoming()
	f.expectLoad(r, nil, configRepo.ErrConfigNotFound)
	f.reservations.On("Cancel", mock.Anything, r.ID, domain.CancelledByClient, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.Cancel(context.Background(), r.ID, &models.CancelReservationRequest{Email: "jane@example.com"})

	require.NoError(t, err)
}

func TestComplete(t *testing.T) {
	now := time.Date(2024, 6, 10, 16, 0, 0, 0, time.UTC)

	t.Run("owner completes upcoming", func(t *testing.T) {
		f := newFixture(now)
		r := upcoming()
		f.expectLoad(r, testConfig(), nil)
		f.reservations.On("Complete", mock.Anything, r.ID, now).Return(nil)

		resp, err := f.svc.Complete(context.Background(), r.ID, ownerID)

		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		require.NotNil(t, resp.CompletedAt)
		require.Len(t, f.notifier.events, 1)
		assert.Equal(t, notifier.EventReservationCompleted, f.notifier.events[0].Type)
	})

	t.Run("cancelled cannot be completed", func(t *testing.T) {
		f := newFixture(now)
		r := upcoming()
		r.Status = domain.StatusCancelled
		f.expectLoad(r, testConfig(), nil)

		_, err := f.svc.Complete(context.Background(), r.ID, ownerID)

		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.ErrorIs(t, err, domain.ErrState)
	})

	t.Run("non owner denied", func(t *testing.T) {
		f := newFixture(now)
		r := upcoming()
		f.expectLoad(r, testConfig(), nil)

		_, err := f.svc.Complete(context.Background(), r.ID, 7)

		assert.ErrorIs(t, err, domain.ErrAccessDenied)
	})
}

func TestGetByID_Access(t *testing.T) {
	f := newFixture(beforeDeadline)
	r := upcoming()
	f.expectLoad(r, testConfig(), nil)

	resp, err := f.svc.GetByID(context.Background(), &models.GetReservationRequest{ID: r.ID, Email: "jane@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10_14:00-15:00", resp.WindowID)

	_, err = f.svc.GetByID(context.Background(), &models.GetReservationRequest{ID: r.ID, UserID: ownerID})
	require.NoError(t, err)

	_, err = f.svc.GetByID(context.Background(), &models.GetReservationRequest{ID: r.ID})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
}

func TestListByResource(t *testing.T) {
	f := newFixture(beforeDeadline)
	f.configs.On("Get", mock.Anything, int64(1), int64(2)).Return(testConfig(), nil)
	f.reservations.On("List", mock.Anything, mock.MatchedBy(func(filter domain.ReservationsFilter) bool {
		return filter.ResourceID == 1 && filter.Status != nil && *filter.Status == domain.StatusUpcoming
	})).Return([]*domain.Reservation{upcoming()}, nil)

	resp, err := f.svc.ListByResource(context.Background(), &models.ListReservationsRequest{
		UserID:     ownerID,
		ResourceID: 1,
		EventID:    2,
		Status:     ptr.Ptr("upcoming"),
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 1)

	_, err = f.svc.ListByResource(context.Background(), &models.ListReservationsRequest{UserID: 7, ResourceID: 1, EventID: 2})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.svc.ListByResource(context.Background(), &models.ListReservationsRequest{
		UserID: ownerID, ResourceID: 1, EventID: 2, Status: ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

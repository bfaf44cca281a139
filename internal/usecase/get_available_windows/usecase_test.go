package get_available_windows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	configRepo "github.com/NeedlesUK/tattsync2-sub002/internal/infra/storage/config"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) ListActiveByDate(ctx context.Context, resourceID, eventID int64, date time.Time) ([]*domain.Reservation, error) {
	args := m.Called(ctx, resourceID, eventID, date)
	res, _ := args.Get(0).([]*domain.Reservation)
	return res, args.Error(1)
}

type mockConfigRepo struct{ mock.Mock }

func (m *mockConfigRepo) Get(ctx context.Context, resourceID, eventID int64) (*domain.BookingConfig, error) {
	args := m.Called(ctx, resourceID, eventID)
	cfg, _ := args.Get(0).(*domain.BookingConfig)
	return cfg, args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	eventDay  = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	dayBefore = time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC)
)

func testConfig() *domain.BookingConfig {
	return &domain.BookingConfig{
		ResourceID:          1,
		EventID:             2,
		OwnerID:             42,
		Enabled:             true,
		SlotDurationMinutes: 30,
		OpenTime:            types.MustTimeString("10:00"),
		CloseTime:           types.MustTimeString("11:00"),
		AvailableDates:      []time.Time{eventDay},
	}
}

func newTestUseCase(reservations *mockReservationRepo, configs *mockConfigRepo, now time.Time) *UseCase {
	uc := NewUseCase(reservations, configs, time.UTC, logger.Nop())
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_MarksOccupiedWindow(t *testing.T) {
	reservations := &mockReservationRepo{}
	configs := &mockConfigRepo{}
	configs.On("Get", mock.Anything, int64(1), int64(2)).Return(testConfig(), nil)
	reservations.On("ListActiveByDate", mock.Anything, int64(1), int64(2), eventDay).Return([]*domain.Reservation{{
		ID:          uuid.New(),
		BookingDate: eventDay,
		StartTime:   types.MustTimeString("10:00"),
		EndTime:     types.MustTimeString("10:30"),
		Status:      domain.StatusUpcoming,
		Occupant:    domain.Occupant{Name: "Jane Doe"},
	}}, nil)

	uc := newTestUseCase(reservations, configs, dayBefore)
	resp, err := uc.Execute(context.Background(), &Request{ResourceID: 1, EventID: 2, Date: eventDay, ViewerID: 42})

	require.NoError(t, err)
	require.Len(t, resp.Windows, 2)
	assert.True(t, resp.Windows[0].Occupied)
	assert.Equal(t, "Jane Doe", resp.Windows[0].Occupant.Name)
	assert.False(t, resp.Windows[0].Bookable)
	assert.True(t, resp.Windows[1].Bookable)
	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, 1, resp.FreeCount)
	assert.Equal(t, 1, resp.OccupiedCount)
	assert.False(t, resp.DailyCapReached)
	reservations.AssertExpectations(t)
}

func TestExecute_HidesOccupantsFromNonOwner(t *testing.T) {
	reservations := &mockReservationRepo{}
	configs := &mockConfigRepo{}
	configs.On("Get", mock.Anything, int64(1), int64(2)).Return(testConfig(), nil)
	reservations.On("ListActiveByDate", mock.Anything, int64(1), int64(2), eventDay).Return([]*domain.Reservation{{
		ID:          uuid.New(),
		BookingDate: eventDay,
		StartTime:   types.MustTimeString("10:30"),
		EndTime:     types.MustTimeString("11:00"),
		Status:      domain.StatusUpcoming,
		Occupant:    domain.Occupant{Name: "Jane Doe", Email: "jane@example.com"},
	}}, nil)

	for _, viewer := range []int64{0, 7} {
		resp, err := newTestUseCase(reservations, configs, dayBefore).
			Execute(context.Background(), &Request{ResourceID: 1, EventID: 2, Date: eventDay, ViewerID: viewer})

		require.NoError(t, err)
		assert.True(t, resp.Windows[1].Occupied)
		assert.Nil(t, resp.Windows[1].Occupant)
		assert.Nil(t, resp.Windows[1].ReservationID)
	}
}

func TestExecute_DailyCapReached(t *testing.T) {
	cfg := testConfig()
	cfg.MaxBookingsPerDay = 1

	reservations := &mockReservationRepo{}
	configs := &mockConfigRepo{}
	configs.On("Get", mock.Anything, int64(1), int64(2)).Return(cfg, nil)
	reservations.On("ListActiveByDate", mock.Anything, int64(1), int64(2), eventDay).Return([]*domain.Reservation{{
		ID:          uuid.New(),
		BookingDate: eventDay,
		StartTime:   types.MustTimeString("10:00"),
		EndTime:     types.MustTimeString("10:30"),
		Status:      domain.StatusCompleted,
	}}, nil)

	resp, err := newTestUseCase(reservations, configs, dayBefore).
		Execute(context.Background(), &Request{ResourceID: 1, EventID: 2, Date: eventDay})

	require.NoError(t, err)
	assert.True(t, resp.DailyCapReached)
	assert.False(t, resp.Windows[1].Bookable)
}

func TestExecute_StartedWindowsNotBookable(t *testing.T) {
	reservations := &mockReservationRepo{}
	configs := &mockConfigRepo{}
	configs.On("Get", mock.Anything, int64(1), int64(2)).Return(testConfig(), nil)
	reservations.On("ListActiveByDate", mock.Anything, int64(1), int64(2), eventDay).Return([]*domain.Reservation{}, nil)

	now := time.Date(2024, 6, 1, 10, 10, 0, 0, time.UTC)
	resp, err := newTestUseCase(reservations, configs, now).
		Execute(context.Background(), &Request{ResourceID: 1, EventID: 2, Date: eventDay})

	require.NoError(t, err)
	assert.False(t, resp.Windows[0].Bookable)
	assert.True(t, resp.Windows[1].Bookable)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	reservations := &mockReservationRepo{}
	configs := &mockConfigRepo{}
	configs.On("Get", mock.Anything, int64(1), int64(2)).Return(testConfig(), nil)

	now := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)
	resp, err := newTestUseCase(reservations, configs, now).
		Execute(context.Background(), &Request{ResourceID: 1, EventID: 2, Date: eventDay})

	require.NoError(t, err)
	assert.Empty(t, resp.Windows)
	reservations.AssertNotCalled(t, "ListActiveByDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_Errors(t *testing.T) {
	disabled := testConfig()
	disabled.Enabled = false

	tests := []struct {
		name     string
		req      *Request
		cfg      *domain.BookingConfig
		cfgErr   error
		wantErr  error
		wantKind error
	}{
		{"invalid resource", &Request{EventID: 2, Date: eventDay}, nil, nil, ErrInvalidInput, domain.ErrValidation},
		{"config not found", &Request{ResourceID: 1, EventID: 2, Date: eventDay}, nil, configRepo.ErrConfigNotFound, domain.ErrConfigNotFound, domain.ErrNotFound},
		{"booking disabled", &Request{ResourceID: 1, EventID: 2, Date: eventDay}, disabled, nil, domain.ErrBookingDisabled, domain.ErrPolicy},
		{"date unavailable", &Request{ResourceID: 1, EventID: 2, Date: eventDay.AddDate(0, 0, 1)}, testConfig(), nil, domain.ErrDateUnavailable, domain.ErrValidation},
		{"repository failure", &Request{ResourceID: 1, EventID: 2, Date: eventDay}, nil, errors.New("db down"), ErrInternal, ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configs := &mockConfigRepo{}
			configs.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(tt.cfg, tt.cfgErr)

			_, err := newTestUseCase(&mockReservationRepo{}, configs, dayBefore).Execute(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, tt.wantKind)
		})
	}
}

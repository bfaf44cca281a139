package get_available_windows

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	getAvailableWindows "github.com/NeedlesUK/tattsync2-sub002/internal/usecase/get_available_windows"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailableWindows.Request) (*getAvailableWindows.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailableWindows.Response)
	return resp, args.Error(1)
}

func serve(h *Handler, url string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/resources/{resourceId}/events/{eventId}/windows", h.Handle)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	start, end := types.MustTimeString("10:00"), types.MustTimeString("10:30")
	reservationID := uuid.New()

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailableWindows.Request{ResourceID: 1, EventID: 2, Date: date, ViewerID: 42}).
		Return(&getAvailableWindows.Response{
			Date:         date,
			SlotDuration: 30,
			Windows: []getAvailableWindows.Window{
				{TimeWindow: domain.TimeWindow{
					ID: domain.WindowID(date, start, end), Date: date, Start: start, End: end,
					Occupied: true, ReservationID: &reservationID, Occupant: &domain.Occupant{Name: "Jane Doe"},
				}},
				{TimeWindow: domain.TimeWindow{Date: date, Start: end, End: types.MustTimeString("11:00"), Buffered: true}},
			},
			TotalCount:    2,
			OccupiedCount: 1,
			BufferedCount: 1,
		}, nil)

	rec := serve(NewHandler(uc, logger.Nop()), "/resources/1/events/2/windows?date=2024-06-01", 42)

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailableWindowsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Windows, 2)
	assert.Equal(t, "2024-06-01_10:00-10:30", body.Windows[0].ID)
	assert.Equal(t, stateOccupied, body.Windows[0].State)
	assert.Equal(t, "Jane Doe", body.Windows[0].Occupant.Name)
	assert.Equal(t, reservationID.String(), *body.Windows[0].ReservationID)
	assert.Equal(t, stateBuffered, body.Windows[1].State)
	assert.Equal(t, 2, body.Summary.Total)
	assert.Equal(t, 30, body.SlotDurationMinutes)
}

func TestHandle_BadRequest(t *testing.T) {
	h := NewHandler(&mockUseCase{}, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, serve(h, "/resources/1/events/2/windows", 0).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/resources/1/events/2/windows?date=01.06.2024", 0).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/resources/x/events/2/windows?date=2024-06-01", 0).Code)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{domain.ErrConfigNotFound, http.StatusNotFound},
		{domain.ErrBookingDisabled, http.StatusForbidden},
		{domain.ErrDateUnavailable, http.StatusBadRequest},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		uc := &mockUseCase{}
		uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

		rec := serve(NewHandler(uc, logger.Nop()), "/resources/1/events/2/windows?date=2024-06-01", 0)

		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
	}
}

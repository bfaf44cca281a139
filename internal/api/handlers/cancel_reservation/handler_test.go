package cancel_reservation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelReservationRequest) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func serve(h *Handler, id string, body string, userID int64) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/cancel", h.Handle).Methods(http.MethodPatch)

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(http.MethodPatch, "/reservations/"+id+"/cancel", nil)
	} else {
		req = httptest.NewRequest(http.MethodPatch, "/reservations/"+id+"/cancel", strings.NewReader(body))
	}
	if userID != 0 {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ClientCancelsByEmail(t *testing.T) {
	id := uuid.New()
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, id, mock.MatchedBy(func(req *models.CancelReservationRequest) bool {
		return req.UserID == 0 && req.Email == "jane@example.com" && req.Reason != nil && *req.Reason == "ill"
	})).Return(&models.ReservationResponse{ID: id.String(), Status: string(domain.StatusCancelled)}, nil)

	rec := serve(NewHandler(svc, logger.Nop()), id.String(), `{"email":"jane@example.com","cancellationReason":"ill"}`, 0)

	require.Equal(t, http.StatusOK, rec.Code)
	var body models.ReservationResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "cancelled", body.Status)
}

func TestHandle_OwnerCancelsWithoutBody(t *testing.T) {
	id := uuid.New()
	svc := &mockService{}
	svc.On("Cancel", mock.Anything, id, &models.CancelReservationRequest{UserID: 7}).
		Return(&models.ReservationResponse{ID: id.String(), Status: string(domain.StatusCancelled)}, nil)

	rec := serve(NewHandler(svc, logger.Nop()), id.String(), "", 7)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", domain.ErrReservationNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"deadline passed", domain.ErrCancellationDeadlinePassed, http.StatusUnprocessableEntity, handlers.CodeDeadlinePassed},
		{"client cancellation disabled", domain.ErrClientCancellationDisabled, http.StatusForbidden, handlers.CodeForbidden},
		{"already cancelled", domain.ErrInvalidTransition, http.StatusConflict, handlers.CodeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			svc.On("Cancel", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := serve(NewHandler(svc, logger.Nop()), uuid.NewString(), `{"email":"jane@example.com"}`, 0)

			require.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestHandle_BadInput(t *testing.T) {
	h := NewHandler(&mockService{}, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, serve(h, "42", `{}`, 0).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, uuid.NewString(), `{"reason":1}`, 0).Code)
}

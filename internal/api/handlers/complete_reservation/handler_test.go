package complete_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Complete(ctx context.Context, id uuid.UUID, ownerID int64) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, ownerID)
	resp, _ := args.Get(0).(*models.ReservationResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	done, cancelled := uuid.New(), uuid.New()
	svc := &mockService{}
	svc.On("Complete", mock.Anything, done, int64(7)).Return(&models.ReservationResponse{ID: done.String(), Status: "completed"}, nil)
	svc.On("Complete", mock.Anything, cancelled, int64(7)).Return(nil, domain.ErrInvalidTransition)
	svc.On("Complete", mock.Anything, done, int64(8)).Return(nil, domain.ErrAccessDenied)

	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}/complete", NewHandler(svc, logger.Nop()).Handle)

	send := func(id uuid.UUID, userID int64) int {
		req := httptest.NewRequest(http.MethodPatch, "/reservations/"+id.String()+"/complete", nil)
		if userID != 0 {
			req = req.WithContext(middleware.WithUserID(req.Context(), userID))
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(done, 7))
	assert.Equal(t, http.StatusConflict, send(cancelled, 7))
	assert.Equal(t, http.StatusForbidden, send(done, 8))
	assert.Equal(t, http.StatusUnauthorized, send(done, 0))
}

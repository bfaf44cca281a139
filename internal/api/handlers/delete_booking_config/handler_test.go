package delete_booking_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/config/models"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Delete(ctx context.Context, req *models.DeleteConfigRequest) error {
	return m.Called(ctx, req).Error(0)
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("Delete", mock.Anything, &models.DeleteConfigRequest{UserID: 7, ResourceID: 1, EventID: 2}).Return(nil)
	svc.On("Delete", mock.Anything, &models.DeleteConfigRequest{UserID: 8, ResourceID: 1, EventID: 2}).Return(domain.ErrAccessDenied)

	r := mux.NewRouter()
	r.HandleFunc("/resources/{resourceId}/events/{eventId}/config", NewHandler(svc, logger.Nop()).Handle)

	send := func(userID int64) int {
		req := httptest.NewRequest(http.MethodDelete, "/resources/1/events/2/config", nil)
		if userID != 0 {
			req = req.WithContext(middleware.WithUserID(req.Context(), userID))
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send(7))
	assert.Equal(t, http.StatusForbidden, send(8))
	assert.Equal(t, http.StatusUnauthorized, send(0))
}

package get_booking_config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/config/models"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Get(ctx context.Context, resourceID, eventID int64) (*models.ConfigResponse, error) {
	args := m.Called(ctx, resourceID, eventID)
	resp, _ := args.Get(0).(*models.ConfigResponse)
	return resp, args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := &mockService{}
	svc.On("Get", mock.Anything, int64(1), int64(2)).Return(&models.ConfigResponse{ResourceID: 1, EventID: 2}, nil)
	svc.On("Get", mock.Anything, int64(1), int64(3)).Return(nil, domain.ErrConfigNotFound)

	r := mux.NewRouter()
	r.HandleFunc("/resources/{resourceId}/events/{eventId}/config", NewHandler(svc, logger.Nop()).Handle)

	tests := []struct {
		url    string
		status int
	}{
		{"/resources/1/events/2/config", http.StatusOK},
		{"/resources/1/events/3/config", http.StatusNotFound},
		{"/resources/1/events/0/config", http.StatusBadRequest},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
		assert.Equal(t, tt.status, rec.Code, tt.url)
	}
}

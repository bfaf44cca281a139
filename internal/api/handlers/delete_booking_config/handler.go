package delete_booking_config

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/config/models"
)

const (
	msgInvalidPath   = "invalid resource or event ID"
	msgMissingUserID = "missing user ID"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/resources/{resourceId}/events/{eventId}/config
// Существующие бронирования не удаляются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, eventID, err := handlers.ResourceAndEvent(r)
	if err != nil {
		h.logger.Warn("DELETE /resources/{id}/events/{id}/config - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.Delete(r.Context(), &models.DeleteConfigRequest{
		UserID:     userID,
		ResourceID: resourceID,
		EventID:    eventID,
	})
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("DELETE /resources/{id}/events/{id}/config - Failed to delete config: resource_id=%d, error=%v",
				resourceID, err)
		} else {
			h.logger.Warn("DELETE /resources/{id}/events/{id}/config - Rejected: resource_id=%d, user_id=%d, error=%v",
				resourceID, userID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("DELETE /resources/{id}/events/{id}/config - Config deleted: resource_id=%d, event_id=%d", resourceID, eventID)
	w.WriteHeader(http.StatusNoContent)
}

package update_booking_config

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/config/models"
)

const (
	msgInvalidPath        = "invalid resource or event ID"
	msgMissingUserID      = "missing user ID"
	msgInvalidRequestBody = "invalid request body"
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

// Handle PUT /api/v1/resources/{resourceId}/events/{eventId}/config
// Тело: поля UpdateConfigRequest, все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, eventID, err := handlers.ResourceAndEvent(r)
	if err != nil {
		h.logger.Warn("PUT /resources/{id}/events/{id}/config - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /resources/{id}/events/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /resources/{id}/events/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.ResourceID = resourceID
	req.EventID = eventID

	result, err := h.service.Upsert(r.Context(), &req)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("PUT /resources/{id}/events/{id}/config - Failed to save config: resource_id=%d, event_id=%d, error=%v",
				resourceID, eventID, err)
		} else {
			h.logger.Warn("PUT /resources/{id}/events/{id}/config - Rejected: resource_id=%d, user_id=%d, error=%v",
				resourceID, userID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PUT /resources/{id}/events/{id}/config - Config saved: resource_id=%d, event_id=%d, user_id=%d",
		resourceID, eventID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_booking_config

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
)

const msgInvalidPath = "invalid resource or event ID"

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

// Handle GET /api/v1/resources/{resourceId}/events/{eventId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, eventID, err := handlers.ResourceAndEvent(r)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/events/{id}/config - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	result, err := h.service.Get(r.Context(), resourceID, eventID)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /resources/{id}/events/{id}/config - Failed to get config: resource_id=%d, event_id=%d, error=%v",
				resourceID, eventID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

package list_reservations

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
)

const (
	msgInvalidPath   = "invalid resource or event ID"
	msgMissingUserID = "missing user ID"
	msgInvalidParams = "invalid query parameters"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/events/{eventId}/reservations
// Query params: startDate, endDate, status, includeCancelled (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, eventID, err := handlers.ResourceAndEvent(r)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/events/{id}/reservations - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /resources/{id}/events/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(resourceID, eventID, userID,
		query.Get("startDate"), query.Get("endDate"), query.Get("status"), query.Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /resources/{id}/events/{id}/reservations - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что пользователь владелец календаря
	result, err := h.service.ListByResource(r.Context(), serviceReq)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /resources/{id}/events/{id}/reservations - Failed to list reservations: resource_id=%d, error=%v",
				resourceID, err)
		} else {
			h.logger.Warn("GET /resources/{id}/events/{id}/reservations - Rejected: resource_id=%d, user_id=%d, error=%v",
				resourceID, userID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /resources/{id}/events/{id}/reservations - Reservations retrieved: resource_id=%d, count=%d",
		resourceID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}

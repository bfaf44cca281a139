package create_reservation

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
)

const (
	msgInvalidPath        = "invalid resource or event ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidWindow      = "window must be given as windowId (YYYY-MM-DD_HH:MM-HH:MM) or as date (YYYY-MM-DD) and startTime (HH:MM)"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/resources/{resourceId}/events/{eventId}/reservations
// Аутентификация не требуется: клиент идентифицируется email из формы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, eventID, err := handlers.ResourceAndEvent(r)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/events/{id}/reservations - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/events/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(resourceID, eventID)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/events/{id}/reservations - Failed to parse window: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindow)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("POST /resources/{id}/events/{id}/reservations - Failed to create reservation: resource_id=%d, event_id=%d, error=%v",
				resourceID, eventID, err)
		} else {
			h.logger.Warn("POST /resources/{id}/events/{id}/reservations - Rejected: resource_id=%d, event_id=%d, error=%v",
				resourceID, eventID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /resources/{id}/events/{id}/reservations - Reservation created: id=%s, window=%s",
		result.Reservation.ID, result.WindowID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

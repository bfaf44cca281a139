package complete_reservation

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
)

const (
	msgInvalidReservationID = "invalid reservation ID"
	msgMissingUserID        = "missing user ID"
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

// Handle PATCH /api/v1/reservations/{reservationId}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathUUID(r, handlers.VarReservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/complete - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Complete(r.Context(), reservationID, userID)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("PATCH /reservations/{id}/complete - Failed to complete reservation: id=%s, error=%v", reservationID, err)
		} else {
			h.logger.Warn("PATCH /reservations/{id}/complete - Rejected: id=%s, user_id=%d, error=%v", reservationID, userID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/complete - Reservation completed: id=%s", reservationID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

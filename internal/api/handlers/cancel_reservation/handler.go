package cancel_reservation

import (
	"errors"
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
)

const (
	msgInvalidReservationID = "invalid reservation ID"
	msgInvalidRequestBody   = "invalid request body"
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

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
// Владелец отменяет через X-User-ID, клиент - передавая свой email в теле
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathUUID(r, handlers.VarReservationID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Владельцу тело не обязательно
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.Cancel(r.Context(), reservationID, req.ToServiceRequest(userID))
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed to cancel reservation: id=%s, error=%v", reservationID, err)
		} else {
			h.logger.Warn("PATCH /reservations/{id}/cancel - Rejected: id=%s, user_id=%d, error=%v", reservationID, userID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Reservation cancelled: id=%s, user_id=%d", reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

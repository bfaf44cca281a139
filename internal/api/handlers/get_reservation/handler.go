package get_reservation

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
)

const msgInvalidReservationID = "invalid reservation ID"

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

// Handle GET /api/v1/reservations/{reservationId}
// Владелец календаря передаёт X-User-ID, клиент - query параметр email
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	reservationID, err := handlers.PathUUID(r, handlers.VarReservationID)
	if err != nil {
		h.logger.Warn("GET /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.service.GetByID(r.Context(), &models.GetReservationRequest{
		ID:     reservationID,
		UserID: userID,
		Email:  r.URL.Query().Get("email"),
	})
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /reservations/{id} - Failed to get reservation: id=%s, error=%v", reservationID, err)
		} else {
			h.logger.Warn("GET /reservations/{id} - Rejected: id=%s, user_id=%d, error=%v", reservationID, userID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

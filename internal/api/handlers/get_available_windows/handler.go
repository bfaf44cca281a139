package get_available_windows

import (
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/api/handlers"
	"github.com/NeedlesUK/tattsync2-sub002/internal/api/middleware"
)

const (
	msgInvalidPath = "invalid resource or event ID"
	msgMissingDate = "date is required"
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableWindowsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableWindowsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/events/{eventId}/windows
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID, eventID, err := handlers.ResourceAndEvent(r)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/events/{id}/windows - Invalid path: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPath)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{id}/events/{id}/windows - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Владелец календаря (если передан X-User-ID) видит контакты клиентов
	viewerID, _ := middleware.GetUserID(r.Context())

	useCaseReq, err := ToUseCaseRequest(resourceID, eventID, viewerID, dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/events/{id}/windows - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.IsInternal(err) {
			h.logger.Error("GET /resources/{id}/events/{id}/windows - Failed to get windows: resource_id=%d, event_id=%d, error=%v",
				resourceID, eventID, err)
		} else {
			h.logger.Warn("GET /resources/{id}/events/{id}/windows - Rejected: resource_id=%d, event_id=%d, error=%v",
				resourceID, eventID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /resources/{id}/events/{id}/windows - Windows retrieved: resource_id=%d, event_id=%d, count=%d",
		resourceID, eventID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resourceID, eventID, result))
}

package list_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
)

// ToServiceRequest создает запрос сервиса из query параметров.
// Пустые параметры означают отсутствие фильтра.
func ToServiceRequest(resourceID, eventID, userID int64, startDateStr, endDateStr, statusStr, includeCancelledStr string) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		UserID:     userID,
		ResourceID: resourceID,
		EventID:    eventID,
	}

	if startDateStr != "" {
		d, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("startDate: %w", err)
		}
		req.StartDate = &d
	}

	if endDateStr != "" {
		d, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
		req.EndDate = &d
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if includeCancelledStr != "" {
		include, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("includeCancelled: %w", err)
		}
		req.IncludeCancelled = include
	}

	return req, nil
}

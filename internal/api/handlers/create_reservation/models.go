package create_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	reservationModels "github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
	createReservation "github.com/NeedlesUK/tattsync2-sub002/internal/usecase/create_reservation"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

var errMissingWindow = errors.New("either windowId or date and startTime are required")

// CreateReservationRequest HTTP request model.
// Окно задаётся либо windowId, либо парой date + startTime.
type CreateReservationRequest struct {
	WindowID  string          `json:"windowId,omitempty"`  // "2025-10-15_10:00-11:00"
	Date      string          `json:"date,omitempty"`      // "2025-10-15"
	StartTime string          `json:"startTime,omitempty"` // "10:00"
	Occupant  OccupantPayload `json:"occupant"`
}

// OccupantPayload поля формы клиента
type OccupantPayload struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	Note  *string `json:"note,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом даты и времени)
func (r *CreateReservationRequest) ToUseCaseRequest(resourceID, eventID int64) (*createReservation.Request, error) {
	req := &createReservation.Request{
		ResourceID: resourceID,
		EventID:    eventID,
		Occupant: domain.Occupant{
			Name:  r.Occupant.Name,
			Email: r.Occupant.Email,
			Phone: r.Occupant.Phone,
			Note:  r.Occupant.Note,
		},
	}

	if r.WindowID != "" {
		date, start, end, err := domain.ParseWindowID(r.WindowID)
		if err != nil {
			return nil, err
		}
		req.Date, req.StartTime, req.EndTime = date, start, end
		return req, nil
	}

	if r.Date == "" || r.StartTime == "" {
		return nil, errMissingWindow
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("date: %w", err)
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}
	req.Date, req.StartTime = date, start

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *reservationModels.ReservationResponse {
	return reservationModels.FromDomainReservation(resp.Reservation)
}

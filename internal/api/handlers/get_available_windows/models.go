package get_available_windows

import (
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	getAvailableWindows "github.com/NeedlesUK/tattsync2-sub002/internal/usecase/get_available_windows"
)

// Состояния окна в ответе
const (
	stateFree     = "free"
	stateOccupied = "occupied"
	stateBuffered = "buffered"
)

// AvailableWindowsResponse HTTP response model
type AvailableWindowsResponse struct {
	Date                string          `json:"date"`
	ResourceID          int64           `json:"resourceId"`
	EventID             int64           `json:"eventId"`
	SlotDurationMinutes int             `json:"slotDurationMinutes"`
	Windows             []WindowPayload `json:"windows"`
	Summary             SummaryPayload  `json:"summary"`
	DailyCapReached     bool            `json:"dailyCapReached"`
}

// WindowPayload модель окна календаря
type WindowPayload struct {
	ID            string           `json:"id"`
	StartTime     string           `json:"startTime"`
	EndTime       string           `json:"endTime"`
	State         string           `json:"state"`
	Bookable      bool             `json:"bookable"`
	ReservationID *string          `json:"reservationId,omitempty"`
	Occupant      *OccupantPayload `json:"occupant,omitempty"`
}

// OccupantPayload контакты клиента (только для владельца)
type OccupantPayload struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone string  `json:"phone"`
	Note  *string `json:"note,omitempty"`
}

type SummaryPayload struct {
	Total    int `json:"total"`
	Free     int `json:"free"`
	Occupied int `json:"occupied"`
	Buffered int `json:"buffered"`
}

// ToUseCaseRequest создает запрос use case из path и query параметров
func ToUseCaseRequest(resourceID, eventID, viewerID int64, dateStr string) (*getAvailableWindows.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableWindows.Request{
		ResourceID: resourceID,
		EventID:    eventID,
		Date:       date,
		ViewerID:   viewerID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resourceID, eventID int64, resp *getAvailableWindows.Response) *AvailableWindowsResponse {
	windows := make([]WindowPayload, len(resp.Windows))
	for i, w := range resp.Windows {
		windows[i] = WindowPayload{
			ID:        w.ID,
			StartTime: w.Start.String(),
			EndTime:   w.End.String(),
			State:     windowState(w.TimeWindow),
			Bookable:  w.Bookable,
		}
		if w.ReservationID != nil {
			id := w.ReservationID.String()
			windows[i].ReservationID = &id
		}
		if w.Occupant != nil {
			windows[i].Occupant = &OccupantPayload{
				Name:  w.Occupant.Name,
				Email: w.Occupant.Email,
				Phone: w.Occupant.Phone,
				Note:  w.Occupant.Note,
			}
		}
	}

	return &AvailableWindowsResponse{
		Date:                resp.Date.Format(domain.DateFormat),
		ResourceID:          resourceID,
		EventID:             eventID,
		SlotDurationMinutes: resp.SlotDuration,
		Windows:             windows,
		Summary: SummaryPayload{
			Total:    resp.TotalCount,
			Free:     resp.FreeCount,
			Occupied: resp.OccupiedCount,
			Buffered: resp.BufferedCount,
		},
		DailyCapReached: resp.DailyCapReached,
	}
}

func windowState(w domain.TimeWindow) string {
	switch {
	case w.Occupied:
		return stateOccupied
	case w.Buffered:
		return stateBuffered
	default:
		return stateFree
	}
}

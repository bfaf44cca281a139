package get_reservation

import (
	"context"

	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, req *models.GetReservationRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

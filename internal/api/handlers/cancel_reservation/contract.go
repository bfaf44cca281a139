package cancel_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	Cancel(ctx context.Context, id uuid.UUID, req *models.CancelReservationRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package list_reservations

import (
	"context"

	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
)

type ReservationService interface {
	ListByResource(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package cancel_reservation

import (
	"github.com/NeedlesUK/tattsync2-sub002/internal/service/reservations/models"
)

// CancelReservationRequest HTTP request model
type CancelReservationRequest struct {
	Email              string  `json:"email,omitempty"` // email клиента, если отменяет клиент
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *CancelReservationRequest) ToServiceRequest(userID int64) *models.CancelReservationRequest {
	return &models.CancelReservationRequest{
		UserID: userID,
		Email:  r.Email,
		Reason: r.CancellationReason,
	}
}

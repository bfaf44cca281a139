package create_reservation

import (
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
	"github.com/NeedlesUK/tattsync2-sub002/pkg/types"
)

// Request модель запроса на бронирование окна
type Request struct {
	ResourceID int64            // ID ресурса (артист или стенд)
	EventID    int64            // ID события
	Date       time.Time        // Дата (без времени)
	StartTime  types.TimeString // Начало окна, например "10:00"
	EndTime    types.TimeString // Конец окна, опционально (из ID окна)
	Occupant   domain.Occupant  // Контактные данные клиента
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation *domain.Reservation
	WindowID    string
}

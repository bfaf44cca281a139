package get_available_windows

import (
	"time"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// Request модель запроса окон на дату
type Request struct {
	ResourceID int64     // ID ресурса (артист или стенд)
	EventID    int64     // ID события
	Date       time.Time // Дата (без времени)
	ViewerID   int64     // ID пользователя из X-User-ID, 0 для анонимного клиента
}

// Window окно календаря с признаком доступности
type Window struct {
	domain.TimeWindow
	Bookable bool // свободно, вне буфера и ещё не началось
}

// Response модель ответа
type Response struct {
	Date            time.Time
	SlotDuration    int
	Windows         []Window
	TotalCount      int
	FreeCount       int
	OccupiedCount   int
	BufferedCount   int
	DailyCapReached bool
}

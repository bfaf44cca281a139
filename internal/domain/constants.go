package domain

// Значения конфигурации по умолчанию
const (
	DefaultSlotDurationMinutes       = 60
	DefaultBufferMinutes             = 0
	DefaultMaxBookingsPerDay         = 0 // 0 = без ограничений
	DefaultCancellationDeadlineHours = 24
	DefaultOpenTime                  = "10:00"
	DefaultCloseTime                 = "18:00"
)

// Ограничения бизнес-валидации
const (
	MinSlotDurationMinutes       = 5
	MaxSlotDurationMinutes       = 480 // 8 часов
	MinBufferMinutes             = 0
	MaxBufferMinutes             = 120
	MinMaxBookingsPerDay         = 0
	MaxMaxBookingsPerDay         = 100
	MinCancellationDeadlineHours = 0
	MaxCancellationDeadlineHours = 720 // 30 дней
	MaxAvailableDates            = 60
	MaxNameLength                = 120
	MaxEmailLength               = 254
	MaxPhoneLength               = 32
	MaxNoteLength                = 500
	MaxCancellationReasonLength  = 500
)

// DateFormat формат даты YYYY-MM-DD
const DateFormat = "2006-01-02"

// ActiveStatuses статусы, которые занимают окно календаря
var ActiveStatuses = []ReservationStatus{
	StatusUpcoming,
	StatusCompleted,
}

package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	minutesPerDay = 24 * 60
	timeLayout    = "15:04"
)

var (
	// ErrInvalidTimeString возвращается при некорректном формате времени
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOutOfDay возвращается, когда время выходит за пределы суток
	ErrTimeOutOfDay = errors.New("time is out of day bounds")
)

// TimeString время суток в формате HH:MM.
// Значение "24:00" допустимо только как граница конца дня (результат AddMinutes).
type TimeString struct {
	minutes int
	valid   bool
}

// NewTimeString берёт время суток из момента времени (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}
}

// NewTimeStringFromString парсит строку вида "10:00" (допускается и "10:00:00" из Postgres TIME)
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == "24:00" || s == "24:00:00" {
		return TimeString{minutes: minutesPerDay, valid: true}, nil
	}

	layout := timeLayout
	if len(s) == len("15:04:05") {
		layout = "15:04:05"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	return TimeString{minutes: t.Hour()*60 + t.Minute(), valid: true}, nil
}

// MustTimeString используется в тестах и константах
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() int {
	return t.minutes
}

// IsZero true, если время не задано
func (t TimeString) IsZero() bool {
	return !t.valid
}

// Validate проверяет, что время задано и лежит в пределах суток
func (t TimeString) Validate() error {
	if !t.valid {
		return ErrInvalidTimeString
	}
	if t.minutes < 0 || t.minutes > minutesPerDay {
		return ErrTimeOutOfDay
	}
	return nil
}

// AddMinutes возвращает время, сдвинутое на n минут.
// Ошибка, если результат выходит за пределы [00:00, 24:00].
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m := t.minutes + n
	if m < 0 || m > minutesPerDay {
		return TimeString{}, fmt.Errorf("%w: %s %+d min", ErrTimeOutOfDay, t, n)
	}
	return TimeString{minutes: m, valid: true}, nil
}

// IsBefore строго раньше
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes < other.minutes
}

// IsAfter строго позже
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes > other.minutes
}

// Equal совпадает с other
func (t TimeString) Equal(other TimeString) bool {
	return t.valid == other.valid && t.minutes == other.minutes
}

// OnDate переносит время суток на календарную дату в указанной зоне
func (t TimeString) OnDate(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = date.Location()
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(time.Duration(t.minutes) * time.Minute)
}

// String возвращает представление HH:MM
func (t TimeString) String() string {
	if !t.valid {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// MarshalText реализует encoding.TextMarshaler
func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (t *TimeString) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*t = TimeString{}
		return nil
	}
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer для колонок типа TIME
func (t TimeString) Value() (driver.Value, error) {
	if !t.valid {
		return nil, nil
	}
	if t.minutes == minutesPerDay {
		return "24:00:00", nil
	}
	return t.String() + ":00", nil
}

// Scan реализует sql.Scanner. lib/pq отдаёт TIME как строку или []byte.
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = TimeString{}
		return nil
	case string:
		return t.UnmarshalText([]byte(v))
	case []byte:
		return t.UnmarshalText(v)
	case time.Time:
		// lib/pq отдаёт TIME '24:00:00' как полночь 0000-01-02
		if v.Year() == 0 && v.YearDay() == 2 && v.Hour() == 0 && v.Minute() == 0 {
			*t = TimeString{minutes: minutesPerDay, valid: true}
			return nil
		}
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

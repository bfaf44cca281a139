package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Имена path параметров
const (
	VarResourceID    = "resourceId"
	VarEventID       = "eventId"
	VarReservationID = "reservationId"
)

// PathInt64 разбирает положительный целочисленный path параметр
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// ResourceAndEvent разбирает {resourceId} и {eventId}
func ResourceAndEvent(r *http.Request) (int64, int64, error) {
	resourceID, err := PathInt64(r, VarResourceID)
	if err != nil {
		return 0, 0, err
	}
	eventID, err := PathInt64(r, VarEventID)
	if err != nil {
		return 0, 0, err
	}
	return resourceID, eventID, nil
}

// PathUUID разбирает UUID из path параметра
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

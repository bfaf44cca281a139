package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"slot occupied", domain.ErrSlotOccupied, http.StatusConflict, CodeSlotOccupied},
		{"wrapped slot occupied", fmt.Errorf("create: %w", domain.ErrSlotOccupied), http.StatusConflict, CodeSlotOccupied},
		{"off grid", domain.ErrWindowOffGrid, http.StatusBadRequest, CodeValidation},
		{"field error", &domain.FieldError{Field: "email", Reason: "invalid"}, http.StatusBadRequest, CodeValidation},
		{"not found", domain.ErrReservationNotFound, http.StatusNotFound, CodeNotFound},
		{"deadline", domain.ErrCancellationDeadlinePassed, http.StatusUnprocessableEntity, CodeDeadlinePassed},
		{"policy", domain.ErrBookingDisabled, http.StatusForbidden, CodeForbidden},
		{"state", domain.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
		{"internal", errors.New("db down"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := StatusFromError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRespondDomainError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, errors.New("pq: password authentication failed"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, CodeInternal, body.Code)
	assert.NotContains(t, body.Message, "password")
}

func TestRespondDomainError_FieldMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondDomainError(rec, fmt.Errorf("wrap: %w", &domain.FieldError{Field: "email", Reason: "invalid address"}))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email: invalid address", body.Message)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane"}`))
	require.NoError(t, DecodeJSON(r, &v))
	assert.Equal(t, "Jane", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"nme":"Jane"}`))
	assert.Error(t, DecodeJSON(r, &v))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	assert.Error(t, DecodeJSON(r, &v))
}

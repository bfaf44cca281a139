package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Коды ошибок в теле ответа
const (
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_error"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeSlotOccupied      = "slot_occupied"
	CodeDeadlinePassed    = "cancellation_deadline_passed"
	CodeInvalidTransition = "invalid_transition"
	CodeTooManyRequests   = "too_many_requests"
	CodeInternal          = "internal_error"
)

const msgInternalError = "internal server error"

// ErrEmptyBody тело запроса отсутствует
var ErrEmptyBody = errors.New("empty request body")

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DecodeJSON декодирует тело запроса в v. Неизвестные поля и лишние данные после объекта - ошибка.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return ErrEmptyBody
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("decode json: %w", err)
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError отправляет ошибку с кодом, соответствующим HTTP статусу
func RespondError(w http.ResponseWriter, status int, message string) {
	respondError(w, status, codeForStatus(status), message)
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	respondError(w, http.StatusBadRequest, CodeBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	respondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	respondError(w, http.StatusForbidden, CodeForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	respondError(w, http.StatusNotFound, CodeNotFound, message)
}

func RespondInternalError(w http.ResponseWriter) {
	respondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}

// RespondDomainError отвечает по виду доменной ошибки:
// Validation -> 400 (занятое окно -> 409), NotFound -> 404,
// Policy -> 403 (прошёл срок отмены -> 422), State -> 409, прочее -> 500.
// Для внутренних ошибок текст наружу не отдаётся.
func RespondDomainError(w http.ResponseWriter, err error) {
	status, code := StatusFromError(err)
	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return
	}
	respondError(w, status, code, messageFromError(err))
}

// StatusFromError возвращает HTTP статус и код ответа для ошибки
func StatusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrSlotOccupied):
		return http.StatusConflict, CodeSlotOccupied
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrCancellationDeadlinePassed):
		return http.StatusUnprocessableEntity, CodeDeadlinePassed
	case errors.Is(err, domain.ErrPolicy):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrState):
		return http.StatusConflict, CodeInvalidTransition
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// IsInternal true, если ошибка не относится ни к одному доменному виду и отдаётся как 500
func IsInternal(err error) bool {
	status, _ := StatusFromError(err)
	return status == http.StatusInternalServerError
}

// messageFromError текст ошибки для клиента; для ошибки поля формы только поле и причина
func messageFromError(err error) string {
	var fieldErr *domain.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}
	return err.Error()
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeBadRequest
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeTooManyRequests
	case http.StatusInternalServerError:
		return CodeInternal
	default:
		return http.StatusText(status)
	}
}

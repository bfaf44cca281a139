package get_available_windows

import (
	"errors"
	"fmt"

	"github.com/NeedlesUK/tattsync2-sub002/internal/domain"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_windows: invalid input data: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_windows: internal error")
)

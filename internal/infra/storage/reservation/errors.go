package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrWindowTaken возвращается, когда окно занято или пересекается с активным бронированием
	ErrWindowTaken = errors.New("reservation.repository: time window already taken")

	// ErrStatusChanged возвращается, когда бронирование уже не в статусе upcoming
	ErrStatusChanged = errors.New("reservation.repository: reservation is no longer upcoming")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

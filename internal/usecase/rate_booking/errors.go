package rate_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("rate_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец бронирования
	ErrAccessDenied = errors.New("rate_booking: access denied")

	// ErrClassNotStarted возвращается при попытке оценить занятие,
	// которое еще не началось
	ErrClassNotStarted = errors.New("rate_booking: class has not started yet")

	// ErrInvalidState возвращается при попытке оценить отмененное бронирование
	ErrInvalidState = errors.New("rate_booking: booking cannot be rated in its current state")

	// ErrAlreadyRated возвращается, когда оценка уже выставлена
	ErrAlreadyRated = errors.New("rate_booking: booking is already rated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rate_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("rate_booking: internal error")
)

package mark_attendance

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("mark_attendance: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не администратор
	// и не тренер, ведущий это занятие
	ErrAccessDenied = errors.New("mark_attendance: access denied")

	// ErrClassNotStarted возвращается при попытке отметить посещаемость
	// до начала занятия
	ErrClassNotStarted = errors.New("mark_attendance: class has not started yet")

	// ErrInvalidState возвращается при попытке отметить отмененное бронирование
	ErrInvalidState = errors.New("mark_attendance: booking cannot be marked in its current state")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("mark_attendance: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("mark_attendance: internal error")
)

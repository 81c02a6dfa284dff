package cancel_schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда занятие не найдено
	ErrScheduleNotFound = errors.New("cancel_schedule: schedule not found")

	// ErrAlreadyCancelled возвращается, когда занятие уже отменено
	ErrAlreadyCancelled = errors.New("cancel_schedule: schedule is already cancelled")

	// ErrAccessDenied возвращается, когда пользователь не администратор
	// и не тренер, ведущий это занятие
	ErrAccessDenied = errors.New("cancel_schedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_schedule: internal error")
)

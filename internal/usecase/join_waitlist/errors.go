package join_waitlist

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда занятие не найдено
	ErrScheduleNotFound = errors.New("join_waitlist: schedule not found")

	// ErrScheduleNotActive возвращается, когда занятие отменено или завершено
	ErrScheduleNotActive = errors.New("join_waitlist: schedule is not active")

	// ErrPastSchedule возвращается, когда занятие уже началось
	ErrPastSchedule = errors.New("join_waitlist: schedule has already started")

	// ErrClassNotFull возвращается, когда на занятии есть свободные места:
	// лист ожидания только для заполненных занятий, нужно бронировать напрямую
	ErrClassNotFull = errors.New("join_waitlist: schedule has open spots")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть
	// подтвержденное бронирование на это занятие
	ErrDuplicateBooking = errors.New("join_waitlist: booking already exists")

	// ErrAlreadyWaiting возвращается, когда пользователь уже в листе ожидания
	// Текущую позицию несет domain.AlreadyWaitingError (errors.As)
	ErrAlreadyWaiting = errors.New("join_waitlist: already on the waiting list")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("join_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("join_waitlist: internal error")
)

package create_booking

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда занятие не найдено
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrScheduleNotActive возвращается, когда занятие отменено или завершено
	ErrScheduleNotActive = errors.New("create_booking: schedule is not active")

	// ErrPastSchedule возвращается, когда занятие уже началось
	ErrPastSchedule = errors.New("create_booking: schedule has already started")

	// ErrDuplicateBooking возвращается, когда у пользователя уже есть
	// подтвержденное бронирование на это занятие
	ErrDuplicateBooking = errors.New("create_booking: booking already exists")

	// ErrScheduleFull возвращается, когда на занятии не осталось мест
	// Сигнал вызывающей стороне предложить лист ожидания
	ErrScheduleFull = errors.New("create_booking: schedule is full")

	// ErrBookingConflict возвращается при пересечении с другим
	// подтвержденным бронированием пользователя
	// Детали конфликта несет domain.ConflictError (errors.As)
	ErrBookingConflict = errors.New("create_booking: conflicting booking exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

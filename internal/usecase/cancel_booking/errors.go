package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец
	// бронирования и не администратор
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrNotConfirmed возвращается, когда бронирование не в статусе confirmed
	ErrNotConfirmed = errors.New("cancel_booking: booking is not confirmed")

	// ErrPastSchedule возвращается, когда занятие уже началось
	ErrPastSchedule = errors.New("cancel_booking: schedule has already started")

	// ErrTooLateToCancel возвращается, когда до начала занятия осталось
	// меньше допустимого окна отмены (для неадминистраторов)
	ErrTooLateToCancel = errors.New("cancel_booking: too late to cancel")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

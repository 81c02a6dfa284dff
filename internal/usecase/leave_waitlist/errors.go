package leave_waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("leave_waitlist: entry not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец записи
	// и не администратор
	ErrAccessDenied = errors.New("leave_waitlist: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("leave_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("leave_waitlist: internal error")
)

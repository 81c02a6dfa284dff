package confirm_waitlist

import "errors"

var (
	// ErrEntryNotFound возвращается, когда запись листа ожидания не найдена
	ErrEntryNotFound = errors.New("confirm_waitlist: entry not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец записи
	ErrAccessDenied = errors.New("confirm_waitlist: access denied")

	// ErrNotNotified возвращается, когда место пользователю еще не предлагали
	ErrNotNotified = errors.New("confirm_waitlist: entry has not been notified")

	// ErrNotificationExpired возвращается, когда окно подтверждения истекло
	// Запись при этом удаляется (ленивое истечение)
	ErrNotificationExpired = errors.New("confirm_waitlist: notification expired")

	// ErrPastSchedule возвращается, когда занятие уже началось
	ErrPastSchedule = errors.New("confirm_waitlist: schedule has already started")

	// ErrScheduleNotActive возвращается, когда занятие отменено или завершено
	ErrScheduleNotActive = errors.New("confirm_waitlist: schedule is not active")

	// ErrScheduleFull возвращается, когда мест вопреки уведомлению не осталось
	// (защитная перепроверка вместимости)
	ErrScheduleFull = errors.New("confirm_waitlist: schedule is full")

	// ErrBookingConflict возвращается, когда у пользователя появилось
	// пересекающееся подтвержденное бронирование
	// Детали конфликта несет domain.ConflictError (errors.As)
	ErrBookingConflict = errors.New("confirm_waitlist: conflicting booking exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_waitlist: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_waitlist: internal error")
)

package domain

import "fmt"

// ConflictError возвращается, когда у пользователя уже есть подтвержденное
// бронирование, пересекающееся по времени с занятием-кандидатом
// Несет данные конфликтующего занятия для ответа пользователю
type ConflictError struct {
	Conflict ConflictingBooking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("booking conflict with class %q (%s - %s)",
		e.Conflict.ClassName,
		e.Conflict.StartTime.Format("2006-01-02 15:04"),
		e.Conflict.EndTime.Format("15:04"))
}

// AlreadyWaitingError возвращается при повторной попытке встать
// в лист ожидания; несет текущую позицию пользователя
type AlreadyWaitingError struct {
	Position int
}

func (e *AlreadyWaitingError) Error() string {
	return fmt.Sprintf("already on the waiting list at position %d", e.Position)
}

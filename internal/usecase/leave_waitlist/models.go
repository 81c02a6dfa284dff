package leave_waitlist

import "github.com/m04kA/FitnessClassService/internal/domain"

// Request модель запроса на выход из листа ожидания
type Request struct {
	Actor   domain.Actor // Текущий пользователь
	EntryID int64        // ID записи листа ожидания
}

// Response модель ответа о выходе из листа ожидания
type Response struct {
	EntryID    int64
	ScheduleID int64
	// Позиция, которую занимала удаленная запись
	Position int
}

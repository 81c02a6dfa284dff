package cancel_schedule

import "github.com/m04kA/FitnessClassService/internal/domain"

// Request модель запроса на отмену занятия
type Request struct {
	Actor      domain.Actor // Текущий пользователь
	ScheduleID int64        // ID занятия
	Reason     *string      // Причина отмены (опционально)
}

// Response итог каскадной отмены занятия
type Response struct {
	ScheduleID int64
	Status     string

	// Число отмененных подтвержденных бронирований
	AffectedBookings int64

	// Число удаленных записей листа ожидания
	RemovedWaitlistEntries int64
}

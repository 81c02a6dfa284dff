package join_waitlist

import (
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
)

// Request модель запроса на вступление в лист ожидания
type Request struct {
	Actor      domain.Actor // Текущий пользователь
	ScheduleID int64        // ID занятия
}

// Response модель ответа с созданной записью листа ожидания
type Response struct {
	EntryID    int64
	UserID     int64
	ScheduleID int64
	Position   int
	CreatedAt  time.Time

	// Денормализованные данные занятия
	ClassName string
	StartTime time.Time
}

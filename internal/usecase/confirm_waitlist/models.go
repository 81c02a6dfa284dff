package confirm_waitlist

import (
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
)

// Request модель запроса на подтверждение места из листа ожидания
type Request struct {
	Actor   domain.Actor // Текущий пользователь
	EntryID int64        // ID записи листа ожидания
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID  int64
	UserID     int64
	ScheduleID int64
	Status     string
	BookedAt   time.Time

	// Денормализованные данные занятия
	ClassName string
	StartTime time.Time
	EndTime   time.Time
	Room      string
}

package create_booking

import (
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
)

// Request модель запроса на запись на занятие
type Request struct {
	Actor      domain.Actor // Текущий пользователь
	ScheduleID int64        // ID занятия
}

// Response модель ответа с созданным (или реактивированным) бронированием
type Response struct {
	ID          int64     // ID бронирования
	UserID      int64     // ID пользователя
	ScheduleID  int64     // ID занятия
	Status      string    // Статус бронирования
	BookedAt    time.Time // Время записи
	Reactivated bool      // true, если реактивировано отмененное бронирование

	// Денормализованные данные занятия
	ClassName string
	StartTime time.Time
	EndTime   time.Time
	Room      string
}

package mark_attendance

import "github.com/m04kA/FitnessClassService/internal/domain"

// Request модель запроса на отметку посещаемости
type Request struct {
	Actor     domain.Actor // Текущий пользователь
	BookingID int64        // ID бронирования
	Attended  bool         // Присутствовал ли участник
}

// Response модель ответа с отметкой посещаемости
type Response struct {
	BookingID int64
	Status    string
	Attended  bool
}

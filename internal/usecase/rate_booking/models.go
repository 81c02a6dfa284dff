package rate_booking

import "github.com/m04kA/FitnessClassService/internal/domain"

// Request модель запроса на оценку занятия
type Request struct {
	Actor     domain.Actor // Текущий пользователь
	BookingID int64        // ID бронирования
	Rating    int          // Оценка от 1 до 5
	Feedback  *string      // Текстовый отзыв (опционально)
}

// Response модель ответа с выставленной оценкой
type Response struct {
	BookingID int64
	Status    string
	Rating    int
	Feedback  *string

	// Новый средневзвешенный рейтинг тренера
	TrainerRating float64
}

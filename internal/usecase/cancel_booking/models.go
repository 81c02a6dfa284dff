package cancel_booking

import (
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
)

// Windows временные окна бизнес-правил отмены
// Заполняются из config.toml (секция [booking])
type Windows struct {
	// Минимальный срок до начала занятия для отмены неадминистратором
	// Граница исключающая: ровно за CancellationDeadline отмена проходит
	CancellationDeadline time.Duration

	// Порог классификации "поздней отмены" (только для отчета вызывающей
	// стороне, на состояние не влияет)
	LateThreshold time.Duration

	// Окно подтверждения места для продвинутого из листа ожидания
	ConfirmationWindow time.Duration
}

// Request модель запроса на отмену бронирования
type Request struct {
	Actor     domain.Actor // Текущий пользователь
	BookingID int64        // ID бронирования
	Reason    *string      // Причина отмены (опционально)
}

// Response модель ответа об отмене
type Response struct {
	BookingID   int64
	Status      string
	CancelledAt time.Time

	// Поздняя отмена (меньше суток до начала) - для уведомлений и аналитики
	IsLateCancellation bool

	// ID пользователя, продвинутого из листа ожидания (nil, если лист пуст)
	PromotedUserID *int64
}

package confirm_waitlist

import (
	"context"
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
	"github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
)

// ScheduleRepository интерфейс репозитория занятий
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	ReserveSlot(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetByUserAndSchedule(ctx context.Context, userID, scheduleID int64) (*domain.Booking, error)
	FindConflicting(ctx context.Context, userID int64, start, end time.Time, excludeScheduleID int64) ([]*domain.ConflictingBooking, error)
	Reactivate(ctx context.Context, id int64, bookedAt time.Time) error
}

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.WaitingListEntry, error)
	Delete(ctx context.Context, id int64) error
	ShiftPositionsAfter(ctx context.Context, scheduleID int64, position int) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
type NotifyClient interface {
	Send(ctx context.Context, n *notifyservice.Notification) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

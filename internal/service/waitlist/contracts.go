package waitlist

import (
	"context"

	"github.com/m04kA/FitnessClassService/internal/domain"
)

// WaitlistRepository интерфейс репозитория листа ожидания
type WaitlistRepository interface {
	ListBySchedule(ctx context.Context, scheduleID int64) ([]*domain.WaitingListEntry, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.WaitingListEntry, error)
}

// ScheduleRepository интерфейс репозитория занятий
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package cancel_schedule

import (
	"context"

	cancelSchedule "github.com/m04kA/FitnessClassService/internal/usecase/cancel_schedule"
)

type CancelScheduleUseCase interface {
	Execute(ctx context.Context, req *cancelSchedule.Request) (*cancelSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

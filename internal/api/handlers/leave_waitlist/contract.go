package leave_waitlist

import (
	"context"

	leaveWaitlist "github.com/m04kA/FitnessClassService/internal/usecase/leave_waitlist"
)

type LeaveWaitlistUseCase interface {
	Execute(ctx context.Context, req *leaveWaitlist.Request) (*leaveWaitlist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

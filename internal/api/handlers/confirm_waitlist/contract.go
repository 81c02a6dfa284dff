package confirm_waitlist

import (
	"context"

	confirmWaitlist "github.com/m04kA/FitnessClassService/internal/usecase/confirm_waitlist"
)

type ConfirmWaitlistUseCase interface {
	Execute(ctx context.Context, req *confirmWaitlist.Request) (*confirmWaitlist.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_user_waitlist

import (
	"context"

	"github.com/m04kA/FitnessClassService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetUserWaitlist(ctx context.Context, req *models.GetUserWaitlistRequest) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

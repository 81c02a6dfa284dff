package get_schedule_waitlist

import (
	"context"

	"github.com/m04kA/FitnessClassService/internal/service/waitlist/models"
)

type WaitlistService interface {
	GetScheduleWaitlist(ctx context.Context, req *models.GetScheduleWaitlistRequest) (*models.EntryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

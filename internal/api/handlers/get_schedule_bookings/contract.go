package get_schedule_bookings

import (
	"context"

	"github.com/m04kA/FitnessClassService/internal/service/bookings/models"
)

type BookingsService interface {
	GetScheduleBookings(ctx context.Context, req *models.GetScheduleBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package confirm_waitlist

import (
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
	confirmWaitlist "github.com/m04kA/FitnessClassService/internal/usecase/confirm_waitlist"
)

// ConfirmWaitlistResponse HTTP response model
type ConfirmWaitlistResponse struct {
	BookingID  int64  `json:"bookingId"`
	UserID     int64  `json:"userId"`
	ScheduleID int64  `json:"scheduleId"`
	Status     string `json:"status"`
	BookedAt   string `json:"bookedAt"`

	ClassName string `json:"className"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Room      string `json:"room"`
}

// ConflictResponse тело ответа 409 при пересечении по времени
type ConflictResponse struct {
	Error    string          `json:"error"`
	Conflict ConflictDetails `json:"conflict"`
}

// ConflictDetails данные конфликтующего бронирования
type ConflictDetails struct {
	BookingID  int64  `json:"bookingId"`
	ScheduleID int64  `json:"scheduleId"`
	ClassName  string `json:"className"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *confirmWaitlist.Response) *ConfirmWaitlistResponse {
	return &ConfirmWaitlistResponse{
		BookingID:  resp.BookingID,
		UserID:     resp.UserID,
		ScheduleID: resp.ScheduleID,
		Status:     resp.Status,
		BookedAt:   resp.BookedAt.Format(time.RFC3339),
		ClassName:  resp.ClassName,
		StartTime:  resp.StartTime.Format(time.RFC3339),
		EndTime:    resp.EndTime.Format(time.RFC3339),
		Room:       resp.Room,
	}
}

// FromConflictError конвертирует доменную ошибку пересечения в тело 409
func FromConflictError(message string, conflictErr *domain.ConflictError) *ConflictResponse {
	c := conflictErr.Conflict
	return &ConflictResponse{
		Error: message,
		Conflict: ConflictDetails{
			BookingID:  c.BookingID,
			ScheduleID: c.ScheduleID,
			ClassName:  c.ClassName,
			StartTime:  c.StartTime.Format(time.RFC3339),
			EndTime:    c.EndTime.Format(time.RFC3339),
		},
	}
}

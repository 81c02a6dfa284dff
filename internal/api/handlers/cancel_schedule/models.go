package cancel_schedule

import (
	"github.com/m04kA/FitnessClassService/internal/domain"
	cancelSchedule "github.com/m04kA/FitnessClassService/internal/usecase/cancel_schedule"
)

// CancelScheduleRequest HTTP request model
type CancelScheduleRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelScheduleResponse HTTP response model
type CancelScheduleResponse struct {
	ScheduleID int64  `json:"scheduleId"`
	Status     string `json:"status"`

	AffectedBookings       int64 `json:"affectedBookings"`
	RemovedWaitlistEntries int64 `json:"removedWaitlistEntries"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelScheduleRequest) ToUseCaseRequest(actor domain.Actor, scheduleID int64) *cancelSchedule.Request {
	return &cancelSchedule.Request{
		Actor:      actor,
		ScheduleID: scheduleID,
		Reason:     r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelSchedule.Response) *CancelScheduleResponse {
	return &CancelScheduleResponse{
		ScheduleID:             resp.ScheduleID,
		Status:                 resp.Status,
		AffectedBookings:       resp.AffectedBookings,
		RemovedWaitlistEntries: resp.RemovedWaitlistEntries,
	}
}

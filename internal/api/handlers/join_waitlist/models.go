package join_waitlist

import (
	"time"

	joinWaitlist "github.com/m04kA/FitnessClassService/internal/usecase/join_waitlist"
)

// JoinWaitlistResponse HTTP response model
type JoinWaitlistResponse struct {
	EntryID    int64  `json:"entryId"`
	UserID     int64  `json:"userId"`
	ScheduleID int64  `json:"scheduleId"`
	Position   int    `json:"position"`
	CreatedAt  string `json:"createdAt"`

	ClassName string `json:"className"`
	StartTime string `json:"startTime"`
}

// AlreadyWaitingResponse тело ответа 409 с текущей позицией в очереди
type AlreadyWaitingResponse struct {
	Error    string `json:"error"`
	Position int    `json:"position"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *joinWaitlist.Response) *JoinWaitlistResponse {
	return &JoinWaitlistResponse{
		EntryID:    resp.EntryID,
		UserID:     resp.UserID,
		ScheduleID: resp.ScheduleID,
		Position:   resp.Position,
		CreatedAt:  resp.CreatedAt.Format(time.RFC3339),
		ClassName:  resp.ClassName,
		StartTime:  resp.StartTime.Format(time.RFC3339),
	}
}

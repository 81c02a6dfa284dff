package mark_attendance

import (
	"github.com/m04kA/FitnessClassService/internal/domain"
	markAttendance "github.com/m04kA/FitnessClassService/internal/usecase/mark_attendance"
)

// MarkAttendanceRequest HTTP request model
type MarkAttendanceRequest struct {
	Attended *bool `json:"attended"`
}

// MarkAttendanceResponse HTTP response model
type MarkAttendanceResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
	Attended  bool   `json:"attended"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *MarkAttendanceRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *markAttendance.Request {
	return &markAttendance.Request{
		Actor:     actor,
		BookingID: bookingID,
		Attended:  *r.Attended,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *markAttendance.Response) *MarkAttendanceResponse {
	return &MarkAttendanceResponse{
		BookingID: resp.BookingID,
		Status:    resp.Status,
		Attended:  resp.Attended,
	}
}

package cancel_booking

import (
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
	cancelBooking "github.com/m04kA/FitnessClassService/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID   int64  `json:"bookingId"`
	Status      string `json:"status"`
	CancelledAt string `json:"cancelledAt"`

	IsLateCancellation bool   `json:"isLateCancellation"`
	PromotedUserID     *int64 `json:"promotedUserId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *cancelBooking.Request {
	return &cancelBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Reason:    r.Reason,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:          resp.BookingID,
		Status:             resp.Status,
		CancelledAt:        resp.CancelledAt.Format(time.RFC3339),
		IsLateCancellation: resp.IsLateCancellation,
		PromotedUserID:     resp.PromotedUserID,
	}
}

package rate_booking

import (
	"github.com/m04kA/FitnessClassService/internal/domain"
	rateBooking "github.com/m04kA/FitnessClassService/internal/usecase/rate_booking"
)

// RateBookingRequest HTTP request model
type RateBookingRequest struct {
	Rating   int     `json:"rating"`
	Feedback *string `json:"feedback,omitempty"`
}

// RateBookingResponse HTTP response model
type RateBookingResponse struct {
	BookingID int64   `json:"bookingId"`
	Status    string  `json:"status"`
	Rating    int     `json:"rating"`
	Feedback  *string `json:"feedback,omitempty"`

	TrainerRating float64 `json:"trainerRating"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RateBookingRequest) ToUseCaseRequest(actor domain.Actor, bookingID int64) *rateBooking.Request {
	return &rateBooking.Request{
		Actor:     actor,
		BookingID: bookingID,
		Rating:    r.Rating,
		Feedback:  r.Feedback,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rateBooking.Response) *RateBookingResponse {
	return &RateBookingResponse{
		BookingID:     resp.BookingID,
		Status:        resp.Status,
		Rating:        resp.Rating,
		Feedback:      resp.Feedback,
		TrainerRating: resp.TrainerRating,
	}
}

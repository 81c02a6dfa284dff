package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
	StatusNoShow    BookingStatus = "no_show"
)

// Booking represents a member's booking for one schedule
// На пару (user, schedule) существует не более одной строки:
// отмененное бронирование реактивируется, а не дублируется
type Booking struct {
	ID         int64
	UserID     int64
	ScheduleID int64
	Status     BookingStatus
	BookedAt   time.Time

	CancellationReason *string
	CancelledAt        *time.Time

	Attended *bool
	Rating   *int // 1..5
	Feedback *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking currently holds a seat
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can transition to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// CanBeReactivated returns true if a new booking attempt should
// reactivate this row instead of inserting a duplicate
func (b *Booking) CanBeReactivated() bool {
	return b.Status == StatusCancelled
}

// IsRated returns true if the member already left a rating
func (b *Booking) IsRated() bool {
	return b.Rating != nil
}

// ValidRating returns true if the rating value is within 1..5
func ValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

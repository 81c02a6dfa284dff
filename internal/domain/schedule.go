package domain

import "time"

// ScheduleStatus represents the status of a class schedule
type ScheduleStatus string

const (
	ScheduleActive    ScheduleStatus = "active"
	ScheduleCancelled ScheduleStatus = "cancelled"
	ScheduleCompleted ScheduleStatus = "completed"
)

// Schedule represents one concrete occurrence of a class
// CurrentBookings is the authoritative count of confirmed bookings:
// it is owned by this row exclusively and changed only inside the
// schedule-scoped transaction (never recomputed from bookings)
type Schedule struct {
	ID              int64
	ClassID         int64
	TrainerID       int64 // user_id тренера, ведущего занятие
	StartTime       time.Time
	EndTime         time.Time
	Room            string
	Status          ScheduleStatus
	CurrentBookings int
	Capacity        int // вместимость занятия (из класса)

	// Денормализованные данные класса для ответов и уведомлений
	ClassName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the schedule accepts bookings
func (s *Schedule) IsActive() bool {
	return s.Status == ScheduleActive
}

// IsFull returns true if no seats are left
func (s *Schedule) IsFull() bool {
	return s.CurrentBookings >= s.Capacity
}

// HasStarted returns true if the schedule has already started at the given moment
func (s *Schedule) HasStarted(now time.Time) bool {
	return !s.StartTime.After(now)
}

// Overlaps reports whether two schedules intersect in time,
// using half-open intervals [start, end)
func (s *Schedule) Overlaps(start, end time.Time) bool {
	return s.StartTime.Before(end) && s.EndTime.After(start)
}

// OwnedBy returns true if the schedule belongs to the given trainer
func (s *Schedule) OwnedBy(trainerUserID int64) bool {
	return s.TrainerID == trainerUserID
}

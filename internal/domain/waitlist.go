package domain

import "time"

// WaitingListEntry represents a member's place in a schedule's waiting list
// Позиции в рамках одного занятия образуют плотную последовательность 1..N
// без пропусков и дубликатов (в состоянии покоя)
type WaitingListEntry struct {
	ID         int64
	UserID     int64
	ScheduleID int64
	Position   int

	// Окно подтверждения: выставляется при продвижении из очереди
	Notified   bool
	NotifiedAt *time.Time
	ExpiresAt  *time.Time

	CreatedAt time.Time
}

// IsNotified returns true if the entry has been offered a freed seat
func (e *WaitingListEntry) IsNotified() bool {
	return e.Notified
}

// IsExpired returns true if the confirmation window has passed
func (e *WaitingListEntry) IsExpired(now time.Time) bool {
	return e.ExpiresAt != nil && e.ExpiresAt.Before(now)
}

package notifyservice

// EventType тип события уведомления
type EventType string

const (
	EventBookingConfirmed  EventType = "booking_confirmed"
	EventBookingCancelled  EventType = "booking_cancelled"
	EventWaitlistPromoted  EventType = "waitlist_promoted"
	EventScheduleCancelled EventType = "schedule_cancelled"
)

// Notification запрос на отправку уведомления пользователю
type Notification struct {
	UserID     int64     `json:"user_id"`
	Event      EventType `json:"event"`
	ScheduleID int64     `json:"schedule_id"`
	ClassName  string    `json:"class_name"`
	StartTime  string    `json:"start_time"` // RFC3339
	// Для waitlist_promoted: до какого момента действует предложение
	ExpiresAt *string `json:"expires_at,omitempty"`
	// Для schedule_cancelled / booking_cancelled: причина
	Reason *string `json:"reason,omitempty"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

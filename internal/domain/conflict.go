package domain

import "time"

// ConflictingBooking подтвержденное бронирование пользователя,
// пересекающееся по времени с занятием-кандидатом
// Используется детектором конфликтов (чистое чтение, без побочных эффектов)
type ConflictingBooking struct {
	BookingID  int64
	ScheduleID int64
	ClassName  string
	StartTime  time.Time
	EndTime    time.Time
}

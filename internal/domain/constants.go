package domain

// Default business configuration values
// Переопределяются секцией [booking] в config.toml
const (
	// Минимальный срок до начала занятия, когда участник ещё может
	// отменить запись (граница исключающая: ровно 2 часа - можно)
	DefaultCancellationDeadlineMinutes = 120

	// Порог классификации "поздней отмены" (для уведомлений и аналитики,
	// на состояние не влияет)
	DefaultLateCancellationMinutes = 1440

	// Окно подтверждения места из листа ожидания
	DefaultConfirmationWindowMinutes = 1440
)

// Business validation constants
const (
	MinRating = 1
	MaxRating = 5

	MaxCancellationReasonLength = 500
	MaxFeedbackLength           = 1000
)

// ScheduleCancelledReason причина, проставляемая бронированиям
// при каскадной отмене занятия
const ScheduleCancelledReason = "занятие отменено"

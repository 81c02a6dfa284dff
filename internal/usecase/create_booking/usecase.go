package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	"github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
)

// UseCase use case записи на занятие
// Покрывает и создание нового бронирования, и реактивацию отмененного:
// на пару (user, schedule) существует не более одной строки
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case записи на занятие
// Вся проверка и изменение вместимости выполняются в сериализуемой
// транзакции с заблокированной строкой занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, schedule=%d", req.Actor.UserID, req.ScheduleID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Фиксируем "сейчас" один раз на всю операцию
	now := uc.timeProvider.Now()

	var (
		result      *domain.Booking
		sched       *domain.Schedule
		reactivated bool
	)

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем занятие с блокировкой строки (замок уровня занятия)
		s, err := uc.scheduleRepo.GetByID(txCtx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		sched = s

		// 3.2. Темпоральные проверки и проверка статуса
		if !s.IsActive() {
			return ErrScheduleNotActive
		}
		if s.HasStarted(now) {
			return ErrPastSchedule
		}

		// 3.3. Ищем существующую строку (user, schedule)
		existing, err := uc.bookingRepo.GetByUserAndSchedule(txCtx, req.Actor.UserID, s.ID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: failed to get existing booking: %v", ErrInternal, err)
		}

		if existing != nil && !existing.CanBeReactivated() {
			// confirmed, completed или no_show - вторую строку не создаем
			return ErrDuplicateBooking
		}

		// 3.4. Детектор конфликтов: пересечения с другими подтвержденными
		// бронированиями пользователя
		if err := uc.checkConflicts(txCtx, req.Actor.UserID, s, now); err != nil {
			return err
		}

		// 3.5. Атомарно занимаем место (проверка вместимости + инкремент)
		if err := uc.scheduleRepo.ReserveSlot(txCtx, s.ID); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleFull) {
				return ErrScheduleFull
			}
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 3.6. Создаем или реактивируем бронирование
		if existing != nil {
			if err := uc.bookingRepo.Reactivate(txCtx, existing.ID, now); err != nil {
				return fmt.Errorf("%w: failed to reactivate booking: %v", ErrInternal, err)
			}
			existing.Status = domain.StatusConfirmed
			existing.BookedAt = now
			existing.CancellationReason = nil
			existing.CancelledAt = nil
			result = existing
			reactivated = true
			return nil
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:     req.Actor.UserID,
			ScheduleID: s.ID,
			Status:     domain.StatusConfirmed,
			BookedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: booking id=%d confirmed for user=%d (reactivated=%t)",
		result.ID, result.UserID, reactivated)

	// 4. Уведомление best-effort, сбой не влияет на результат
	uc.notify(ctx, result, sched)

	return &Response{
		ID:          result.ID,
		UserID:      result.UserID,
		ScheduleID:  result.ScheduleID,
		Status:      string(result.Status),
		BookedAt:    result.BookedAt,
		Reactivated: reactivated,
		ClassName:   sched.ClassName,
		StartTime:   sched.StartTime,
		EndTime:     sched.EndTime,
		Room:        sched.Room,
	}, nil
}

// checkConflicts возвращает ошибку, если у пользователя есть подтвержденное
// бронирование, пересекающееся по времени с занятием
func (uc *UseCase) checkConflicts(ctx context.Context, userID int64, s *domain.Schedule, now time.Time) error {
	conflicts, err := uc.bookingRepo.FindConflicting(ctx, userID, s.StartTime, s.EndTime, s.ID)
	if err != nil {
		return fmt.Errorf("%w: failed to find conflicts: %v", ErrInternal, err)
	}

	if len(conflicts) > 0 {
		uc.logger.Warn("CreateBooking: conflict for user=%d with booking id=%d", userID, conflicts[0].BookingID)
		return fmt.Errorf("%w: %w", ErrBookingConflict, &domain.ConflictError{Conflict: *conflicts[0]})
	}

	return nil
}

func (uc *UseCase) notify(ctx context.Context, b *domain.Booking, s *domain.Schedule) {
	err := uc.notifyClient.Send(ctx, &notifyservice.Notification{
		UserID:     b.UserID,
		Event:      notifyservice.EventBookingConfirmed,
		ScheduleID: s.ID,
		ClassName:  s.ClassName,
		StartTime:  s.StartTime.Format(time.RFC3339),
	})
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to send notification for user=%d: %v", b.UserID, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !domain.ValidRole(req.Actor.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Actor.Role)
	}

	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	return nil
}

package join_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
)

// UseCase use case вступления в лист ожидания
// Новая запись встает в хвост: position = max(позиций занятия) + 1
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	waitlistRepo WaitlistRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		waitlistRepo: waitlistRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case вступления в лист ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("JoinWaitlist: user=%d, schedule=%d", req.Actor.UserID, req.ScheduleID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("JoinWaitlist: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		entry *domain.WaitingListEntry
		sched *domain.Schedule
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строку занятия
		s, err := uc.scheduleRepo.GetByID(txCtx, req.ScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				return ErrScheduleNotFound
			}
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		sched = s

		if !s.IsActive() {
			return ErrScheduleNotActive
		}
		if s.HasStarted(now) {
			return ErrPastSchedule
		}

		// 2. Лист ожидания только для заполненных занятий
		if !s.IsFull() {
			return ErrClassNotFull
		}

		// 3. Подтвержденное бронирование исключает очередь
		existing, err := uc.bookingRepo.GetByUserAndSchedule(txCtx, req.Actor.UserID, s.ID)
		if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return fmt.Errorf("%w: failed to get existing booking: %v", ErrInternal, err)
		}
		if existing != nil && existing.IsConfirmed() {
			return ErrDuplicateBooking
		}

		// 4. Повторное вступление не создает вторую запись
		waiting, err := uc.waitlistRepo.GetByUserAndSchedule(txCtx, req.Actor.UserID, s.ID)
		if err != nil && !errors.Is(err, waitlistRepo.ErrEntryNotFound) {
			return fmt.Errorf("%w: failed to get existing waitlist entry: %v", ErrInternal, err)
		}
		if waiting != nil {
			return fmt.Errorf("%w: %w", ErrAlreadyWaiting, &domain.AlreadyWaitingError{Position: waiting.Position})
		}

		// 5. Встаем в хвост очереди
		created, err := uc.waitlistRepo.Create(txCtx, req.Actor.UserID, s.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to create waitlist entry: %v", ErrInternal, err)
		}
		entry = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("JoinWaitlist: user=%d queued at position %d for schedule=%d",
		entry.UserID, entry.Position, entry.ScheduleID)

	return &Response{
		EntryID:    entry.ID,
		UserID:     entry.UserID,
		ScheduleID: entry.ScheduleID,
		Position:   entry.Position,
		CreatedAt:  entry.CreatedAt,
		ClassName:  sched.ClassName,
		StartTime:  sched.StartTime,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	return nil
}

package confirm_waitlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
	"github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
)

// UseCase use case подтверждения места из листа ожидания
// Истечение окна подтверждения обрабатывается лениво, в момент попытки:
// просроченная запись удаляется (это изменение фиксируется), а операция
// завершается ошибкой ErrNotificationExpired
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	waitlistRepo WaitlistRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		waitlistRepo: waitlistRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подтверждения места
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ConfirmWaitlist: entry=%d by user=%d", req.EntryID, req.Actor.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmWaitlist: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		result  *domain.Booking
		sched   *domain.Schedule
		expired bool
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись с блокировкой
		e, err := uc.waitlistRepo.GetByID(txCtx, req.EntryID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: failed to get entry: %v", ErrInternal, err)
		}

		// 2. Подтвердить место может только владелец записи
		if e.UserID != req.Actor.UserID {
			return ErrAccessDenied
		}

		// 3. Блокируем строку занятия
		s, err := uc.scheduleRepo.GetByID(txCtx, e.ScheduleID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		sched = s

		// 4. Место должно быть предложено
		if !e.IsNotified() {
			return ErrNotNotified
		}

		// 5. Ленивое истечение: просроченную запись удаляем и уплотняем
		// позиции. Возврат nil фиксирует удаление; ошибку отдаем после
		// коммита, чтобы откат ее не отменил
		if e.IsExpired(now) {
			if err := uc.removeEntry(txCtx, e); err != nil {
				return err
			}
			expired = true
			return nil
		}

		if s.HasStarted(now) {
			return ErrPastSchedule
		}
		if !s.IsActive() {
			return ErrScheduleNotActive
		}

		// 6. Детектор конфликтов: за время ожидания пользователь мог
		// записаться на пересекающееся занятие
		conflicts, err := uc.bookingRepo.FindConflicting(txCtx, e.UserID, s.StartTime, s.EndTime, s.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to find conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			return fmt.Errorf("%w: %w", ErrBookingConflict, &domain.ConflictError{Conflict: *conflicts[0]})
		}

		// 7. Защитная перепроверка вместимости: уведомление не резервирует
		// место, к моменту подтверждения его могли занять напрямую
		if err := uc.scheduleRepo.ReserveSlot(txCtx, s.ID); err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleFull) {
				return ErrScheduleFull
			}
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 8. Создаем подтвержденное бронирование (или реактивируем
		// отмененную строку этой пары user/schedule)
		b, err := uc.createOrReactivate(txCtx, e, now)
		if err != nil {
			return err
		}
		result = b

		// 9. Удаляем запись и уплотняем позиции за ней
		return uc.removeEntry(txCtx, e)
	})

	if err != nil {
		return nil, err
	}

	if expired {
		uc.logger.Warn("ConfirmWaitlist: entry id=%d expired, removed from waitlist", req.EntryID)
		return nil, ErrNotificationExpired
	}

	uc.logger.Info("ConfirmWaitlist: booking id=%d confirmed for user=%d (schedule=%d)",
		result.ID, result.UserID, result.ScheduleID)

	uc.notify(ctx, result, sched)

	return &Response{
		BookingID:  result.ID,
		UserID:     result.UserID,
		ScheduleID: result.ScheduleID,
		Status:     string(result.Status),
		BookedAt:   result.BookedAt,
		ClassName:  sched.ClassName,
		StartTime:  sched.StartTime,
		EndTime:    sched.EndTime,
		Room:       sched.Room,
	}, nil
}

// createOrReactivate создает подтвержденное бронирование либо реактивирует
// существующую отмененную строку пары (user, schedule)
func (uc *UseCase) createOrReactivate(ctx context.Context, e *domain.WaitingListEntry, now time.Time) (*domain.Booking, error) {
	existing, err := uc.bookingRepo.GetByUserAndSchedule(ctx, e.UserID, e.ScheduleID)
	if err != nil && !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, fmt.Errorf("%w: failed to get existing booking: %v", ErrInternal, err)
	}

	if existing != nil {
		if !existing.CanBeReactivated() {
			// Подтвержденная строка при записи в листе ожидания - дефект
			// данных, вступление в очередь такое состояние не допускает
			return nil, fmt.Errorf("%w: unexpected booking status %s for user=%d schedule=%d",
				ErrInternal, existing.Status, e.UserID, e.ScheduleID)
		}
		if err := uc.bookingRepo.Reactivate(ctx, existing.ID, now); err != nil {
			return nil, fmt.Errorf("%w: failed to reactivate booking: %v", ErrInternal, err)
		}
		existing.Status = domain.StatusConfirmed
		existing.BookedAt = now
		existing.CancellationReason = nil
		existing.CancelledAt = nil
		return existing, nil
	}

	created, err := uc.bookingRepo.Create(ctx, &domain.Booking{
		UserID:     e.UserID,
		ScheduleID: e.ScheduleID,
		Status:     domain.StatusConfirmed,
		BookedAt:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
	return created, nil
}

// removeEntry удаляет запись листа ожидания и сдвигает позиции за ней
func (uc *UseCase) removeEntry(ctx context.Context, e *domain.WaitingListEntry) error {
	if err := uc.waitlistRepo.Delete(ctx, e.ID); err != nil {
		return fmt.Errorf("%w: failed to delete entry: %v", ErrInternal, err)
	}
	if err := uc.waitlistRepo.ShiftPositionsAfter(ctx, e.ScheduleID, e.Position); err != nil {
		return fmt.Errorf("%w: failed to shift positions: %v", ErrInternal, err)
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
		uc.logger.Warn("ConfirmWaitlist: failed to send notification for user=%d: %v", b.UserID, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.EntryID <= 0 {
		return fmt.Errorf("%w: entryID must be positive", ErrInvalidInput)
	}

	return nil
}

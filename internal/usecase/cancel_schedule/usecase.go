package cancel_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	"github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
	"github.com/m04kA/FitnessClassService/pkg/ptr"
)

// UseCase use case каскадной отмены занятия
// Отмена занятия, массовая отмена его подтвержденных бронирований
// и очистка листа ожидания выполняются одной транзакцией: промежуточное
// состояние (бронирования отменены, занятие нет) снаружи не наблюдаемо.
// Продвижение из очереди не запускается - записываться больше некуда
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

// Execute выполняет use case каскадной отмены занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelSchedule: schedule=%d by user=%d (role=%s)",
		req.ScheduleID, req.Actor.UserID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelSchedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		sched         *domain.Schedule
		affected      int64
		removed       int64
		affectedUsers []int64
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

		if s.Status == domain.ScheduleCancelled {
			return ErrAlreadyCancelled
		}

		// 2. Права: администратор или тренер, ведущий это занятие
		if !req.Actor.IsAdmin() && !(req.Actor.IsTrainer() && s.OwnedBy(req.Actor.UserID)) {
			return ErrAccessDenied
		}

		// 3. Собираем адресатов уведомлений до изменения данных
		confirmed := domain.StatusConfirmed
		bookings, err := uc.bookingRepo.GetByScheduleID(txCtx, s.ID, &confirmed)
		if err != nil {
			return fmt.Errorf("%w: failed to list confirmed bookings: %v", ErrInternal, err)
		}
		entries, err := uc.waitlistRepo.ListBySchedule(txCtx, s.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to list waitlist entries: %v", ErrInternal, err)
		}
		for _, b := range bookings {
			affectedUsers = append(affectedUsers, b.UserID)
		}
		for _, e := range entries {
			affectedUsers = append(affectedUsers, e.UserID)
		}

		// 4. Каскад: занятие, бронирования, лист ожидания - одним юнитом
		if err := uc.scheduleRepo.CancelWithReset(txCtx, s.ID); err != nil {
			return fmt.Errorf("%w: failed to cancel schedule: %v", ErrInternal, err)
		}

		affected, err = uc.bookingRepo.CancelAllForSchedule(txCtx, s.ID, domain.ScheduleCancelledReason, now)
		if err != nil {
			return fmt.Errorf("%w: failed to cancel bookings: %v", ErrInternal, err)
		}

		removed, err = uc.waitlistRepo.DeleteBySchedule(txCtx, s.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to clear waitlist: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelSchedule: schedule id=%d cancelled, bookings=%d, waitlist=%d",
		sched.ID, affected, removed)

	uc.notify(ctx, req, sched, affectedUsers)

	return &Response{
		ScheduleID:             sched.ID,
		Status:                 string(domain.ScheduleCancelled),
		AffectedBookings:       affected,
		RemovedWaitlistEntries: removed,
	}, nil
}

func (uc *UseCase) notify(ctx context.Context, req *Request, s *domain.Schedule, userIDs []int64) {
	reason := req.Reason
	if reason == nil {
		reason = ptr.Ptr(domain.ScheduleCancelledReason)
	}

	for _, userID := range userIDs {
		err := uc.notifyClient.Send(ctx, &notifyservice.Notification{
			UserID:     userID,
			Event:      notifyservice.EventScheduleCancelled,
			ScheduleID: s.ID,
			ClassName:  s.ClassName,
			StartTime:  s.StartTime.Format(time.RFC3339),
			Reason:     reason,
		})
		if err != nil {
			uc.logger.Warn("CancelSchedule: failed to notify user=%d: %v", userID, err)
		}
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ScheduleID <= 0 {
		return fmt.Errorf("%w: scheduleID must be positive", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	return nil
}

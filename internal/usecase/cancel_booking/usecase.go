package cancel_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
	"github.com/m04kA/FitnessClassService/internal/integrations/notifyservice"
	"github.com/m04kA/FitnessClassService/pkg/ptr"
)

// UseCase use case отмены бронирования
// Отмена освобождает место и в той же транзакции запускает продвижение
// из листа ожидания: уведомляется ровно один участник - голова очереди
type UseCase struct {
	scheduleRepo ScheduleRepository
	bookingRepo  BookingRepository
	waitlistRepo WaitlistRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	windows      Windows
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	bookingRepo BookingRepository,
	waitlistRepo WaitlistRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	windows Windows,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		bookingRepo:  bookingRepo,
		waitlistRepo: waitlistRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		windows:      windows,
		logger:       logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking=%d by user=%d (role=%s)",
		req.BookingID, req.Actor.UserID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		booking  *domain.Booking
		sched    *domain.Schedule
		promoted *domain.WaitingListEntry
	)

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}
		booking = b

		// 2. Права: владелец бронирования или администратор
		if b.UserID != req.Actor.UserID && !req.Actor.IsAdmin() {
			return ErrAccessDenied
		}

		// 3. Отменить можно только подтвержденное бронирование
		if !b.CanBeCancelled() {
			return ErrNotConfirmed
		}

		// 4. Блокируем строку занятия - дальше вся вместимость и лист
		// ожидания меняются под этим замком
		s, err := uc.scheduleRepo.GetByID(txCtx, b.ScheduleID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		sched = s

		if s.HasStarted(now) {
			return ErrPastSchedule
		}

		// 5. Окно отмены для неадминистраторов
		// Граница исключающая: ровно за deadline отмена еще проходит
		if !req.Actor.IsAdmin() && s.StartTime.Sub(now) < uc.windows.CancellationDeadline {
			return ErrTooLateToCancel
		}

		// 6. Отменяем бронирование и освобождаем место
		reason := ""
		if req.Reason != nil {
			reason = *req.Reason
		}
		if err := uc.bookingRepo.Cancel(txCtx, b.ID, reason, now); err != nil {
			return fmt.Errorf("%w: failed to cancel booking: %v", ErrInternal, err)
		}

		if err := uc.scheduleRepo.ReleaseSlot(txCtx, s.ID); err != nil {
			// Сюда входит и underflow счетчика - фатальное нарушение
			// инварианта, транзакция откатывается целиком
			return fmt.Errorf("%w: failed to release slot: %v", ErrInternal, err)
		}

		// 7. Продвижение из листа ожидания: уведомляем голову очереди,
		// не удаляя запись и не меняя позиции
		head, err := uc.waitlistRepo.GetHead(txCtx, s.ID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return nil // лист ожидания пуст
			}
			return fmt.Errorf("%w: failed to get waitlist head: %v", ErrInternal, err)
		}

		expiresAt := now.Add(uc.windows.ConfirmationWindow)
		if err := uc.waitlistRepo.MarkNotified(txCtx, head.ID, now, expiresAt); err != nil {
			return fmt.Errorf("%w: failed to mark waitlist entry notified: %v", ErrInternal, err)
		}

		head.Notified = true
		head.NotifiedAt = &now
		head.ExpiresAt = &expiresAt
		promoted = head
		return nil
	})

	if err != nil {
		return nil, err
	}

	isLate := sched.StartTime.Sub(now) < uc.windows.LateThreshold

	uc.logger.Info("CancelBooking: booking id=%d cancelled (late=%t, promoted_user=%v)",
		booking.ID, isLate, promotedUserID(promoted))

	uc.notify(ctx, req, booking, sched, promoted)

	resp := &Response{
		BookingID:          booking.ID,
		Status:             string(domain.StatusCancelled),
		CancelledAt:        now,
		IsLateCancellation: isLate,
	}
	if promoted != nil {
		resp.PromotedUserID = ptr.Ptr(promoted.UserID)
	}
	return resp, nil
}

func (uc *UseCase) notify(ctx context.Context, req *Request, b *domain.Booking, s *domain.Schedule, promoted *domain.WaitingListEntry) {
	err := uc.notifyClient.Send(ctx, &notifyservice.Notification{
		UserID:     b.UserID,
		Event:      notifyservice.EventBookingCancelled,
		ScheduleID: s.ID,
		ClassName:  s.ClassName,
		StartTime:  s.StartTime.Format(time.RFC3339),
		Reason:     req.Reason,
	})
	if err != nil {
		uc.logger.Warn("CancelBooking: failed to notify user=%d: %v", b.UserID, err)
	}

	if promoted == nil {
		return
	}

	err = uc.notifyClient.Send(ctx, &notifyservice.Notification{
		UserID:     promoted.UserID,
		Event:      notifyservice.EventWaitlistPromoted,
		ScheduleID: s.ID,
		ClassName:  s.ClassName,
		StartTime:  s.StartTime.Format(time.RFC3339),
		ExpiresAt:  ptr.Ptr(promoted.ExpiresAt.Format(time.RFC3339)),
	})
	if err != nil {
		uc.logger.Warn("CancelBooking: failed to notify promoted user=%d: %v", promoted.UserID, err)
	}
}

func promotedUserID(e *domain.WaitingListEntry) interface{} {
	if e == nil {
		return nil
	}
	return e.UserID
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	return nil
}

package mark_attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
)

// UseCase use case отметки посещаемости занятия
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case отметки посещаемости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("MarkAttendance: booking=%d attended=%t by user=%d (role=%s)",
		req.BookingID, req.Attended, req.Actor.UserID, req.Actor.Role)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("MarkAttendance: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var finalStatus domain.BookingStatus

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование с блокировкой
		b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		if b.IsCancelled() {
			return ErrInvalidState
		}

		s, err := uc.scheduleRepo.GetByID(txCtx, b.ScheduleID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}

		// 2. Права: администратор или тренер, ведущий это занятие
		if !req.Actor.IsAdmin() && !(req.Actor.IsTrainer() && s.OwnedBy(req.Actor.UserID)) {
			return ErrAccessDenied
		}

		// 3. Посещаемость отмечается только после начала занятия
		if !s.HasStarted(now) {
			return ErrClassNotStarted
		}

		// 4. Подтвержденное бронирование отметка переводит в completed
		// либо no_show; завершенные и неявки можно переотметить
		finalStatus = b.Status
		if b.IsConfirmed() || b.Status == domain.StatusCompleted || b.Status == domain.StatusNoShow {
			if req.Attended {
				finalStatus = domain.StatusCompleted
			} else {
				finalStatus = domain.StatusNoShow
			}
		}

		if err := uc.bookingRepo.SetAttendance(txCtx, b.ID, req.Attended, finalStatus); err != nil {
			return fmt.Errorf("%w: failed to set attendance: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("MarkAttendance: booking id=%d marked attended=%t, status=%s",
		req.BookingID, req.Attended, finalStatus)

	return &Response{
		BookingID: req.BookingID,
		Status:    string(finalStatus),
		Attended:  req.Attended,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	return nil
}

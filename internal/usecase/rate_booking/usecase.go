package rate_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	trainerRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/trainer"
)

// UseCase use case оценки посещенного занятия
// Оценка бронирования и пересчет средневзвешенного рейтинга тренера
// выполняются одной транзакцией
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	trainerRepo  TrainerRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	trainerRepo TrainerRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		trainerRepo:  trainerRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case оценки занятия
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RateBooking: booking=%d rating=%d by user=%d", req.BookingID, req.Rating, req.Actor.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var (
		trainerRating float64
		finalStatus   domain.BookingStatus
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

		// 2. Оценить занятие может только владелец бронирования
		if b.UserID != req.Actor.UserID {
			return ErrAccessDenied
		}

		if b.IsCancelled() {
			return ErrInvalidState
		}
		if b.IsRated() {
			return ErrAlreadyRated
		}

		// 3. Оценивать можно только начавшееся занятие
		s, err := uc.scheduleRepo.GetByID(txCtx, b.ScheduleID)
		if err != nil {
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		if !s.HasStarted(now) {
			return ErrClassNotStarted
		}

		// 4. Подтвержденное бронирование оценка переводит в completed
		finalStatus = b.Status
		if b.IsConfirmed() {
			finalStatus = domain.StatusCompleted
		}

		if err := uc.bookingRepo.SetRating(txCtx, b.ID, req.Rating, req.Feedback, finalStatus); err != nil {
			return fmt.Errorf("%w: failed to set rating: %v", ErrInternal, err)
		}

		// 5. Пересчитываем агрегат рейтинга тренера под блокировкой строки
		t, err := uc.trainerRepo.GetByUserID(txCtx, s.TrainerID)
		if err != nil {
			if errors.Is(err, trainerRepo.ErrTrainerNotFound) {
				// Профиль тренера могли не завести, оценка бронирования
				// при этом остается
				uc.logger.Warn("RateBooking: trainer profile not found for user=%d", s.TrainerID)
				return nil
			}
			return fmt.Errorf("%w: failed to get trainer: %v", ErrInternal, err)
		}

		trainerRating = t.ApplyRating(req.Rating)
		if err := uc.trainerRepo.UpdateRating(txCtx, t.UserID, trainerRating, t.RatingCount+1); err != nil {
			return fmt.Errorf("%w: failed to update trainer rating: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RateBooking: booking id=%d rated %d, trainer rating=%.2f",
		req.BookingID, req.Rating, trainerRating)

	return &Response{
		BookingID:     req.BookingID,
		Status:        string(finalStatus),
		Rating:        req.Rating,
		Feedback:      req.Feedback,
		TrainerRating: trainerRating,
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

	if !domain.ValidRating(req.Rating) {
		return fmt.Errorf("%w: rating must be between %d and %d",
			ErrInvalidInput, domain.MinRating, domain.MaxRating)
	}

	if req.Feedback != nil && len(*req.Feedback) > domain.MaxFeedbackLength {
		return fmt.Errorf("%w: feedback is too long", ErrInvalidInput)
	}

	return nil
}

package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitnessClassService/internal/domain"
	bookingRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	"github.com/m04kA/FitnessClassService/internal/service/bookings/models"
)

// Service сервис для чтения бронирований
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь видит только своё бронирование; тренер - бронирования
// своих занятий; администратор - любые
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkBookingAccess(ctx, booking, actor); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу. Доступна владельцу и администратору
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != req.Actor.UserID && !req.Actor.IsAdmin() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d",
			req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	domainStatus, err := toOptionalStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetScheduleBookings получает бронирования занятия
// Доступна администратору и тренеру, ведущему это занятие
func (s *Service) GetScheduleBookings(ctx context.Context, req *models.GetScheduleBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetScheduleBookings: fetching bookings for schedule=%d, user=%d",
		req.ScheduleID, req.Actor.UserID)

	sched, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetScheduleBookings: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetScheduleBookings: repository error for schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: GetScheduleBookings - repository error: %v", ErrInternal, err)
	}

	if !req.Actor.IsAdmin() && !(req.Actor.IsTrainer() && sched.OwnedBy(req.Actor.UserID)) {
		s.logger.Warn("GetScheduleBookings: access denied for user=%d to schedule id=%d",
			req.Actor.UserID, req.ScheduleID)
		return nil, ErrAccessDenied
	}

	domainStatus, err := toOptionalStatus(req.Status)
	if err != nil {
		s.logger.Warn("GetScheduleBookings: invalid status=%s for schedule=%d", *req.Status, req.ScheduleID)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByScheduleID(ctx, req.ScheduleID, domainStatus)
	if err != nil {
		s.logger.Error("GetScheduleBookings: repository error for schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: GetScheduleBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetScheduleBookings: fetched %d bookings for schedule=%d", len(bookings), req.ScheduleID)
	return models.FromDomainBookingList(bookings), nil
}

// checkBookingAccess проверяет доступ пользователя к бронированию
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, actor domain.Actor) error {
	if booking.UserID == actor.UserID || actor.IsAdmin() {
		return nil
	}

	if actor.IsTrainer() {
		sched, err := s.scheduleRepo.GetByID(ctx, booking.ScheduleID)
		if err != nil {
			s.logger.Error("checkBookingAccess: failed to get schedule id=%d: %v", booking.ScheduleID, err)
			return fmt.Errorf("%w: checkBookingAccess - failed to get schedule: %v", ErrInternal, err)
		}
		if sched.OwnedBy(actor.UserID) {
			return nil
		}
	}

	return ErrAccessDenied
}

// toOptionalStatus конвертирует опциональный статус из строки
func toOptionalStatus(status *string) (*domain.BookingStatus, error) {
	if status == nil {
		return nil, nil
	}
	s, err := models.ToDomainBookingStatus(*status)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package waitlist

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/schedule"
	"github.com/m04kA/FitnessClassService/internal/service/waitlist/models"
)

// Service сервис для чтения листов ожидания
type Service struct {
	waitlistRepo WaitlistRepository
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса листов ожидания
func NewService(
	waitlistRepo WaitlistRepository,
	scheduleRepo ScheduleRepository,
	logger Logger,
) *Service {
	return &Service{
		waitlistRepo: waitlistRepo,
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetScheduleWaitlist получает лист ожидания занятия в порядке позиций
// Доступен администратору и тренеру, ведущему это занятие
func (s *Service) GetScheduleWaitlist(ctx context.Context, req *models.GetScheduleWaitlistRequest) (*models.EntryListResponse, error) {
	s.logger.Info("GetScheduleWaitlist: fetching waitlist for schedule=%d, user=%d",
		req.ScheduleID, req.Actor.UserID)

	sched, err := s.scheduleRepo.GetByID(ctx, req.ScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetScheduleWaitlist: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetScheduleWaitlist: repository error for schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: GetScheduleWaitlist - repository error: %v", ErrInternal, err)
	}

	if !req.Actor.IsAdmin() && !(req.Actor.IsTrainer() && sched.OwnedBy(req.Actor.UserID)) {
		s.logger.Warn("GetScheduleWaitlist: access denied for user=%d to schedule id=%d",
			req.Actor.UserID, req.ScheduleID)
		return nil, ErrAccessDenied
	}

	entries, err := s.waitlistRepo.ListBySchedule(ctx, req.ScheduleID)
	if err != nil {
		s.logger.Error("GetScheduleWaitlist: repository error for schedule id=%d: %v", req.ScheduleID, err)
		return nil, fmt.Errorf("%w: GetScheduleWaitlist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetScheduleWaitlist: fetched %d entries for schedule=%d", len(entries), req.ScheduleID)
	return models.FromDomainEntryList(entries), nil
}

// GetUserWaitlist получает записи пользователя во всех листах ожидания
// Доступна владельцу и администратору
func (s *Service) GetUserWaitlist(ctx context.Context, req *models.GetUserWaitlistRequest) (*models.EntryListResponse, error) {
	s.logger.Info("GetUserWaitlist: fetching waitlist entries for user=%d", req.UserID)

	if req.UserID != req.Actor.UserID && !req.Actor.IsAdmin() {
		s.logger.Warn("GetUserWaitlist: access denied for user=%d to entries of user=%d",
			req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	entries, err := s.waitlistRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		s.logger.Error("GetUserWaitlist: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserWaitlist - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserWaitlist: fetched %d entries for user=%d", len(entries), req.UserID)
	return models.FromDomainEntryList(entries), nil
}

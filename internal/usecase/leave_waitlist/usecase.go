package leave_waitlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/FitnessClassService/internal/domain"
	waitlistRepo "github.com/m04kA/FitnessClassService/internal/infra/storage/waitlist"
)

// UseCase use case выхода из листа ожидания
// Удаление записи сдвигает вниз позиции всех стоявших за ней:
// последовательность остается плотной 1..N с сохранением порядка
type UseCase struct {
	scheduleRepo ScheduleRepository
	waitlistRepo WaitlistRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	waitlistRepo WaitlistRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		waitlistRepo: waitlistRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case выхода из листа ожидания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("LeaveWaitlist: entry=%d by user=%d", req.EntryID, req.Actor.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("LeaveWaitlist: validation failed: %v", err)
		return nil, err
	}

	var entry *domain.WaitingListEntry

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Получаем запись с блокировкой
		e, err := uc.waitlistRepo.GetByID(txCtx, req.EntryID)
		if err != nil {
			if errors.Is(err, waitlistRepo.ErrEntryNotFound) {
				return ErrEntryNotFound
			}
			return fmt.Errorf("%w: failed to get entry: %v", ErrInternal, err)
		}
		entry = e

		// 2. Права: владелец записи или администратор
		if e.UserID != req.Actor.UserID && !req.Actor.IsAdmin() {
			return ErrAccessDenied
		}

		// 3. Блокируем строку занятия - перенумерация выполняется
		// под замком занятия и снаружи не наблюдаема частично
		if _, err := uc.scheduleRepo.GetByID(txCtx, e.ScheduleID); err != nil {
			return fmt.Errorf("%w: failed to lock schedule: %v", ErrInternal, err)
		}

		// 4. Удаляем запись и уплотняем позиции
		if err := uc.waitlistRepo.Delete(txCtx, e.ID); err != nil {
			return fmt.Errorf("%w: failed to delete entry: %v", ErrInternal, err)
		}

		if err := uc.waitlistRepo.ShiftPositionsAfter(txCtx, e.ScheduleID, e.Position); err != nil {
			return fmt.Errorf("%w: failed to shift positions: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("LeaveWaitlist: entry id=%d removed (schedule=%d, position=%d)",
		entry.ID, entry.ScheduleID, entry.Position)

	return &Response{
		EntryID:    entry.ID,
		ScheduleID: entry.ScheduleID,
		Position:   entry.Position,
	}, nil
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

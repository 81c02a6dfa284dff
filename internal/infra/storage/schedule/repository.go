package schedule

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/FitnessClassService/internal/domain"
	"github.com/m04kA/FitnessClassService/pkg/dbmetrics"
	"github.com/m04kA/FitnessClassService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с занятиями (расписанием)
// Счетчик current_bookings принадлежит строке занятия и меняется
// только через ReserveSlot/ReleaseSlot внутри транзакции
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория занятий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var scheduleColumns = []string{
	"s.id",
	"s.class_id",
	"s.trainer_id",
	"s.start_time",
	"s.end_time",
	"s.room",
	"s.status",
	"s.current_bookings",
	"c.capacity",
	"c.name",
	"s.created_at",
	"s.updated_at",
}

// GetByID получает занятие по ID вместе с вместимостью и названием класса
// Внутри транзакции блокирует строку занятия (FOR UPDATE OF s) -
// это и есть замок уровня занятия, сериализующий все операции
// над его вместимостью и листом ожидания
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("schedules s").
		Join("classes c ON c.id = s.class_id").
		Where(squirrel.Eq{"s.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF s")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.ClassID,
		&s.TrainerID,
		&s.StartTime,
		&s.EndTime,
		&s.Room,
		&s.Status,
		&s.CurrentBookings,
		&s.Capacity,
		&s.ClassName,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// ReserveSlot атомарно занимает одно место на занятии
// Проверка вместимости и инкремент выполняются одним условным UPDATE:
// если мест нет (или занятие не активно), запрос не изменит ни одной
// строки и вернется ErrScheduleFull
func (r *Repository) ReserveSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		UPDATE schedules
		SET current_bookings = current_bookings + 1,
		    updated_at = NOW()
		WHERE id = $1
		  AND status = 'active'
		  AND current_bookings < (SELECT capacity FROM classes WHERE classes.id = schedules.class_id)`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReserveSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleFull
	}

	return nil
}

// ReleaseSlot атомарно освобождает одно место на занятии
// Вызывается ровно один раз на каждое снятое подтвержденное бронирование.
// Если счетчик уже равен нулю - это нарушение инварианта, возвращается
// ErrCounterUnderflow и транзакция должна быть прервана
func (r *Repository) ReleaseSlot(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		UPDATE schedules
		SET current_bookings = current_bookings - 1,
		    updated_at = NOW()
		WHERE id = $1
		  AND current_bookings > 0`

	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: schedule id=%d", ErrCounterUnderflow, id)
	}

	return nil
}

// CancelWithReset переводит занятие в статус cancelled и обнуляет счетчик мест
// Используется каскадной отменой занятия вместе с массовой отменой бронирований
func (r *Repository) CancelWithReset(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedules").
		Set("status", domain.ScheduleCancelled).
		Set("current_bookings", 0).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: CancelWithReset - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: CancelWithReset - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: CancelWithReset - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

package waitlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/FitnessClassService/internal/domain"
	"github.com/m04kA/FitnessClassService/pkg/dbmetrics"
	"github.com/m04kA/FitnessClassService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с листом ожидания
// Все изменяющие операции вызываются внутри транзакции
// с заблокированной строкой занятия, поэтому позиционная
// арифметика здесь не конкурирует сама с собой
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория листа ожидания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var entryColumns = []string{
	"id",
	"user_id",
	"schedule_id",
	"position",
	"notified",
	"notified_at",
	"expires_at",
	"created_at",
}

// Create добавляет запись в хвост листа ожидания занятия
// position = max(существующих позиций) + 1, либо 1 для пустого листа
func (r *Repository) Create(ctx context.Context, userID, scheduleID int64) (*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		INSERT INTO waiting_list (user_id, schedule_id, position)
		VALUES ($1, $2, (SELECT COALESCE(MAX(position), 0) + 1 FROM waiting_list WHERE schedule_id = $2))
		RETURNING id, position, created_at`

	entry := &domain.WaitingListEntry{
		UserID:     userID,
		ScheduleID: scheduleID,
	}

	var createdAt sql.NullTime
	err := executor.QueryRowContext(ctx, query, userID, scheduleID).Scan(
		&entry.ID,
		&entry.Position,
		&createdAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// GetByID получает запись листа ожидания по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("waiting_list").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEntry(executor.QueryRowContext(ctx, query, args...))
}

// GetByUserAndSchedule получает запись пользователя в листе ожидания занятия
func (r *Repository) GetByUserAndSchedule(ctx context.Context, userID, scheduleID int64) (*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waiting_list").
		Where(squirrel.Eq{"user_id": userID, "schedule_id": scheduleID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndSchedule - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEntry(executor.QueryRowContext(ctx, query, args...))
}

// GetHead получает первую в очереди запись (с минимальной позицией)
// Позиции уникальны в рамках занятия, поэтому ничьих не бывает
func (r *Repository) GetHead(ctx context.Context, scheduleID int64) (*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(entryColumns...).
		From("waiting_list").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("position ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetHead - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanEntry(executor.QueryRowContext(ctx, query, args...))
}

// ListBySchedule получает все записи листа ожидания занятия по порядку позиций
func (r *Repository) ListBySchedule(ctx context.Context, scheduleID int64) ([]*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waiting_list").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListBySchedule - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBySchedule - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// ListByUser получает все записи пользователя во всех листах ожидания
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.WaitingListEntry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("waiting_list").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// MarkNotified помечает запись уведомленной и выставляет окно подтверждения
// Запись не удаляется и позиции не меняются: удаление происходит только
// при подтверждении или истечении окна
func (r *Repository) MarkNotified(ctx context.Context, id int64, notifiedAt, expiresAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("waiting_list").
		Set("notified", true).
		Set("notified_at", notifiedAt).
		Set("expires_at", expiresAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Delete удаляет запись листа ожидания
// Вызывающая сторона обязана затем сдвинуть позиции через ShiftPositionsAfter,
// чтобы последовательность осталась плотной
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waiting_list").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// ShiftPositionsAfter сдвигает на единицу вниз позиции всех записей занятия,
// стоявших за удаленной записью. Одним UPDATE, под замком занятия -
// частично перенумерованное состояние снаружи не наблюдаемо
func (r *Repository) ShiftPositionsAfter(ctx context.Context, scheduleID int64, position int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query := `
		UPDATE waiting_list
		SET position = position - 1
		WHERE schedule_id = $1
		  AND position > $2`

	if _, err := executor.ExecContext(ctx, query, scheduleID, position); err != nil {
		return fmt.Errorf("%w: ShiftPositionsAfter - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteBySchedule удаляет все записи листа ожидания занятия
// Используется каскадной отменой; возвращает число удаленных записей
func (r *Repository) DeleteBySchedule(ctx context.Context, scheduleID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("waiting_list").
		Where(squirrel.Eq{"schedule_id": scheduleID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySchedule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySchedule - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteBySchedule - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// scanEntry сканирует одну запись листа ожидания
func (r *Repository) scanEntry(row *sql.Row) (*domain.WaitingListEntry, error) {
	var e domain.WaitingListEntry
	var createdAt sql.NullTime

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.ScheduleID,
		&e.Position,
		&e.Notified,
		&e.NotifiedAt,
		&e.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanEntry - scan entry: %v", ErrScanRow, err)
	}

	e.CreatedAt = createdAt.Time

	return &e, nil
}

// scanEntries сканирует результаты запроса в слайс записей
func (r *Repository) scanEntries(rows *sql.Rows) ([]*domain.WaitingListEntry, error) {
	entries := make([]*domain.WaitingListEntry, 0)

	for rows.Next() {
		var e domain.WaitingListEntry
		var createdAt sql.NullTime

		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.ScheduleID,
			&e.Position,
			&e.Notified,
			&e.NotifiedAt,
			&e.ExpiresAt,
			&createdAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanEntries - scan row: %v", ErrScanRow, err)
		}

		e.CreatedAt = createdAt.Time

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanEntries - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

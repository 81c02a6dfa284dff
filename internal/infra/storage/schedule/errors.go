package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда занятие не найдено
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrScheduleFull возвращается, когда на занятии не осталось мест
	// (условный UPDATE резервирования не изменил ни одной строки)
	ErrScheduleFull = errors.New("schedule.repository: schedule is full")

	// ErrCounterUnderflow возвращается при попытке освободить место,
	// когда счетчик уже равен нулю. Это фатальное нарушение инварианта
	// (ошибка программирования, не пользовательская ошибка) - транзакция
	// должна быть прервана
	ErrCounterUnderflow = errors.New("schedule.repository: current_bookings underflow")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)

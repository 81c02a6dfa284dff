package mark_attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	markAttendance "github.com/m04kA/FitnessClassService/internal/usecase/mark_attendance"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgMissingAttended    = "не указано поле attended"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "отметить посещаемость может только тренер занятия или администратор"
	msgClassNotStarted    = "занятие еще не началось"
	msgInvalidState       = "отмененное бронирование нельзя отметить"
)

type Handler struct {
	useCase MarkAttendanceUseCase
	logger  Logger
}

func NewHandler(useCase MarkAttendanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/attendance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req MarkAttendanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.Attended == nil {
		h.logger.Warn("PATCH /bookings/{id}/attendance - Missing attended field: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgMissingAttended)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, markAttendance.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, markAttendance.ErrAccessDenied):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Access denied: user_id=%d, booking_id=%d",
				actor.UserID, bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, markAttendance.ErrClassNotStarted):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Class not started: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgClassNotStarted)

		case errors.Is(err, markAttendance.ErrInvalidState):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, markAttendance.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{id}/attendance - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /bookings/{id}/attendance - Failed to mark: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/attendance - Attendance marked: booking_id=%d, attended=%t",
		bookingID, result.Attended)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	"github.com/m04kA/FitnessClassService/internal/domain"
	createBooking "github.com/m04kA/FitnessClassService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgScheduleNotFound   = "занятие не найдено"
	msgScheduleNotActive  = "занятие отменено или завершено"
	msgPastSchedule       = "занятие уже началось"
	msgDuplicateBooking   = "у вас уже есть бронирование на это занятие"
	msgScheduleFull       = "все места заняты, вы можете встать в лист ожидания"
	msgBookingConflict    = "у вас уже есть бронирование на пересекающееся по времени занятие"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /bookings - Schedule not found: schedule_id=%d", req.ScheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrScheduleNotActive):
			h.logger.Warn("POST /bookings - Schedule not active: schedule_id=%d", req.ScheduleID)
			handlers.RespondConflict(w, msgScheduleNotActive)

		case errors.Is(err, createBooking.ErrPastSchedule):
			h.logger.Warn("POST /bookings - Schedule already started: schedule_id=%d", req.ScheduleID)
			handlers.RespondBadRequest(w, msgPastSchedule)

		case errors.Is(err, createBooking.ErrDuplicateBooking):
			h.logger.Warn("POST /bookings - Duplicate booking: user_id=%d, schedule_id=%d",
				actor.UserID, req.ScheduleID)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, createBooking.ErrScheduleFull):
			h.logger.Warn("POST /bookings - Schedule full: user_id=%d, schedule_id=%d",
				actor.UserID, req.ScheduleID)
			handlers.RespondConflict(w, msgScheduleFull)

		case errors.Is(err, createBooking.ErrBookingConflict):
			h.logger.Warn("POST /bookings - Time conflict: user_id=%d, schedule_id=%d",
				actor.UserID, req.ScheduleID)
			var conflictErr *domain.ConflictError
			if errors.As(err, &conflictErr) {
				handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgBookingConflict, conflictErr))
			} else {
				handlers.RespondConflict(w, msgBookingConflict)
			}

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, schedule_id=%d: %v",
				actor.UserID, req.ScheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, schedule_id=%d, error=%v",
				actor.UserID, req.ScheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, user_id=%d, schedule_id=%d",
		result.ID, actor.UserID, req.ScheduleID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package cancel_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	cancelSchedule "github.com/m04kA/FitnessClassService/internal/usecase/cancel_schedule"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScheduleID  = "некорректный ID занятия"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgScheduleNotFound   = "занятие не найдено"
	msgAlreadyCancelled   = "занятие уже отменено"
	msgAccessDenied       = "отменить занятие может только его тренер или администратор"
)

type Handler struct {
	useCase CancelScheduleUseCase
	logger  Logger
}

func NewHandler(useCase CancelScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/schedules/{scheduleId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /schedules/{id}/cancel - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req CancelScheduleRequest
	if err := handlers.DecodeJSONOptional(r, &req); err != nil {
		h.logger.Warn("PATCH /schedules/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, scheduleID))
	if err != nil {
		switch {
		case errors.Is(err, cancelSchedule.ErrScheduleNotFound):
			h.logger.Warn("PATCH /schedules/{id}/cancel - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, cancelSchedule.ErrAlreadyCancelled):
			h.logger.Warn("PATCH /schedules/{id}/cancel - Already cancelled: schedule_id=%d", scheduleID)
			handlers.RespondConflict(w, msgAlreadyCancelled)

		case errors.Is(err, cancelSchedule.ErrAccessDenied):
			h.logger.Warn("PATCH /schedules/{id}/cancel - Access denied: user_id=%d, schedule_id=%d",
				actor.UserID, scheduleID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, cancelSchedule.ErrInvalidInput):
			h.logger.Warn("PATCH /schedules/{id}/cancel - Invalid input: schedule_id=%d: %v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /schedules/{id}/cancel - Failed to cancel: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /schedules/{id}/cancel - Schedule cancelled: schedule_id=%d, bookings=%d, waitlist=%d",
		scheduleID, result.AffectedBookings, result.RemovedWaitlistEntries)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

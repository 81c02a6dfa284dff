package get_schedule_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	"github.com/m04kA/FitnessClassService/internal/service/waitlist"
	"github.com/m04kA/FitnessClassService/internal/service/waitlist/models"
)

const (
	msgInvalidScheduleID = "некорректный ID занятия"
	msgUnauthorized      = "пользователь не аутентифицирован"
	msgScheduleNotFound  = "занятие не найдено"
	msgAccessDenied      = "просматривать лист ожидания может только тренер занятия или администратор"
)

type Handler struct {
	service WaitlistService
	logger  Logger
}

func NewHandler(service WaitlistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/waitlist - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.service.GetScheduleWaitlist(r.Context(), &models.GetScheduleWaitlistRequest{
		Actor:      actor,
		ScheduleID: scheduleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, waitlist.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{id}/waitlist - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, waitlist.ErrAccessDenied):
			h.logger.Warn("GET /schedules/{id}/waitlist - Access denied: user_id=%d, schedule_id=%d",
				actor.UserID, scheduleID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /schedules/{id}/waitlist - Failed to fetch: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

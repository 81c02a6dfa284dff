package get_schedule_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	"github.com/m04kA/FitnessClassService/internal/service/bookings"
	"github.com/m04kA/FitnessClassService/internal/service/bookings/models"
)

const (
	msgInvalidScheduleID = "некорректный ID занятия"
	msgInvalidStatus     = "некорректный статус бронирования"
	msgUnauthorized      = "пользователь не аутентифицирован"
	msgScheduleNotFound  = "занятие не найдено"
	msgAccessDenied      = "просматривать бронирования занятия может только его тренер или администратор"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/schedules/{scheduleId}/bookings?status=confirmed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /schedules/{id}/bookings - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	req := &models.GetScheduleBookingsRequest{
		Actor:      actor,
		ScheduleID: scheduleID,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetScheduleBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrScheduleNotFound):
			h.logger.Warn("GET /schedules/{id}/bookings - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /schedules/{id}/bookings - Access denied: user_id=%d, schedule_id=%d",
				actor.UserID, scheduleID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /schedules/{id}/bookings - Invalid status: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /schedules/{id}/bookings - Failed to fetch: schedule_id=%d, error=%v",
				scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

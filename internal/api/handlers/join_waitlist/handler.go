package join_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	"github.com/m04kA/FitnessClassService/internal/domain"
	joinWaitlist "github.com/m04kA/FitnessClassService/internal/usecase/join_waitlist"
)

const (
	msgInvalidScheduleID = "некорректный ID занятия"
	msgUnauthorized      = "пользователь не аутентифицирован"
	msgScheduleNotFound  = "занятие не найдено"
	msgScheduleNotActive = "занятие отменено или завершено"
	msgPastSchedule      = "занятие уже началось"
	msgClassNotFull      = "на занятии есть свободные места, запишитесь напрямую"
	msgDuplicateBooking  = "у вас уже есть бронирование на это занятие"
	msgAlreadyWaiting    = "вы уже в листе ожидания этого занятия"
)

type Handler struct {
	useCase JoinWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase JoinWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/schedules/{scheduleId}/waitlist
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /schedules/{id}/waitlist - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &joinWaitlist.Request{
		Actor:      actor,
		ScheduleID: scheduleID,
	})
	if err != nil {
		switch {
		case errors.Is(err, joinWaitlist.ErrScheduleNotFound):
			h.logger.Warn("POST /schedules/{id}/waitlist - Schedule not found: schedule_id=%d", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, joinWaitlist.ErrScheduleNotActive):
			h.logger.Warn("POST /schedules/{id}/waitlist - Schedule not active: schedule_id=%d", scheduleID)
			handlers.RespondConflict(w, msgScheduleNotActive)

		case errors.Is(err, joinWaitlist.ErrPastSchedule):
			h.logger.Warn("POST /schedules/{id}/waitlist - Schedule already started: schedule_id=%d", scheduleID)
			handlers.RespondBadRequest(w, msgPastSchedule)

		case errors.Is(err, joinWaitlist.ErrClassNotFull):
			h.logger.Warn("POST /schedules/{id}/waitlist - Schedule has open spots: schedule_id=%d", scheduleID)
			handlers.RespondConflict(w, msgClassNotFull)

		case errors.Is(err, joinWaitlist.ErrDuplicateBooking):
			h.logger.Warn("POST /schedules/{id}/waitlist - Duplicate booking: user_id=%d, schedule_id=%d",
				actor.UserID, scheduleID)
			handlers.RespondConflict(w, msgDuplicateBooking)

		case errors.Is(err, joinWaitlist.ErrAlreadyWaiting):
			h.logger.Warn("POST /schedules/{id}/waitlist - Already waiting: user_id=%d, schedule_id=%d",
				actor.UserID, scheduleID)
			var waitingErr *domain.AlreadyWaitingError
			if errors.As(err, &waitingErr) {
				handlers.RespondJSON(w, http.StatusConflict, AlreadyWaitingResponse{
					Error:    msgAlreadyWaiting,
					Position: waitingErr.Position,
				})
			} else {
				handlers.RespondConflict(w, msgAlreadyWaiting)
			}

		case errors.Is(err, joinWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /schedules/{id}/waitlist - Invalid input: schedule_id=%d: %v", scheduleID, err)
			handlers.RespondBadRequest(w, msgInvalidScheduleID)

		default:
			h.logger.Error("POST /schedules/{id}/waitlist - Failed to join: user_id=%d, schedule_id=%d, error=%v",
				actor.UserID, scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /schedules/{id}/waitlist - Joined waitlist: entry_id=%d, user_id=%d, position=%d",
		result.EntryID, actor.UserID, result.Position)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

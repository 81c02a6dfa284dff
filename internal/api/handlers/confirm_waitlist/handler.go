package confirm_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	"github.com/m04kA/FitnessClassService/internal/domain"
	confirmWaitlist "github.com/m04kA/FitnessClassService/internal/usecase/confirm_waitlist"
)

const (
	msgInvalidEntryID      = "некорректный ID записи листа ожидания"
	msgUnauthorized        = "пользователь не аутентифицирован"
	msgEntryNotFound       = "запись листа ожидания не найдена"
	msgAccessDenied        = "подтвердить место может только владелец записи"
	msgNotNotified         = "место еще не было предложено"
	msgNotificationExpired = "окно подтверждения истекло, запись удалена из листа ожидания"
	msgPastSchedule        = "занятие уже началось"
	msgScheduleNotActive   = "занятие отменено или завершено"
	msgScheduleFull        = "место уже занято другим участником"
	msgBookingConflict     = "у вас уже есть бронирование на пересекающееся по времени занятие"
)

type Handler struct {
	useCase ConfirmWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/waitlist/{entryId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	entryID, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /waitlist/{id}/confirm - Invalid entry id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmWaitlist.Request{
		Actor:   actor,
		EntryID: entryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, confirmWaitlist.ErrEntryNotFound):
			h.logger.Warn("POST /waitlist/{id}/confirm - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, confirmWaitlist.ErrAccessDenied):
			h.logger.Warn("POST /waitlist/{id}/confirm - Access denied: user_id=%d, entry_id=%d",
				actor.UserID, entryID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, confirmWaitlist.ErrNotNotified):
			h.logger.Warn("POST /waitlist/{id}/confirm - Not notified: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgNotNotified)

		case errors.Is(err, confirmWaitlist.ErrNotificationExpired):
			h.logger.Warn("POST /waitlist/{id}/confirm - Notification expired: entry_id=%d", entryID)
			handlers.RespondError(w, http.StatusGone, msgNotificationExpired)

		case errors.Is(err, confirmWaitlist.ErrPastSchedule):
			h.logger.Warn("POST /waitlist/{id}/confirm - Schedule already started: entry_id=%d", entryID)
			handlers.RespondBadRequest(w, msgPastSchedule)

		case errors.Is(err, confirmWaitlist.ErrScheduleNotActive):
			h.logger.Warn("POST /waitlist/{id}/confirm - Schedule not active: entry_id=%d", entryID)
			handlers.RespondConflict(w, msgScheduleNotActive)

		case errors.Is(err, confirmWaitlist.ErrScheduleFull):
			h.logger.Warn("POST /waitlist/{id}/confirm - Schedule full: user_id=%d, entry_id=%d",
				actor.UserID, entryID)
			handlers.RespondConflict(w, msgScheduleFull)

		case errors.Is(err, confirmWaitlist.ErrBookingConflict):
			h.logger.Warn("POST /waitlist/{id}/confirm - Time conflict: user_id=%d, entry_id=%d",
				actor.UserID, entryID)
			var conflictErr *domain.ConflictError
			if errors.As(err, &conflictErr) {
				handlers.RespondJSON(w, http.StatusConflict, FromConflictError(msgBookingConflict, conflictErr))
			} else {
				handlers.RespondConflict(w, msgBookingConflict)
			}

		case errors.Is(err, confirmWaitlist.ErrInvalidInput):
			h.logger.Warn("POST /waitlist/{id}/confirm - Invalid input: entry_id=%d: %v", entryID, err)
			handlers.RespondBadRequest(w, msgInvalidEntryID)

		default:
			h.logger.Error("POST /waitlist/{id}/confirm - Failed to confirm: entry_id=%d, error=%v",
				entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /waitlist/{id}/confirm - Seat confirmed: booking_id=%d, user_id=%d",
		result.BookingID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package leave_waitlist

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	leaveWaitlist "github.com/m04kA/FitnessClassService/internal/usecase/leave_waitlist"
)

const (
	msgInvalidEntryID = "некорректный ID записи листа ожидания"
	msgUnauthorized   = "пользователь не аутентифицирован"
	msgEntryNotFound  = "запись листа ожидания не найдена"
	msgAccessDenied   = "нет прав для удаления этой записи"
)

type Handler struct {
	useCase LeaveWaitlistUseCase
	logger  Logger
}

func NewHandler(useCase LeaveWaitlistUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/waitlist/{entryId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	entryID, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /waitlist/{id} - Invalid entry id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntryID)
		return
	}

	_, err = h.useCase.Execute(r.Context(), &leaveWaitlist.Request{
		Actor:   actor,
		EntryID: entryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, leaveWaitlist.ErrEntryNotFound):
			h.logger.Warn("DELETE /waitlist/{id} - Entry not found: entry_id=%d", entryID)
			handlers.RespondNotFound(w, msgEntryNotFound)

		case errors.Is(err, leaveWaitlist.ErrAccessDenied):
			h.logger.Warn("DELETE /waitlist/{id} - Access denied: user_id=%d, entry_id=%d",
				actor.UserID, entryID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, leaveWaitlist.ErrInvalidInput):
			h.logger.Warn("DELETE /waitlist/{id} - Invalid input: entry_id=%d: %v", entryID, err)
			handlers.RespondBadRequest(w, msgInvalidEntryID)

		default:
			h.logger.Error("DELETE /waitlist/{id} - Failed to leave: entry_id=%d, error=%v", entryID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /waitlist/{id} - Left waitlist: entry_id=%d, user_id=%d", entryID, actor.UserID)
	w.WriteHeader(http.StatusNoContent)
}

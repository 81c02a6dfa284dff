package rate_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/m04kA/FitnessClassService/internal/api/handlers"
	"github.com/m04kA/FitnessClassService/internal/api/middleware"
	rateBooking "github.com/m04kA/FitnessClassService/internal/usecase/rate_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRating      = "оценка должна быть от 1 до 5"
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "оценить занятие может только владелец бронирования"
	msgClassNotStarted    = "занятие еще не началось"
	msgInvalidState       = "отмененное бронирование нельзя оценить"
	msgAlreadyRated       = "оценка уже выставлена"
)

type Handler struct {
	useCase RateBookingUseCase
	logger  Logger
}

func NewHandler(useCase RateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/rating
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/rating - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req RateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/rating - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(actor, bookingID))
	if err != nil {
		switch {
		case errors.Is(err, rateBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/rating - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rateBooking.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/rating - Access denied: user_id=%d, booking_id=%d",
				actor.UserID, bookingID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, rateBooking.ErrClassNotStarted):
			h.logger.Warn("POST /bookings/{id}/rating - Class not started: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgClassNotStarted)

		case errors.Is(err, rateBooking.ErrInvalidState):
			h.logger.Warn("POST /bookings/{id}/rating - Invalid state: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidState)

		case errors.Is(err, rateBooking.ErrAlreadyRated):
			h.logger.Warn("POST /bookings/{id}/rating - Already rated: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyRated)

		case errors.Is(err, rateBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/rating - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRating)

		default:
			h.logger.Error("POST /bookings/{id}/rating - Failed to rate: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/rating - Booking rated: booking_id=%d, rating=%d",
		bookingID, req.Rating)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

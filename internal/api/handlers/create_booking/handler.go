package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/api/middleware"
	createBooking "github.com/m04kA/charter-booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidBooking     = "заявка содержит ошибки"
	msgInvalidBookingDate = "дата бронирования не может быть в прошлом"
	msgBoatNotFound       = "лодка не найдена"
	msgBoatNotBookable    = "лодка недоступна для бронирования"
	msgSlotNotFound       = "слот не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgCardDeclined       = "карта отклонена"
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
// Создаёт заявку в статусе pending_approval
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /bookings - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidBooking, handlers.ValidationMessages(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var validationErr *createBooking.ValidationError
		switch {
		case errors.As(err, &validationErr):
			h.logger.Warn("POST /bookings - Booking rejected by validation: user_id=%d, errors=%v",
				userID, validationErr.Errors)
			handlers.RespondUnprocessable(w, msgInvalidBooking, validationErr.Errors)

		case errors.Is(err, createBooking.ErrBoatNotFound):
			h.logger.Warn("POST /bookings - Boat not found: boat_id=%d", req.BoatID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		case errors.Is(err, createBooking.ErrBoatNotBookable):
			h.logger.Warn("POST /bookings - Boat not bookable: boat_id=%d", req.BoatID)
			handlers.RespondNotFound(w, msgBoatNotBookable)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: boat_id=%d, date=%s", req.BoatID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: boat_id=%d, error=%v", req.BoatID, err)
			handlers.RespondUnprocessable(w, msgSlotNotFound, []string{err.Error()})

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: boat_id=%d, error=%v", req.BoatID, err)
			handlers.RespondUnprocessable(w, msgServiceNotFound, []string{err.Error()})

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: boat_id=%d, date=%s", req.BoatID, req.Date)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrCardDeclined):
			h.logger.Warn("POST /bookings - Card declined: user_id=%d", userID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgCardDeclined)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondUnprocessable(w, msgInvalidBooking, []string{err.Error()})

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, boat_id=%d, user_id=%d",
		result.Booking.ID, result.Booking.BoatID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

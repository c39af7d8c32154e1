package check_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/service/bookings"
)

const (
	msgInvalidBoatID      = "некорректный ID лодки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректный интервал"
	msgNotFound           = "лодка не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/boats/{boatId}/availability-check
// Проверяет интервал против подтверждённых бронирований и календаря владельца
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("POST /boats/{id}/availability-check - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	var req CheckAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /boats/{id}/availability-check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /boats/{id}/availability-check - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidData, handlers.ValidationMessages(err))
		return
	}

	serviceReq, err := req.ToServiceRequest(boatID)
	if err != nil {
		h.logger.Warn("POST /boats/{id}/availability-check - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.CheckAvailability(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBoatNotFound):
			h.logger.Warn("POST /boats/{id}/availability-check - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("POST /boats/{id}/availability-check - Invalid interval: boat_id=%d, error=%v", boatID, err)
			handlers.RespondUnprocessable(w, msgInvalidData, []string{err.Error()})

		default:
			h.logger.Error("POST /boats/{id}/availability-check - Failed to check availability: boat_id=%d, error=%v",
				boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /boats/{id}/availability-check - Checked: boat_id=%d, available=%t, conflicts=%d",
		boatID, result.Available, len(result.Conflicts))
	handlers.RespondJSON(w, http.StatusOK, result)
}

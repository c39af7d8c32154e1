package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/charter-booking-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidBoatID   = "некорректный ID лодки"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgPastDate        = "дата не может быть в прошлом"
	msgBoatNotFound    = "лодка не найдена"
	msgBoatNotBookable = "лодка недоступна для бронирования"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/boats/{boatId}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("GET /boats/{id}/available-slots - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /boats/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(boatID, dateStr)
	if err != nil {
		h.logger.Warn("GET /boats/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBoatNotFound):
			h.logger.Warn("GET /boats/{id}/available-slots - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		case errors.Is(err, getAvailableSlots.ErrBoatNotBookable):
			h.logger.Warn("GET /boats/{id}/available-slots - Boat not bookable: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgBoatNotBookable)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /boats/{id}/available-slots - Date in the past: boat_id=%d, date=%s", boatID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /boats/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /boats/{id}/available-slots - Failed to get slots: boat_id=%d, error=%v", boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /boats/{id}/available-slots - Slots retrieved: boat_id=%d, date=%s, count=%d, degraded=%t",
		boatID, dateStr, len(result.Slots), result.CalendarDegraded)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

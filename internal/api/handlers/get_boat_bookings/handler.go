package get_boat_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/api/middleware"
	"github.com/m04kA/charter-booking-service/internal/service/bookings"
)

const (
	msgInvalidBoatID = "некорректный ID лодки"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры запроса"
	msgNotFound      = "лодка не найдена"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/boats/{boatId}/bookings
// Query params: date, status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("GET /boats/{id}/bookings - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /boats/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(boatID, userID, r.URL.Query().Get("date"), r.URL.Query().Get("status"))
	if err != nil {
		h.logger.Warn("GET /boats/{id}/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Сервис сам проверит, что пользователь владелец лодки
	result, err := h.service.GetBoatBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBoatNotFound):
			h.logger.Warn("GET /boats/{id}/bookings - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /boats/{id}/bookings - Access denied: boat_id=%d, user_id=%d", boatID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /boats/{id}/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /boats/{id}/bookings - Failed to get bookings: boat_id=%d, error=%v", boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /boats/{id}/bookings - Bookings retrieved successfully: boat_id=%d, count=%d",
		boatID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package set_special_pricing

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/api/middleware"
	"github.com/m04kA/charter-booking-service/internal/service/boats"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

const (
	msgInvalidBoatID      = "некорректный ID лодки"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "лодка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные спецтарифа"
)

type Handler struct {
	service BoatService
	logger  Logger
}

func NewHandler(service BoatService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/boats/{boatId}/special-pricing/{date}
// Заменяет спецтариф на дату, если он уже был
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	date, err := types.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SetSpecialPricingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidData, handlers.ValidationMessages(err))
		return
	}

	boat, err := h.service.SetSpecialPricing(r.Context(), boatID, req.ToServiceRequest(userID, date))
	if err != nil {
		switch {
		case errors.Is(err, boats.ErrBoatNotFound):
			h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, boats.ErrAccessDenied):
			h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Access denied: boat_id=%d, user_id=%d", boatID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, boats.ErrInvalidInput):
			h.logger.Warn("PUT /boats/{id}/special-pricing/{date} - Invalid entry: boat_id=%d, error=%v", boatID, err)
			handlers.RespondUnprocessable(w, msgInvalidData, []string{err.Error()})

		default:
			h.logger.Error("PUT /boats/{id}/special-pricing/{date} - Failed to set special pricing: boat_id=%d, error=%v",
				boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /boats/{id}/special-pricing/{date} - Special pricing set: boat_id=%d, date=%s", boatID, date)
	handlers.RespondJSON(w, http.StatusOK, boat)
}

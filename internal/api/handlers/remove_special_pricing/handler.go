package remove_special_pricing

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
	msgInvalidBoatID = "некорректный ID лодки"
	msgInvalidDate   = "некорректная дата, ожидается YYYY-MM-DD"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "лодка не найдена"
	msgNoPricing     = "спецтариф на эту дату не найден"
	msgForbidden     = "доступ запрещен"
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

// Handle DELETE /api/v1/boats/{boatId}/special-pricing/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("DELETE /boats/{id}/special-pricing/{date} - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	date, err := types.ParseDate(mux.Vars(r)["date"])
	if err != nil {
		h.logger.Warn("DELETE /boats/{id}/special-pricing/{date} - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /boats/{id}/special-pricing/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	boat, err := h.service.RemoveSpecialPricing(r.Context(), boatID, date, userID)
	if err != nil {
		switch {
		case errors.Is(err, boats.ErrBoatNotFound):
			h.logger.Warn("DELETE /boats/{id}/special-pricing/{date} - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, boats.ErrSpecialPricingNotFound):
			h.logger.Warn("DELETE /boats/{id}/special-pricing/{date} - No entry: boat_id=%d, date=%s", boatID, date)
			handlers.RespondNotFound(w, msgNoPricing)

		case errors.Is(err, boats.ErrAccessDenied):
			h.logger.Warn("DELETE /boats/{id}/special-pricing/{date} - Access denied: boat_id=%d, user_id=%d",
				boatID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /boats/{id}/special-pricing/{date} - Failed to remove special pricing: boat_id=%d, error=%v",
				boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /boats/{id}/special-pricing/{date} - Special pricing removed: boat_id=%d, date=%s", boatID, date)
	handlers.RespondJSON(w, http.StatusOK, boat)
}

package get_boat

import (
	"errors"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/service/boats"
)

const (
	msgInvalidBoatID = "некорректный ID лодки"
	msgNotFound      = "лодка не найдена"
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

// Handle GET /api/v1/boats/{boatId}
// Публичный эндпоинт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("GET /boats/{id} - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	boat, err := h.service.GetByID(r.Context(), boatID)
	if err != nil {
		if errors.Is(err, boats.ErrBoatNotFound) {
			h.logger.Warn("GET /boats/{id} - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("GET /boats/{id} - Failed to get boat: boat_id=%d, error=%v", boatID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /boats/{id} - Boat retrieved successfully: boat_id=%d", boatID)
	handlers.RespondJSON(w, http.StatusOK, boat)
}

package update_boat

import (
	"errors"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/api/middleware"
	"github.com/m04kA/charter-booking-service/internal/service/boats"
	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
)

const (
	msgInvalidBoatID      = "некорректный ID лодки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "лодка не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные лодки"
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

// Handle PATCH /api/v1/boats/{boatId}
// Обновляются только переданные поля; доступно владельцу лодки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("PATCH /boats/{id} - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /boats/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateBoatRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /boats/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	boat, err := h.service.Update(r.Context(), boatID, &req)
	if err != nil {
		switch {
		case errors.Is(err, boats.ErrBoatNotFound):
			h.logger.Warn("PATCH /boats/{id} - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, boats.ErrAccessDenied):
			h.logger.Warn("PATCH /boats/{id} - Access denied: boat_id=%d, user_id=%d", boatID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, boats.ErrInvalidInput):
			h.logger.Warn("PATCH /boats/{id} - Invalid boat data: boat_id=%d, error=%v", boatID, err)
			handlers.RespondUnprocessable(w, msgInvalidData, []string{err.Error()})

		default:
			h.logger.Error("PATCH /boats/{id} - Failed to update boat: boat_id=%d, error=%v", boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /boats/{id} - Boat updated successfully: boat_id=%d, user_id=%d", boatID, userID)
	handlers.RespondJSON(w, http.StatusOK, boat)
}

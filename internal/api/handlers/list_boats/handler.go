package list_boats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/service/boats"
	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
	msgInvalidStatus  = "некорректный статус лодки"
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

// Handle GET /api/v1/boats?ownerId=&status=
// Публичный эндпоинт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListBoatsRequest{}

	if ownerIDStr := query.Get("ownerId"); ownerIDStr != "" {
		ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
		if err != nil || ownerID <= 0 {
			h.logger.Warn("GET /boats - Invalid owner ID: %q", ownerIDStr)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)
			return
		}
		req.OwnerID = &ownerID
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, boats.ErrInvalidInput) {
			h.logger.Warn("GET /boats - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /boats - Failed to list boats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /boats - Boats listed successfully: count=%d", len(result))
	handlers.RespondJSON(w, http.StatusOK, &ListBoatsResponse{Boats: result, Total: len(result)})
}

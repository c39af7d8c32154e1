package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	quotePrice "github.com/m04kA/charter-booking-service/internal/usecase/quote_price"
)

const (
	msgInvalidBoatID      = "некорректный ID лодки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные параметры расчёта"
	msgBoatNotFound       = "лодка не найдена"
	msgBoatNotBookable    = "лодка недоступна для бронирования"
	msgSlotNotFound       = "слот не найден"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/boats/{boatId}/quote
// Считает стоимость без создания бронирования
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	boatID, err := handlers.PathID(r, "boatId")
	if err != nil {
		h.logger.Warn("POST /boats/{id}/quote - Invalid boat ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBoatID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /boats/{id}/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.ValidateStruct(&req); err != nil {
		h.logger.Warn("POST /boats/{id}/quote - Validation failed: %v", err)
		handlers.RespondUnprocessable(w, msgInvalidData, handlers.ValidationMessages(err))
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(boatID)
	if err != nil {
		h.logger.Warn("POST /boats/{id}/quote - Invalid date or time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrBoatNotFound):
			h.logger.Warn("POST /boats/{id}/quote - Boat not found: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgBoatNotFound)

		case errors.Is(err, quotePrice.ErrBoatNotBookable):
			h.logger.Warn("POST /boats/{id}/quote - Boat not bookable: boat_id=%d", boatID)
			handlers.RespondNotFound(w, msgBoatNotBookable)

		case errors.Is(err, quotePrice.ErrSlotNotFound):
			h.logger.Warn("POST /boats/{id}/quote - Slot not found: boat_id=%d, error=%v", boatID, err)
			handlers.RespondUnprocessable(w, msgSlotNotFound, []string{err.Error()})

		case errors.Is(err, quotePrice.ErrServiceNotFound):
			h.logger.Warn("POST /boats/{id}/quote - Service not found: boat_id=%d, error=%v", boatID, err)
			handlers.RespondUnprocessable(w, msgServiceNotFound, []string{err.Error()})

		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /boats/{id}/quote - Invalid input: %v", err)
			handlers.RespondUnprocessable(w, msgInvalidData, []string{err.Error()})

		default:
			h.logger.Error("POST /boats/{id}/quote - Failed to quote price: boat_id=%d, error=%v", boatID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /boats/{id}/quote - Quote calculated: boat_id=%d, total=%s", boatID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package payment_callback

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/charter-booking-service/internal/api/handlers"
	"github.com/m04kA/charter-booking-service/internal/integrations/payment"
	"github.com/m04kA/charter-booking-service/internal/service/bookings"
)

const maxCallbackBodySize = 64 << 10

const (
	msgInvalidToken       = "некорректная подпись уведомления"
	msgInvalidRequestBody = "некорректное тело уведомления"
	msgNotFound           = "бронирование для платежа не найдено"
	msgAlreadyApplied     = "статус оплаты уже изменён"
)

type Handler struct {
	service  BookingService
	verifier CallbackVerifier
	logger   Logger
}

func NewHandler(service BookingService, verifier CallbackVerifier, logger Logger) *Handler {
	return &Handler{
		service:  service,
		verifier: verifier,
		logger:   logger,
	}
}

// Handle POST /api/v1/payments/callback
// Уведомление процессора о результате оплаты депозита; повторы безопасны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.verifier.VerifyCallbackToken(r.Header.Get(payment.CallbackTokenHeader)); err != nil {
		h.logger.Warn("POST /payments/callback - Invalid callback token")
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCallbackBodySize))
	if err != nil {
		h.logger.Warn("POST /payments/callback - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	callback, err := payment.ParseCallback(body)
	if err != nil {
		h.logger.Warn("POST /payments/callback - Invalid callback: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	status, ok := toPaymentStatus(callback.Status)
	if !ok {
		h.logger.Info("POST /payments/callback - Intermediate status ignored: intent=%s, status=%s",
			callback.IntentID, callback.Status)
		handlers.RespondJSON(w, http.StatusOK, &AckResponse{Received: true})
		return
	}

	booking, err := h.service.ApplyPaymentResult(r.Context(), callback.IntentID, status)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /payments/callback - Booking not found: intent=%s", callback.IntentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrInvalidTransition):
			h.logger.Warn("POST /payments/callback - Payment status already changed: intent=%s", callback.IntentID)
			handlers.RespondConflict(w, msgAlreadyApplied)

		default:
			h.logger.Error("POST /payments/callback - Failed to apply payment result: intent=%s, error=%v",
				callback.IntentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/callback - Payment result applied: booking_id=%d, payment_status=%s",
		booking.ID, booking.PaymentStatus)
	handlers.RespondJSON(w, http.StatusOK, &AckResponse{Received: true, Applied: true, Status: booking.PaymentStatus})
}

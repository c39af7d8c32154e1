package payment_callback

import (
	"context"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/service/bookings/models"
)

type BookingService interface {
	ApplyPaymentResult(ctx context.Context, intentID string, status domain.PaymentStatus) (*models.BookingResponse, error)
}

// CallbackVerifier проверяет подпись уведомления процессора
type CallbackVerifier interface {
	VerifyCallbackToken(token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

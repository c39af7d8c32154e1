package payment_callback

import (
	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/integrations/payment"
)

// AckResponse подтверждение приёма уведомления
type AckResponse struct {
	Received bool   `json:"received"`
	Applied  bool   `json:"applied"`
	Status   string `json:"status,omitempty"`
}

// toPaymentStatus сопоставляет статус платежа процессора статусу оплаты бронирования.
// Промежуточные статусы (processing, requires_action) не меняют бронирование.
func toPaymentStatus(intentStatus string) (domain.PaymentStatus, bool) {
	switch intentStatus {
	case payment.IntentStatusSucceeded:
		return domain.PaymentDepositPaid, true
	case payment.IntentStatusFailed:
		return domain.PaymentFailed, true
	default:
		return "", false
	}
}

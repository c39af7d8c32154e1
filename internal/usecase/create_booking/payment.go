package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/integrations/payment"
)

const (
	paymentResultCreated = "created"
	paymentResultFailed  = "failed"
)

// paymentMethod выбирает вариант оплаты.
// С процессором идентификатор платёжного метода важнее данных карты;
// без процессора принимаются только данные карты. nil = способ оплаты не указан.
func (uc *UseCase) paymentMethod(req *Request) domain.PaymentMethod {
	if uc.paymentClient != nil && strings.TrimSpace(req.PaymentMethodID) != "" {
		return domain.TokenizedPayment{Handle: strings.TrimSpace(req.PaymentMethodID)}
	}
	if hasCardData(req) {
		return domain.RawCardEntry{
			Number: strings.TrimSpace(req.CardNumber),
			Expiry: strings.TrimSpace(req.CardExpiry),
			CVV:    strings.TrimSpace(req.CardCVV),
		}
	}
	return nil
}

// tokenize обменивает данные карты на платёжный метод процессора
func (uc *UseCase) tokenize(ctx context.Context, method domain.PaymentMethod) (domain.PaymentMethod, error) {
	card, ok := method.(domain.RawCardEntry)
	if !ok || uc.paymentClient == nil {
		return method, nil
	}

	handle, err := uc.paymentClient.TokenizeCard(ctx, card.Number, card.Expiry, card.CVV)
	if err != nil {
		if errors.Is(err, payment.ErrCardDeclined) {
			uc.logger.Warn("CreateBooking: card *%s declined: %v", card.Last4(), err)
			return nil, fmt.Errorf("%w: %v", ErrCardDeclined, err)
		}
		uc.logger.Error("CreateBooking: failed to tokenize card *%s: %v", card.Last4(), err)
		return nil, fmt.Errorf("%w: failed to tokenize card: %v", ErrInternal, err)
	}

	return domain.TokenizedPayment{Handle: handle}, nil
}

// requestDeposit создает платёж за депозит. Ошибка процессора не отменяет заявку:
// статус оплаты переводится в failed, а результат остаётся в ответе.
func (uc *UseCase) requestDeposit(ctx context.Context, resp *Response, method domain.PaymentMethod) {
	booking := resp.Booking

	tokenized, ok := method.(domain.TokenizedPayment)
	if !ok || uc.paymentClient == nil {
		if card, isCard := method.(domain.RawCardEntry); isCard {
			uc.logger.Info("CreateBooking: booking id=%d uses manual card entry *%s", booking.ID, card.Last4())
		}
		return
	}
	if !booking.DownPayment.IsPositive() {
		return
	}

	intent, err := uc.paymentClient.CreatePaymentIntent(ctx, payment.IntentRequest{
		Amount:          booking.DownPayment,
		Currency:        booking.Currency,
		PaymentMethodID: tokenized.Handle,
		BookingID:       booking.ID,
		Description:     fmt.Sprintf("Deposit for %s on %s", booking.BoatName, booking.StartDate),
	})
	if err != nil {
		uc.metrics.IncPaymentIntent(paymentResultFailed)
		uc.logger.Error("CreateBooking: failed to create payment intent for booking id=%d: %v", booking.ID, err)
		uc.setPaymentStatus(ctx, resp, domain.PaymentFailed)
		return
	}

	uc.metrics.IncPaymentIntent(paymentResultCreated)
	if err := uc.bookingRepo.SetPaymentIntent(ctx, booking.ID, intent.ID); err != nil {
		uc.logger.Error("CreateBooking: failed to save payment intent %s for booking id=%d: %v", intent.ID, booking.ID, err)
	} else {
		booking.PaymentIntentID = &intent.ID
	}

	switch intent.Status {
	case payment.IntentStatusSucceeded:
		uc.setPaymentStatus(ctx, resp, domain.PaymentDepositPaid)
	case payment.IntentStatusFailed:
		uc.setPaymentStatus(ctx, resp, domain.PaymentFailed)
	case payment.IntentStatusRequiresAction:
		if intent.ClientSecret != "" {
			secret := intent.ClientSecret
			resp.ClientSecret = &secret
		}
	}
}

func (uc *UseCase) setPaymentStatus(ctx context.Context, resp *Response, status domain.PaymentStatus) {
	updated, err := uc.bookingRepo.UpdatePaymentStatus(ctx, resp.Booking.ID, domain.PaymentPending, status)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to set payment status %s for booking id=%d: %v", status, resp.Booking.ID, err)
		return
	}
	resp.Booking.PaymentStatus = updated.PaymentStatus
	resp.Booking.UpdatedAt = updated.UpdatedAt
}

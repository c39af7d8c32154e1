package domain

import "strings"

// Customer holds the contact data required to submit a booking
type Customer struct {
	ID    int64
	Name  string
	Email string
	Phone *string
}

// PaymentMethodKind discriminates the payment method variants
type PaymentMethodKind string

const (
	PaymentMethodTokenized PaymentMethodKind = "tokenized"
	PaymentMethodRawCard   PaymentMethodKind = "raw_card"
)

// PaymentMethod is either a TokenizedPayment (processor configured) or a
// RawCardEntry (no processor, card details entered manually)
type PaymentMethod interface {
	Kind() PaymentMethodKind
}

// TokenizedPayment is a payment method handle issued by the processor
type TokenizedPayment struct {
	Handle string
}

func (TokenizedPayment) Kind() PaymentMethodKind { return PaymentMethodTokenized }

// RawCardEntry is a manually entered card used when no processor is configured
type RawCardEntry struct {
	Number string
	Expiry string
	CVV    string
}

func (RawCardEntry) Kind() PaymentMethodKind { return PaymentMethodRawCard }

// Last4 returns the last four digits of the card number for logs
func (c RawCardEntry) Last4() string {
	digits := strings.ReplaceAll(c.Number, " ", "")
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

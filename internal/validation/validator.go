// Package validation checks a booking submission before it is stored.
package validation

import (
	"fmt"
	"strings"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Validation messages
const (
	MsgBoatRequired    = "boat is required"
	MsgDateRequired    = "booking date is required"
	MsgSlotRequired    = "a time slot must be selected"
	MsgGuestsMin       = "at least 1 guest is required"
	MsgCustomerName    = "customer name is required"
	MsgCustomerEmail   = "customer email is required"
	MsgPaymentRequired = "payment method is required"
	MsgPaymentHandle   = "payment method handle is required"
	MsgCardNumber      = "card number is required"
	MsgCardExpiry      = "card expiry is required"
	MsgCardCVV         = "card CVV is required"
	msgGuestsCapacity  = "number of guests exceeds boat capacity of %d"
)

// GuestCapacityMessage returns the capacity error for the boat's limit
func GuestCapacityMessage(maxGuests int) string {
	return fmt.Sprintf(msgGuestsCapacity, maxGuests)
}

// Result is the outcome of a validation; Errors holds every failed rule
type Result struct {
	Valid  bool
	Errors []string
}

// Validate checks every rule independently and collects all failures.
func Validate(
	boat *domain.Boat,
	date types.Date,
	slot *domain.Slot,
	guests int,
	customer domain.Customer,
	payment domain.PaymentMethod,
) Result {
	var errs []string

	if boat == nil {
		errs = append(errs, MsgBoatRequired)
	}
	if date.IsZero() {
		errs = append(errs, MsgDateRequired)
	}
	if slot == nil {
		errs = append(errs, MsgSlotRequired)
	}

	if guests < 1 {
		errs = append(errs, MsgGuestsMin)
	}
	if boat != nil && guests > boat.MaxGuests {
		errs = append(errs, GuestCapacityMessage(boat.MaxGuests))
	}

	if strings.TrimSpace(customer.Name) == "" {
		errs = append(errs, MsgCustomerName)
	}
	if strings.TrimSpace(customer.Email) == "" {
		errs = append(errs, MsgCustomerEmail)
	}

	errs = append(errs, paymentErrors(payment)...)

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

func paymentErrors(payment domain.PaymentMethod) []string {
	switch p := payment.(type) {
	case domain.TokenizedPayment:
		if strings.TrimSpace(p.Handle) == "" {
			return []string{MsgPaymentHandle}
		}
	case *domain.TokenizedPayment:
		if p == nil {
			return []string{MsgPaymentRequired}
		}
		return paymentErrors(*p)
	case domain.RawCardEntry:
		var errs []string
		if strings.TrimSpace(p.Number) == "" {
			errs = append(errs, MsgCardNumber)
		}
		if strings.TrimSpace(p.Expiry) == "" {
			errs = append(errs, MsgCardExpiry)
		}
		if strings.TrimSpace(p.CVV) == "" {
			errs = append(errs, MsgCardCVV)
		}
		return errs
	case *domain.RawCardEntry:
		if p == nil {
			return []string{MsgPaymentRequired}
		}
		return paymentErrors(*p)
	default:
		return []string{MsgPaymentRequired}
	}
	return nil
}

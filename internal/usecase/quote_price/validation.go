package quote_price

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BoatID <= 0 {
		return fmt.Errorf("%w: boatID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Guests < 0 {
		return fmt.Errorf("%w: guests must not be negative", ErrInvalidInput)
	}

	// Слот выбирается либо по имени, либо по интервалу
	if req.SlotName == "" && (req.StartTime.IsZero() || req.EndTime.IsZero()) {
		return fmt.Errorf("%w: slotName or startTime and endTime are required", ErrInvalidInput)
	}

	return nil
}

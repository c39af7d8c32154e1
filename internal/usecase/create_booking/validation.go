package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// validateRequest валидирует входные данные запроса.
// Гости, контакты и способ оплаты проверяются валидатором заявки.
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.BoatID <= 0 {
		return fmt.Errorf("%w: boatID must be positive", ErrInvalidInput)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом (в часовом поясе площадки)
func validateDate(date types.Date, now time.Time, loc *time.Location) error {
	if date.IsZero() {
		return nil
	}
	today := types.DateOf(now.In(loc))
	if date.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}
	return nil
}

// hasSlotSelection возвращает true, если клиент выбрал слот по имени или указал интервал
func hasSlotSelection(req *Request) bool {
	return req.SlotName != "" || (!req.StartTime.IsZero() && !req.EndTime.IsZero())
}

// hasCardData возвращает true, если указано хотя бы одно поле карты
func hasCardData(req *Request) bool {
	return strings.TrimSpace(req.CardNumber) != "" ||
		strings.TrimSpace(req.CardExpiry) != "" ||
		strings.TrimSpace(req.CardCVV) != ""
}

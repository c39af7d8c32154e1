package get_available_slots

import (
	"github.com/shopspring/decimal"

	getAvailableSlots "github.com/m04kA/charter-booking-service/internal/usecase/get_available_slots"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// AvailableSlotsResponse ответ со свободными слотами на дату
type AvailableSlotsResponse struct {
	BoatID           int64           `json:"boatId"`
	Date             types.Date      `json:"date"`
	Currency         string          `json:"currency"`
	CalendarDegraded bool            `json:"calendarDegraded"`
	Slots            []AvailableSlot `json:"slots"`
}

// AvailableSlot свободный слот
type AvailableSlot struct {
	Name            string           `json:"name"`
	StartTime       types.TimeString `json:"startTime"`
	EndTime         types.TimeString `json:"endTime"`
	DurationMinutes int              `json:"durationMinutes"`
	Special         bool             `json:"special"`
	Price           decimal.Decimal  `json:"price"`
}

// ToUseCaseRequest разбирает дату и собирает запрос к use case
func ToUseCaseRequest(boatID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &getAvailableSlots.Request{
		BoatID: boatID,
		Date:   date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	result := &AvailableSlotsResponse{
		BoatID:           resp.BoatID,
		Date:             resp.Date,
		Currency:         resp.Currency,
		CalendarDegraded: resp.CalendarDegraded,
		Slots:            make([]AvailableSlot, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		result.Slots = append(result.Slots, AvailableSlot{
			Name:            s.Name,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
			Special:         s.Special,
			Price:           s.Price,
		})
	}
	return result
}

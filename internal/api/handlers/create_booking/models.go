package create_booking

import (
	"github.com/m04kA/charter-booking-service/internal/service/bookings/models"
	createBooking "github.com/m04kA/charter-booking-service/internal/usecase/create_booking"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// CreateBookingRequest тело заявки на бронирование.
// Правила заявки (гости, контакты, способ оплаты) проверяет use case целиком.
type CreateBookingRequest struct {
	BoatID    int64    `json:"boatId" validate:"required,gt=0"`
	Date      string   `json:"date"`
	SlotName  string   `json:"slotName,omitempty"`
	StartTime string   `json:"startTime,omitempty"`
	EndTime   string   `json:"endTime,omitempty"`
	Guests    int      `json:"guests"`
	Services  []string `json:"services,omitempty"`

	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail" validate:"omitempty,email"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	PaymentMethodID string       `json:"paymentMethodId,omitempty"`
	Card            *CardRequest `json:"card,omitempty"`
}

// CardRequest данные карты для токенизации
type CardRequest struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

// CreateBookingResponse созданная заявка
type CreateBookingResponse struct {
	*models.BookingResponse
	PaymentClientSecret *string `json:"paymentClientSecret,omitempty"`
}

// ToUseCaseRequest разбирает дату и время и собирает запрос к use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	req := &createBooking.Request{
		UserID:          userID,
		BoatID:          r.BoatID,
		SlotName:        r.SlotName,
		Guests:          r.Guests,
		Services:        r.Services,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		Notes:           r.Notes,
		PaymentMethodID: r.PaymentMethodID,
	}

	var err error
	if r.Date != "" {
		if req.Date, err = types.ParseDate(r.Date); err != nil {
			return nil, err
		}
	}
	if r.StartTime != "" {
		if req.StartTime, err = types.NewTimeStringFromString(r.StartTime); err != nil {
			return nil, err
		}
	}
	if r.EndTime != "" {
		if req.EndTime, err = types.NewTimeStringFromString(r.EndTime); err != nil {
			return nil, err
		}
	}
	if r.Card != nil {
		req.CardNumber = r.Card.Number
		req.CardExpiry = r.Card.Expiry
		req.CardCVV = r.Card.CVV
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		BookingResponse:     models.FromDomainBooking(resp.Booking),
		PaymentClientSecret: resp.ClientSecret,
	}
}

package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateStatusRequest решение владельца по заявке
type UpdateStatusRequest struct {
	UserID int64   `json:"userId"`
	Status string  `json:"status"` // confirmed, rejected
	Reason *string `json:"reason,omitempty"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID          int64   `json:"userId"`          // кто запрашивает
	RequestedUserID int64   `json:"requestedUserId"` // чьи бронирования
	AsOwner         bool    `json:"asOwner"`         // бронирования лодок пользователя вместо его собственных
	Status          *string `json:"status,omitempty"`
}

// GetBoatBookingsRequest запрос на получение бронирований лодки
type GetBoatBookingsRequest struct {
	UserID int64       `json:"userId"`
	BoatID int64       `json:"boatId"`
	Date   *types.Date `json:"date,omitempty"`
	Status *string     `json:"status,omitempty"`
}

// CheckAvailabilityRequest проверка диапазона времени лодки
type CheckAvailabilityRequest struct {
	BoatID    int64            `json:"boatId"`
	StartDate types.Date       `json:"startDate"`
	EndDate   *types.Date      `json:"endDate,omitempty"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	ExcludeID *int64           `json:"excludeBookingId,omitempty"`
}

// Response модели

// Источники конфликтов
const (
	ConflictSourceBooking  = "booking"
	ConflictSourceCalendar = "calendar"
)

// Conflict пересечение с занятым интервалом
type Conflict struct {
	Source    string           `json:"source"`
	BookingID *int64           `json:"bookingId,omitempty"`
	Date      types.Date       `json:"date"` // дата начала брони или дата периода календаря
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// AvailabilityResponse результат проверки доступности
type AvailabilityResponse struct {
	Available bool       `json:"available"`
	Conflicts []Conflict `json:"conflicts"`
	Reason    string     `json:"reason,omitempty"`
}

// BookedServiceResponse услуга в составе бронирования
type BookedServiceResponse struct {
	Name        string          `json:"name"`
	PricingType string          `json:"pricingType"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID           int64            `json:"id"`
	BoatID       int64            `json:"boatId"`
	BoatName     string           `json:"boatName"`
	CustomerID   int64            `json:"customerId"`
	StartDate    types.Date       `json:"startDate"`
	EndDate      types.Date       `json:"endDate"`
	StartTime    types.TimeString `json:"startTime"`
	EndTime      types.TimeString `json:"endTime"`
	SlotName     string           `json:"slotName"`
	IsCustomTime bool             `json:"isCustomTime"`
	Guests       int              `json:"guests"`

	TotalHours            decimal.Decimal         `json:"totalHours"`
	Rate                  decimal.Decimal         `json:"rate"`
	RateSource            string                  `json:"rateSource"`
	BasePrice             decimal.Decimal         `json:"basePrice"`
	AdditionalServices    []BookedServiceResponse `json:"additionalServices"`
	TotalAmount           decimal.Decimal         `json:"totalAmount"`
	DownPaymentPercentage int                     `json:"downPaymentPercentage"`
	DownPayment           decimal.Decimal         `json:"downPayment"`
	RemainingBalance      decimal.Decimal         `json:"remainingBalance"`
	Currency              string                  `json:"currency"`

	Status          string  `json:"status"`
	PaymentStatus   string  `json:"paymentStatus"`
	CustomerName    string  `json:"customerName"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerPhone   *string `json:"customerPhone,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`

	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	RejectedAt  *time.Time `json:"rejectedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain модель в response.
// Комиссия платформы и выплата владельцу в ответ не попадают.
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	services := make([]BookedServiceResponse, 0, len(b.AdditionalServices))
	for _, s := range b.AdditionalServices {
		services = append(services, BookedServiceResponse{
			Name:        s.Name,
			PricingType: string(s.PricingType),
			Price:       s.Price,
			Amount:      s.Amount,
		})
	}

	return &BookingResponse{
		ID:                    b.ID,
		BoatID:                b.BoatID,
		BoatName:              b.BoatName,
		CustomerID:            b.CustomerID,
		StartDate:             b.StartDate,
		EndDate:               b.EndDate,
		StartTime:             b.StartTime,
		EndTime:               b.EndTime,
		SlotName:              b.SlotName,
		IsCustomTime:          b.IsCustomTime,
		Guests:                b.Guests,
		TotalHours:            b.TotalHours,
		Rate:                  b.Rate,
		RateSource:            string(b.RateSource),
		BasePrice:             b.BasePrice,
		AdditionalServices:    services,
		TotalAmount:           b.TotalAmount,
		DownPaymentPercentage: b.DownPaymentPercentage,
		DownPayment:           b.DownPayment,
		RemainingBalance:      b.RemainingBalance,
		Currency:              b.Currency,
		Status:                string(b.Status),
		PaymentStatus:         string(b.PaymentStatus),
		CustomerName:          b.CustomerName,
		CustomerEmail:         b.CustomerEmail,
		CustomerPhone:         b.CustomerPhone,
		Notes:                 b.Notes,
		RejectionReason:       b.RejectionReason,
		ConfirmedAt:           b.ConfirmedAt,
		RejectedAt:            b.RejectedAt,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

// FromDomainBookings конвертирует список бронирований
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// ToDomainStatusPtr конвертирует опциональный статус фильтра
func ToDomainStatusPtr(status *string) (*domain.BookingStatus, error) {
	if status == nil {
		return nil, nil
	}
	s, err := ToDomainBookingStatus(*status)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

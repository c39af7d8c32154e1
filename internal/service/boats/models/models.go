package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе лодки
	ErrInvalidStatus = errors.New("invalid boat status")
)

// Request модели

// BlockRequest блок доступности
type BlockRequest struct {
	Name      string           `json:"name"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// ServiceRequest дополнительная услуга
type ServiceRequest struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	PricingType string          `json:"pricingType"` // fixed, per_person, per_hour
	Description *string         `json:"description,omitempty"`
}

// CalendarRequest настройки интеграции с календарём
type CalendarRequest struct {
	Enabled    bool   `json:"enabled"`
	CalendarID string `json:"calendarId"`
}

// CreateBoatRequest запрос на создание лодки
type CreateBoatRequest struct {
	UserID                int64            `json:"userId"`
	Name                  string           `json:"name"`
	Description           *string          `json:"description,omitempty"`
	Location              *string          `json:"location,omitempty"`
	Status                *string          `json:"status,omitempty"` // по умолчанию draft
	MaxGuests             int              `json:"maxGuests"`
	PricePerHour          decimal.Decimal  `json:"pricePerHour"`
	WeekendPrice          *decimal.Decimal `json:"weekendPrice,omitempty"`
	DownPaymentPercentage *int             `json:"downPaymentPercentage,omitempty"`
	Calendar              *CalendarRequest `json:"calendar,omitempty"`
	AvailabilityBlocks    []BlockRequest   `json:"availabilityBlocks"`
	Services              []ServiceRequest `json:"services"`
}

// ToDomainBoat конвертирует request в domain модель
func (r *CreateBoatRequest) ToDomainBoat() (*domain.Boat, error) {
	status := domain.BoatStatusDraft
	if r.Status != nil {
		s, err := ToDomainBoatStatus(*r.Status)
		if err != nil {
			return nil, err
		}
		status = s
	}

	downPayment := domain.DefaultDownPaymentPercentage
	if r.DownPaymentPercentage != nil {
		downPayment = *r.DownPaymentPercentage
	}

	boat := &domain.Boat{
		OwnerID:               r.UserID,
		Name:                  r.Name,
		Description:           r.Description,
		Location:              r.Location,
		Status:                status,
		MaxGuests:             r.MaxGuests,
		PricePerHour:          r.PricePerHour,
		WeekendPrice:          r.WeekendPrice,
		DownPaymentPercentage: domain.ClampDownPaymentPercentage(downPayment),
		AvailabilityBlocks:    ToDomainBlocks(r.AvailabilityBlocks),
		SpecialPricing:        []domain.SpecialPricingEntry{},
		Services:              ToDomainServices(r.Services),
	}
	if r.Calendar != nil {
		boat.Calendar = domain.CalendarIntegration{Enabled: r.Calendar.Enabled, CalendarID: r.Calendar.CalendarID}
	}
	return boat, nil
}

// UpdateBoatRequest запрос на обновление лодки
// Все поля опциональны - обновляются только переданные значения
type UpdateBoatRequest struct {
	UserID                int64             `json:"userId"`
	Name                  *string           `json:"name,omitempty"`
	Description           *string           `json:"description,omitempty"`
	Location              *string           `json:"location,omitempty"`
	Status                *string           `json:"status,omitempty"`
	MaxGuests             *int              `json:"maxGuests,omitempty"`
	PricePerHour          *decimal.Decimal  `json:"pricePerHour,omitempty"`
	WeekendPrice          *decimal.Decimal  `json:"weekendPrice,omitempty"`
	ClearWeekendPrice     bool              `json:"clearWeekendPrice,omitempty"`
	DownPaymentPercentage *int              `json:"downPaymentPercentage,omitempty"`
	Calendar              *CalendarRequest  `json:"calendar,omitempty"`
	AvailabilityBlocks    *[]BlockRequest   `json:"availabilityBlocks,omitempty"`
	Services              *[]ServiceRequest `json:"services,omitempty"`
}

// ApplyTo применяет переданные поля к лодке
func (r *UpdateBoatRequest) ApplyTo(boat *domain.Boat) error {
	if r.Name != nil {
		boat.Name = *r.Name
	}
	if r.Description != nil {
		boat.Description = r.Description
	}
	if r.Location != nil {
		boat.Location = r.Location
	}
	if r.Status != nil {
		status, err := ToDomainBoatStatus(*r.Status)
		if err != nil {
			return err
		}
		boat.Status = status
	}
	if r.MaxGuests != nil {
		boat.MaxGuests = *r.MaxGuests
	}
	if r.PricePerHour != nil {
		boat.PricePerHour = *r.PricePerHour
	}
	if r.WeekendPrice != nil {
		boat.WeekendPrice = r.WeekendPrice
	}
	if r.ClearWeekendPrice {
		boat.WeekendPrice = nil
	}
	if r.DownPaymentPercentage != nil {
		boat.DownPaymentPercentage = domain.ClampDownPaymentPercentage(*r.DownPaymentPercentage)
	}
	if r.Calendar != nil {
		boat.Calendar = domain.CalendarIntegration{Enabled: r.Calendar.Enabled, CalendarID: r.Calendar.CalendarID}
	}
	if r.AvailabilityBlocks != nil {
		boat.AvailabilityBlocks = ToDomainBlocks(*r.AvailabilityBlocks)
	}
	if r.Services != nil {
		boat.Services = ToDomainServices(*r.Services)
	}
	return nil
}

// ListBoatsRequest запрос на получение списка лодок
type ListBoatsRequest struct {
	OwnerID *int64  `json:"ownerId,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBoatsRequest) ToDomainFilter() (domain.BoatFilter, error) {
	filter := domain.BoatFilter{OwnerID: r.OwnerID}
	if r.Status != nil {
		status, err := ToDomainBoatStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}
	return filter, nil
}

// SpecialPricingRequest запрос на установку спецтарифа на дату
type SpecialPricingRequest struct {
	UserID       int64            `json:"userId"`
	Date         types.Date       `json:"date"`
	PricingType  string           `json:"pricingType"` // hourly, daily
	PricePerHour decimal.Decimal  `json:"pricePerHour"`
	PricePerDay  decimal.Decimal  `json:"pricePerDay"`
	Name         *string          `json:"name,omitempty"`
	StartTime    types.TimeString `json:"startTime,omitempty"`
	EndTime      types.TimeString `json:"endTime,omitempty"`
}

// ToDomainEntry конвертирует request в запись спецтарифа
func (r *SpecialPricingRequest) ToDomainEntry() domain.SpecialPricingEntry {
	return domain.SpecialPricingEntry{
		Date:         r.Date,
		PricingType:  domain.SpecialPricingType(r.PricingType),
		PricePerHour: r.PricePerHour,
		PricePerDay:  r.PricePerDay,
		Name:         r.Name,
		StartTime:    r.StartTime,
		EndTime:      r.EndTime,
	}
}

// Response модели

// SpecialPricingResponse спецтариф на дату
type SpecialPricingResponse struct {
	Date         types.Date       `json:"date"`
	PricingType  string           `json:"pricingType"`
	PricePerHour decimal.Decimal  `json:"pricePerHour"`
	PricePerDay  decimal.Decimal  `json:"pricePerDay"`
	Name         *string          `json:"name,omitempty"`
	StartTime    types.TimeString `json:"startTime,omitempty"`
	EndTime      types.TimeString `json:"endTime,omitempty"`
}

// BoatResponse ответ с данными лодки
type BoatResponse struct {
	ID                    int64                    `json:"id"`
	OwnerID               int64                    `json:"ownerId"`
	Name                  string                   `json:"name"`
	Description           *string                  `json:"description,omitempty"`
	Location              *string                  `json:"location,omitempty"`
	Status                string                   `json:"status"`
	MaxGuests             int                      `json:"maxGuests"`
	PricePerHour          decimal.Decimal          `json:"pricePerHour"`
	WeekendPrice          *decimal.Decimal         `json:"weekendPrice,omitempty"`
	DownPaymentPercentage int                      `json:"downPaymentPercentage"`
	CalendarEnabled       bool                     `json:"calendarEnabled"`
	AvailabilityBlocks    []BlockRequest           `json:"availabilityBlocks"`
	SpecialPricing        []SpecialPricingResponse `json:"specialPricing"`
	Services              []ServiceRequest         `json:"services"`
	BlockErrors           []string                 `json:"blockErrors,omitempty"` // блоки, которые не попадут в расчёт слотов
	CreatedAt             time.Time                `json:"createdAt"`
	UpdatedAt             time.Time                `json:"updatedAt"`
}

// FromDomainBoat конвертирует domain модель в response
func FromDomainBoat(boat *domain.Boat) *BoatResponse {
	resp := &BoatResponse{
		ID:                    boat.ID,
		OwnerID:               boat.OwnerID,
		Name:                  boat.Name,
		Description:           boat.Description,
		Location:              boat.Location,
		Status:                string(boat.Status),
		MaxGuests:             boat.MaxGuests,
		PricePerHour:          boat.PricePerHour,
		WeekendPrice:          boat.WeekendPrice,
		DownPaymentPercentage: boat.DownPaymentPercentage,
		CalendarEnabled:       boat.UsesCalendar(),
		AvailabilityBlocks:    make([]BlockRequest, 0, len(boat.AvailabilityBlocks)),
		SpecialPricing:        make([]SpecialPricingResponse, 0, len(boat.SpecialPricing)),
		Services:              make([]ServiceRequest, 0, len(boat.Services)),
		CreatedAt:             boat.CreatedAt,
		UpdatedAt:             boat.UpdatedAt,
	}

	for _, b := range boat.AvailabilityBlocks {
		resp.AvailabilityBlocks = append(resp.AvailabilityBlocks, BlockRequest{
			Name:      b.Name,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	for _, e := range boat.SpecialPricing {
		resp.SpecialPricing = append(resp.SpecialPricing, SpecialPricingResponse{
			Date:         e.Date,
			PricingType:  string(e.PricingType),
			PricePerHour: e.PricePerHour,
			PricePerDay:  e.PricePerDay,
			Name:         e.Name,
			StartTime:    e.StartTime,
			EndTime:      e.EndTime,
		})
	}
	for _, s := range boat.Services {
		resp.Services = append(resp.Services, ServiceRequest{
			Name:        s.Name,
			Price:       s.Price,
			PricingType: string(s.PricingType),
			Description: s.Description,
		})
	}
	if blockErrs := domain.ValidateBlocks(boat.AvailabilityBlocks); blockErrs != nil {
		resp.BlockErrors = blockErrs.Messages()
	}

	return resp
}

// FromDomainBoats конвертирует список лодок
func FromDomainBoats(boats []*domain.Boat) []*BoatResponse {
	resp := make([]*BoatResponse, 0, len(boats))
	for _, b := range boats {
		resp = append(resp, FromDomainBoat(b))
	}
	return resp
}

// Вспомогательные функции

// ToDomainBlocks конвертирует блоки доступности
func ToDomainBlocks(blocks []BlockRequest) []domain.AvailabilityBlock {
	out := make([]domain.AvailabilityBlock, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, domain.AvailabilityBlock{
			Name:      b.Name,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	return out
}

// ToDomainServices конвертирует услуги; тип цены не выводится из описания
func ToDomainServices(services []ServiceRequest) []domain.Service {
	out := make([]domain.Service, 0, len(services))
	for _, s := range services {
		out = append(out, domain.Service{
			Name:        s.Name,
			Price:       s.Price,
			PricingType: domain.ServicePricingType(s.PricingType),
			Description: s.Description,
		})
	}
	return out
}

// ToDomainBoatStatus конвертирует строку в domain статус
func ToDomainBoatStatus(status string) (domain.BoatStatus, error) {
	s := domain.BoatStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

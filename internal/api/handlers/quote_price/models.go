package quote_price

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/domain"
	quotePrice "github.com/m04kA/charter-booking-service/internal/usecase/quote_price"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// QuoteRequest тело запроса на расчёт стоимости
type QuoteRequest struct {
	Date      string   `json:"date" validate:"required"`
	SlotName  string   `json:"slotName,omitempty" validate:"omitempty,max=100"`
	StartTime string   `json:"startTime,omitempty"`
	EndTime   string   `json:"endTime,omitempty"`
	Guests    int      `json:"guests" validate:"gte=0"`
	Services  []string `json:"services,omitempty" validate:"omitempty,dive,required"`
}

// ServiceLine строка расчёта по услуге
type ServiceLine struct {
	Name        string          `json:"name"`
	PricingType string          `json:"pricingType"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// QuoteResponse расчёт стоимости аренды
type QuoteResponse struct {
	BoatID       int64            `json:"boatId"`
	Date         types.Date       `json:"date"`
	EndDate      types.Date       `json:"endDate"`
	SlotName     string           `json:"slotName"`
	StartTime    types.TimeString `json:"startTime"`
	EndTime      types.TimeString `json:"endTime"`
	IsCustomTime bool             `json:"isCustomTime"`
	Currency     string           `json:"currency"`

	RateSource        string          `json:"rateSource"`
	PricingType       string          `json:"pricingType"`
	Rate              decimal.Decimal `json:"rate"`
	Hours             decimal.Decimal `json:"hours"`
	BaseAmount        decimal.Decimal `json:"baseAmount"`
	Services          []ServiceLine   `json:"services"`
	ServicesTotal     decimal.Decimal `json:"servicesTotal"`
	Total             decimal.Decimal `json:"total"`
	DepositPercentage int             `json:"depositPercentage"`
	Deposit           decimal.Decimal `json:"deposit"`
	RemainingBalance  decimal.Decimal `json:"remainingBalance"`
}

// ToUseCaseRequest разбирает дату и время и собирает запрос к use case
func (r *QuoteRequest) ToUseCaseRequest(boatID int64) (*quotePrice.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	req := &quotePrice.Request{
		BoatID:   boatID,
		Date:     date,
		SlotName: r.SlotName,
		Guests:   r.Guests,
		Services: r.Services,
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
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP ответ
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	return &QuoteResponse{
		BoatID:            resp.BoatID,
		Date:              resp.Date,
		EndDate:           resp.EndDate,
		SlotName:          resp.SlotName,
		StartTime:         resp.StartTime,
		EndTime:           resp.EndTime,
		IsCustomTime:      resp.IsCustomTime,
		Currency:          resp.Currency,
		RateSource:        string(resp.RateSource),
		PricingType:       string(resp.PricingType),
		Rate:              resp.Rate,
		Hours:             resp.Hours,
		BaseAmount:        resp.BaseAmount,
		Services:          fromBookedServices(resp.Services),
		ServicesTotal:     resp.ServicesTotal,
		Total:             resp.Total,
		DepositPercentage: resp.DepositPercentage,
		Deposit:           resp.Deposit,
		RemainingBalance:  resp.RemainingBalance,
	}
}

func fromBookedServices(services []domain.BookedService) []ServiceLine {
	lines := make([]ServiceLine, 0, len(services))
	for _, s := range services {
		lines = append(lines, ServiceLine{
			Name:        s.Name,
			PricingType: string(s.PricingType),
			Price:       s.Price,
			Amount:      s.Amount,
		})
	}
	return lines
}

// Package pricing computes the price breakdown of a charter.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

var minutesPerHour = decimal.NewFromInt(60)

// Breakdown is the published price of a charter. Amounts are rounded to cents;
// RemainingBalance is derived from the rounded Total and Deposit so that
// Deposit + RemainingBalance == Total.
type Breakdown struct {
	RateSource  domain.RateSource
	PricingType domain.SpecialPricingType
	Rate        decimal.Decimal
	Hours       decimal.Decimal

	BaseAmount    decimal.Decimal
	Services      []domain.BookedService
	ServicesTotal decimal.Decimal
	Total         decimal.Decimal

	DepositPercentage int
	Deposit           decimal.Decimal
	RemainingBalance  decimal.Decimal
	Commission        decimal.Decimal
	OwnerPayout       decimal.Decimal
}

// ResolveRate picks the rate for the date: special entry, then weekend price, then base price
func ResolveRate(boat *domain.Boat, date types.Date) (decimal.Decimal, domain.RateSource, domain.SpecialPricingType) {
	if entry, ok := boat.SpecialPricingFor(date); ok {
		return entry.Rate(), domain.RateSourceSpecial, entry.PricingType
	}
	if date.IsWeekend() && boat.WeekendPrice != nil {
		return *boat.WeekendPrice, domain.RateSourceWeekend, domain.SpecialPricingHourly
	}
	return boat.PricePerHour, domain.RateSourceBase, domain.SpecialPricingHourly
}

// SlotHours returns the slot duration in hours; custom ranges are measured mod 24h
func SlotHours(slot domain.Slot) decimal.Decimal {
	minutes := slot.DurationMinutes
	if minutes <= 0 {
		if m, err := slot.StartTime.MinutesUntil(slot.EndTime); err == nil {
			minutes = m
		}
	}
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour)
}

// PriceFor computes the price of the slot on the date for the given guests and services.
// It never fails: zero guests or zero prices give a zero-valued breakdown.
func PriceFor(
	boat *domain.Boat,
	date types.Date,
	slot domain.Slot,
	guests int,
	services []domain.Service,
) Breakdown {
	if boat == nil {
		return Breakdown{Services: []domain.BookedService{}}
	}
	if guests < 0 {
		guests = 0
	}

	rate, source, pricingType := ResolveRate(boat, date)
	hours := SlotHours(slot)

	// Промежуточные суммы не округляются
	base := rate.Mul(hours)
	if pricingType == domain.SpecialPricingDaily {
		base = rate
	}

	booked := make([]domain.BookedService, 0, len(services))
	servicesTotal := decimal.Zero
	for _, s := range services {
		amount := ServiceCost(s, guests, hours)
		servicesTotal = servicesTotal.Add(amount)
		booked = append(booked, domain.BookedService{
			Name:        s.Name,
			Price:       s.Price,
			PricingType: s.PricingType,
			Description: s.Description,
			Amount:      domain.RoundMoney(amount),
		})
	}

	total := base.Add(servicesTotal)
	percentage := boat.DownPaymentPercentage

	roundedTotal := domain.RoundMoney(total)
	deposit := domain.RoundMoney(domain.Percent(total, percentage))
	commission := domain.RoundMoney(total.Mul(domain.CommissionRate))

	return Breakdown{
		RateSource:        source,
		PricingType:       pricingType,
		Rate:              domain.RoundMoney(rate),
		Hours:             hours.Round(2),
		BaseAmount:        domain.RoundMoney(base),
		Services:          booked,
		ServicesTotal:     domain.RoundMoney(servicesTotal),
		Total:             roundedTotal,
		DepositPercentage: percentage,
		Deposit:           deposit,
		RemainingBalance:  roundedTotal.Sub(deposit),
		Commission:        commission,
		OwnerPayout:       roundedTotal.Sub(commission),
	}
}

// ServiceCost returns the unrounded cost of one service.
// Unknown pricing types are charged as fixed.
func ServiceCost(s domain.Service, guests int, hours decimal.Decimal) decimal.Decimal {
	switch s.PricingType {
	case domain.ServicePricingPerPerson:
		return s.Price.Mul(decimal.NewFromInt(int64(guests)))
	case domain.ServicePricingPerHour:
		return s.Price.Mul(hours)
	default:
		return s.Price
	}
}

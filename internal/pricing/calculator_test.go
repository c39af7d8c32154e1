package pricing

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

var (
	saturday = types.NewDate(2025, 6, 14)
	tuesday  = types.NewDate(2025, 6, 10)
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2))
}

func newBoat() *domain.Boat {
	weekend := money("240")
	return &domain.Boat{
		ID:                    1,
		MaxGuests:             10,
		PricePerHour:          money("150"),
		WeekendPrice:          &weekend,
		DownPaymentPercentage: 25,
	}
}

func fourHourSlot() domain.Slot {
	return domain.Slot{Name: "Morning", StartTime: "09:00", EndTime: "13:00", DurationMinutes: 240}
}

func TestResolveRate_Priority(t *testing.T) {
	boat := newBoat()

	rate, source, _ := ResolveRate(boat, tuesday)
	assertMoney(t, "150.00", rate)
	assert.Equal(t, domain.RateSourceBase, source)

	rate, source, _ = ResolveRate(boat, saturday)
	assertMoney(t, "240.00", rate)
	assert.Equal(t, domain.RateSourceWeekend, source)

	boat.SetSpecialPricing(domain.SpecialPricingEntry{
		Date:         saturday,
		PricingType:  domain.SpecialPricingHourly,
		PricePerHour: money("500"),
	})
	rate, source, pricingType := ResolveRate(boat, saturday)
	assertMoney(t, "500.00", rate)
	assert.Equal(t, domain.RateSourceSpecial, source)
	assert.Equal(t, domain.SpecialPricingHourly, pricingType)
}

func TestResolveRate_WeekendWithoutWeekendPriceUsesBase(t *testing.T) {
	boat := newBoat()
	boat.WeekendPrice = nil

	rate, source, _ := ResolveRate(boat, saturday)
	assertMoney(t, "150.00", rate)
	assert.Equal(t, domain.RateSourceBase, source)
}

func TestPriceFor_HourlyWithServices(t *testing.T) {
	boat := newBoat()
	services := []domain.Service{
		{Name: "Lunch", Price: money("50"), PricingType: domain.ServicePricingPerPerson},
		{Name: "Skipper", Price: money("20"), PricingType: domain.ServicePricingPerHour},
		{Name: "Cleaning", Price: money("35"), PricingType: domain.ServicePricingFixed},
	}

	b := PriceFor(boat, tuesday, fourHourSlot(), 6, services)

	assert.Equal(t, domain.RateSourceBase, b.RateSource)
	assertMoney(t, "4.00", b.Hours)
	assertMoney(t, "600.00", b.BaseAmount)
	require.Len(t, b.Services, 3)
	assertMoney(t, "300.00", b.Services[0].Amount)
	assertMoney(t, "80.00", b.Services[1].Amount)
	assertMoney(t, "35.00", b.Services[2].Amount)
	assertMoney(t, "415.00", b.ServicesTotal)
	assertMoney(t, "1015.00", b.Total)
	assertMoney(t, "253.75", b.Deposit)
	assertMoney(t, "761.25", b.RemainingBalance)
	assertMoney(t, "101.50", b.Commission)
	assertMoney(t, "913.50", b.OwnerPayout)
	assert.Equal(t, 25, b.DepositPercentage)
}

func TestPriceFor_SpecialRateBeatsWeekend(t *testing.T) {
	boat := newBoat()
	boat.SetSpecialPricing(domain.SpecialPricingEntry{
		Date:         saturday,
		PricingType:  domain.SpecialPricingHourly,
		PricePerHour: money("500"),
	})

	b := PriceFor(boat, saturday, fourHourSlot(), 2, nil)

	assertMoney(t, "500.00", b.Rate)
	assertMoney(t, "2000.00", b.BaseAmount)
	assert.Equal(t, domain.RateSourceSpecial, b.RateSource)
}

func TestPriceFor_DailyRateIsFlat(t *testing.T) {
	boat := newBoat()
	boat.SetSpecialPricing(domain.SpecialPricingEntry{
		Date:        tuesday,
		PricingType: domain.SpecialPricingDaily,
		PricePerDay: money("2500"),
		StartTime:   "08:00",
		EndTime:     "20:00",
	})
	slot := domain.Slot{Name: "Special", StartTime: "08:00", EndTime: "20:00", DurationMinutes: 720, Synthetic: true}
	services := []domain.Service{{Name: "Skipper", Price: money("20"), PricingType: domain.ServicePricingPerHour}}

	b := PriceFor(boat, tuesday, slot, 4, services)

	assert.Equal(t, domain.SpecialPricingDaily, b.PricingType)
	assertMoney(t, "2500.00", b.BaseAmount)
	assertMoney(t, "240.00", b.ServicesTotal)
	assertMoney(t, "2740.00", b.Total)
}

func TestPriceFor_OvernightCustomRange(t *testing.T) {
	boat := newBoat()
	slot := domain.Slot{StartTime: "22:00", EndTime: "02:00"}

	b := PriceFor(boat, tuesday, slot, 2, nil)

	assertMoney(t, "4.00", b.Hours)
	assertMoney(t, "600.00", b.BaseAmount)
}

func TestPriceFor_ZeroInputsNeverFail(t *testing.T) {
	boat := &domain.Boat{DownPaymentPercentage: 10}
	services := []domain.Service{{Name: "Lunch", Price: money("50"), PricingType: domain.ServicePricingPerPerson}}

	b := PriceFor(boat, tuesday, domain.Slot{}, 0, services)

	assertMoney(t, "0.00", b.Total)
	assertMoney(t, "0.00", b.Deposit)
	assertMoney(t, "0.00", b.RemainingBalance)

	assert.NotPanics(t, func() { PriceFor(nil, tuesday, fourHourSlot(), 3, nil) })
}

func TestPriceFor_UnknownServiceTypeChargedAsFixed(t *testing.T) {
	services := []domain.Service{{Name: "Legacy", Price: money("12.50"), PricingType: "per_boat"}}

	b := PriceFor(newBoat(), tuesday, fourHourSlot(), 5, services)

	assertMoney(t, "12.50", b.ServicesTotal)
}

func TestPriceFor_IntermediateValuesAreNotRounded(t *testing.T) {
	boat := newBoat()
	boat.PricePerHour = money("33.33")
	slot := domain.Slot{StartTime: "10:00", EndTime: "11:20", DurationMinutes: 80}
	services := []domain.Service{
		{Name: "Guide", Price: money("10.01"), PricingType: domain.ServicePricingPerHour},
		{Name: "Drinks", Price: money("3.333"), PricingType: domain.ServicePricingPerPerson},
	}

	b := PriceFor(boat, tuesday, slot, 3, services)

	// 33.33*4/3 + 10.01*4/3 + 3.333*3 = 44.44 + 13.346666... + 9.999 = 67.785666...
	assertMoney(t, "67.79", b.Total)
}

func TestPriceFor_DepositPlusRemainingEqualsTotal(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		boat := newBoat()
		boat.PricePerHour = decimal.New(int64(rnd.Intn(100000)), -2)
		boat.DownPaymentPercentage = domain.ClampDownPaymentPercentage(rnd.Intn(101))
		slot := domain.Slot{DurationMinutes: 15 * (1 + rnd.Intn(96))}
		services := []domain.Service{
			{Name: "a", Price: decimal.New(int64(rnd.Intn(10000)), -3), PricingType: domain.ServicePricingPerHour},
			{Name: "b", Price: decimal.New(int64(rnd.Intn(10000)), -2), PricingType: domain.ServicePricingPerPerson},
		}

		b := PriceFor(boat, tuesday, slot, rnd.Intn(12), services)

		require.True(t, b.Deposit.Add(b.RemainingBalance).Equal(b.Total),
			"deposit %s + remaining %s != total %s", b.Deposit, b.RemainingBalance, b.Total)
		require.True(t, b.Commission.Add(b.OwnerPayout).Equal(b.Total))
	}
}

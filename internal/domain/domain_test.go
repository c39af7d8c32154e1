package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/charter-booking-service/pkg/ptr"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

func TestAvailabilityBlock_Duration(t *testing.T) {
	tests := []struct {
		name    string
		block   AvailabilityBlock
		minutes int
		wantErr error
	}{
		{name: "morning", block: AvailabilityBlock{Name: "Morning", StartTime: "09:00", EndTime: "13:00"}, minutes: 240},
		{name: "overnight", block: AvailabilityBlock{Name: "Night", StartTime: "22:00", EndTime: "02:00"}, minutes: 240},
		{name: "zero", block: AvailabilityBlock{Name: "Empty", StartTime: "10:00", EndTime: "10:00"}, wantErr: ErrZeroBlockDuration},
		{name: "unparsable", block: AvailabilityBlock{Name: "Broken", StartTime: "25:99", EndTime: "10:00"}, wantErr: ErrInvalidBlockTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			d, err := tt.block.DurationMinutes()
			require.NoError(t, err)
			assert.Equal(t, tt.minutes, d)
		})
	}
}

func TestValidateBlocks_ReportsOnlyBrokenBlocks(t *testing.T) {
	blocks := []AvailabilityBlock{
		{Name: "Morning", StartTime: "09:00", EndTime: "13:00"},
		{Name: "Broken", StartTime: "xx", EndTime: "13:00"},
		{Name: "Sunset", StartTime: "18:00", EndTime: "21:00"},
		{Name: "Empty", StartTime: "12:00", EndTime: "12:00"},
	}

	errs := ValidateBlocks(blocks)
	require.Len(t, errs, 2)
	assert.Equal(t, 1, errs[0].Index)
	assert.Equal(t, 3, errs[1].Index)
	assert.True(t, errors.Is(errs[1], ErrZeroBlockDuration))
	assert.Len(t, errs.Messages(), 2)

	assert.Nil(t, ValidateBlocks(blocks[:1]))
}

func TestBookingStatus_OneWayTransitions(t *testing.T) {
	assert.True(t, StatusPendingApproval.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPendingApproval.CanTransitionTo(StatusRejected))
	assert.False(t, StatusRejected.CanTransitionTo(StatusPendingApproval))
	assert.False(t, StatusRejected.CanTransitionTo(StatusConfirmed))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusRejected))

	assert.True(t, PaymentPending.CanTransitionTo(PaymentDepositPaid))
	assert.False(t, PaymentFailed.CanTransitionTo(PaymentDepositPaid))
}

func TestBoat_SetSpecialPricingReplacesSameDate(t *testing.T) {
	date := types.NewDate(2025, 7, 4)
	boat := &Boat{}

	boat.SetSpecialPricing(SpecialPricingEntry{Date: date, PricingType: SpecialPricingHourly, PricePerHour: decimal.NewFromInt(300)})
	boat.SetSpecialPricing(SpecialPricingEntry{Date: date.AddDays(1), PricingType: SpecialPricingHourly, PricePerHour: decimal.NewFromInt(200)})
	boat.SetSpecialPricing(SpecialPricingEntry{Date: date, PricingType: SpecialPricingHourly, PricePerHour: decimal.NewFromInt(500)})

	require.Len(t, boat.SpecialPricing, 2)
	entry, ok := boat.SpecialPricingFor(date)
	require.True(t, ok)
	assert.True(t, entry.Rate().Equal(decimal.NewFromInt(500)))

	assert.True(t, boat.RemoveSpecialPricing(date))
	assert.False(t, boat.RemoveSpecialPricing(date))
	assert.Len(t, boat.SpecialPricing, 1)
}

func TestSpecialPricingEntry_Validate(t *testing.T) {
	date := types.NewDate(2025, 12, 31)

	daily := SpecialPricingEntry{Date: date, PricingType: SpecialPricingDaily, PricePerDay: decimal.NewFromInt(3000), StartTime: "18:00", EndTime: "02:00"}
	require.NoError(t, daily.Validate())

	slot, err := daily.Window()
	require.NoError(t, err)
	assert.Equal(t, 480, slot.DurationMinutes)
	assert.True(t, slot.Synthetic)

	noWindow := SpecialPricingEntry{Date: date, PricingType: SpecialPricingDaily, PricePerDay: decimal.NewFromInt(3000)}
	assert.ErrorIs(t, noWindow.Validate(), ErrInvalidSpecialPricing)

	unknown := SpecialPricingEntry{Date: date, PricingType: "weekly"}
	assert.ErrorIs(t, unknown.Validate(), ErrInvalidSpecialPricing)

	hourly := SpecialPricingEntry{Date: date, PricingType: SpecialPricingHourly, PricePerHour: decimal.NewFromInt(500)}
	assert.NoError(t, hourly.Validate())
}

func TestInferServicePricingType(t *testing.T) {
	assert.Equal(t, ServicePricingPerHour, InferServicePricingType("Skipper, $40 per hour"))
	assert.Equal(t, ServicePricingPerPerson, InferServicePricingType("Lunch Per Person"))
	assert.Equal(t, ServicePricingFixed, InferServicePricingType("Cleaning fee"))
}

func TestService_ValidateRequiresPricingType(t *testing.T) {
	s := Service{Name: "Skipper", Price: decimal.NewFromInt(40)}
	assert.ErrorIs(t, s.Validate(), ErrInvalidService)

	s.PricingType = ServicePricingPerHour
	assert.NoError(t, s.Validate())
}

func TestClampDownPaymentPercentage(t *testing.T) {
	assert.Equal(t, 10, ClampDownPaymentPercentage(0))
	assert.Equal(t, 10, ClampDownPaymentPercentage(5))
	assert.Equal(t, 30, ClampDownPaymentPercentage(30))
	assert.Equal(t, 100, ClampDownPaymentPercentage(150))
}

func TestFilters_EmptyMatchesEverything(t *testing.T) {
	boat := &Boat{ID: 1, OwnerID: 2, Status: BoatStatusActive}
	booking := &Booking{ID: 5, BoatID: 1, CustomerID: 9, StartDate: types.NewDate(2025, 6, 14), Status: StatusConfirmed}

	assert.True(t, BoatFilter{}.Matches(boat))
	assert.True(t, BookingFilter{}.Matches(booking))

	assert.False(t, BoatFilter{OwnerID: ptr.Ptr(int64(3))}.Matches(boat))
	assert.True(t, BoatFilter{Status: ptr.Ptr(BoatStatusActive)}.Matches(boat))

	assert.False(t, BookingFilter{ExcludeID: ptr.Ptr(int64(5))}.Matches(booking))
	assert.True(t, BookingFilter{BoatIDs: []int64{4, 1}}.Matches(booking))
	assert.False(t, BookingFilter{BoatIDs: []int64{}}.Matches(booking))
	assert.False(t, BookingFilter{Date: ptr.Ptr(types.NewDate(2025, 6, 15))}.Matches(booking))
}

func TestMinuteRangeAndOverlap(t *testing.T) {
	s, e, err := MinuteRange("22:00", "02:00")
	require.NoError(t, err)
	assert.Equal(t, 1320, s)
	assert.Equal(t, 1560, e)

	s, e, err = MinuteRange("00:00", "00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, s)
	assert.Equal(t, types.MinutesPerDay, e)

	// Касание границ не считается пересечением
	assert.False(t, RangesOverlap(540, 780, 780, 900))
	assert.True(t, RangesOverlap(540, 780, 660, 720))

	day := types.NewDate(2025, 6, 14)
	b := &Booking{StartDate: day, StartTime: "11:00", EndTime: "12:00"}
	assert.True(t, b.OverlapsRange(day, 540, 780))
	assert.False(t, b.OverlapsRange(day, 720, 900))

	other := &Booking{StartDate: day, StartTime: "13:00", EndTime: "15:00"}
	assert.Equal(t, []*Booking{b}, OverlappingBookings([]*Booking{b, other, nil}, day, 600, 780))
	assert.Empty(t, OverlappingBookings([]*Booking{b, other}, day, 900, 960))
}

func TestOverlapsRange_NeighbourDays(t *testing.T) {
	day := types.NewDate(2025, 6, 14)

	// 22:00-02:00 накануне занимает первые два часа дня
	prevNight := &Booking{StartDate: day.AddDays(-1), StartTime: "22:00", EndTime: "02:00"}
	assert.True(t, prevNight.OverlapsRange(day, 0, 180))
	assert.False(t, prevNight.OverlapsRange(day, 120, 300))

	// ночной слот дня 22:00-02:00 = [1320, 1560) задевает раннее бронирование следующего дня
	nextEarly := &Booking{StartDate: day.AddDays(1), StartTime: "00:30", EndTime: "03:00"}
	assert.True(t, nextEarly.OverlapsRange(day, 1320, 1560))
	assert.False(t, nextEarly.OverlapsRange(day, 1320, 1440))

	farAway := &Booking{StartDate: day.AddDays(2), StartTime: "00:00", EndTime: "23:00"}
	assert.False(t, farAway.OverlapsRange(day, 0, 2*types.MinutesPerDay))
}

func TestDayOffsetMinutes(t *testing.T) {
	day := types.NewDate(2025, 1, 1)

	offset, ok := DayOffsetMinutes(day, types.NewDate(2024, 12, 31))
	assert.True(t, ok)
	assert.Equal(t, -types.MinutesPerDay, offset)

	offset, ok = DayOffsetMinutes(day, day.AddDays(1))
	assert.True(t, ok)
	assert.Equal(t, types.MinutesPerDay, offset)

	_, ok = DayOffsetMinutes(day, day.AddDays(3))
	assert.False(t, ok)
}

func TestRawCardEntry_Last4(t *testing.T) {
	assert.Equal(t, "4242", RawCardEntry{Number: "4242 4242 4242 4242"}.Last4())
	assert.Equal(t, "12", RawCardEntry{Number: "12"}.Last4())
}

func TestBoat_SelectServices(t *testing.T) {
	boat := &Boat{Services: []Service{
		{Name: "Catering", Price: decimal.NewFromInt(50), PricingType: ServicePricingPerPerson},
		{Name: "Skipper", Price: decimal.NewFromInt(20), PricingType: ServicePricingPerHour},
	}}

	selected, err := boat.SelectServices([]string{"Skipper", "Catering", "Skipper"})
	require.NoError(t, err)
	require.Len(t, selected, 2)
	assert.Equal(t, "Skipper", selected[0].Name)
	assert.Equal(t, "Catering", selected[1].Name)

	none, err := boat.SelectServices(nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = boat.SelectServices([]string{"Catering", "Jet ski"})
	assert.ErrorIs(t, err, ErrUnknownService)
}

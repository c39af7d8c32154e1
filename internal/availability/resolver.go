// Package availability resolves the bookable slots of a boat on a given date.
package availability

import (
	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

type interval struct {
	start int
	end   int
}

// ResolveSlots returns the slots of the boat that are free on the date.
//
// A slot is free when its [start, end) range does not strictly overlap any
// confirmed booking of the boat and, for boats with calendar integration, any
// external busy period. Slots and bookings may run past midnight, so bookings
// starting the day before or the day after, and busy periods of the next day,
// are compared on the same minute axis (see OverlapWindow). A daily special
// pricing entry for the date replaces the blocks with its own window. Invalid
// blocks are skipped. The function is pure; an empty result means no availability.
func ResolveSlots(
	boat *domain.Boat,
	date types.Date,
	confirmedBookings []*domain.Booking,
	busyPeriods []domain.BusyPeriod,
) []domain.Slot {
	if boat == nil {
		return []domain.Slot{}
	}

	taken := takenIntervals(boat, date, confirmedBookings, busyPeriods)

	candidates := candidateSlots(boat, date)
	slots := make([]domain.Slot, 0, len(candidates))
	for _, c := range candidates {
		start, end, err := domain.MinuteRange(c.StartTime, c.EndTime)
		if err != nil {
			continue
		}
		if overlapsAny(start, end, taken) {
			continue
		}
		slots = append(slots, c)
	}

	return slots
}

// candidateSlots блоки лодки или единственное окно дневного спецтарифа
func candidateSlots(boat *domain.Boat, date types.Date) []domain.Slot {
	if entry, ok := boat.SpecialPricingFor(date); ok && entry.IsDaily() {
		window, err := entry.Window()
		if err != nil {
			return nil
		}
		return []domain.Slot{window}
	}

	slots := make([]domain.Slot, 0, len(boat.AvailabilityBlocks))
	for _, block := range boat.AvailabilityBlocks {
		if err := block.Validate(); err != nil {
			continue
		}
		d, _ := block.DurationMinutes()
		slots = append(slots, domain.Slot{
			Name:            block.Name,
			StartTime:       block.StartTime,
			EndTime:         block.EndTime,
			DurationMinutes: d,
		})
	}
	return slots
}

// OverlapWindow returns the range of start dates whose bookings can overlap
// a slot on the date: an overnight booking from the day before reaches into
// the date, and an overnight slot on the date reaches into the next day.
func OverlapWindow(date types.Date) (from, to types.Date) {
	return date.AddDays(-1), date.AddDays(1)
}

// OverlapFilter выбирает подтверждённые бронирования лодки, которые могут пересечься
// со слотом на дату
func OverlapFilter(boatID int64, date types.Date) domain.BookingFilter {
	from, to := OverlapWindow(date)
	status := domain.StatusConfirmed
	return domain.BookingFilter{
		BoatID:   &boatID,
		DateFrom: &from,
		DateTo:   &to,
		Status:   &status,
	}
}

// takenIntervals собирает занятые интервалы в минутах от начала date: подтверждённые
// бронирования этой лодки с соседних дней и, если включена интеграция, занятость
// во внешнем календаре
func takenIntervals(
	boat *domain.Boat,
	date types.Date,
	bookings []*domain.Booking,
	busyPeriods []domain.BusyPeriod,
) []interval {
	taken := make([]interval, 0, len(bookings)+len(busyPeriods))

	for _, b := range bookings {
		if b == nil || b.BoatID != boat.ID || !b.IsConfirmed() {
			continue
		}
		offset, ok := domain.DayOffsetMinutes(date, b.StartDate)
		if !ok {
			continue
		}
		start, end, err := domain.MinuteRange(b.StartTime, b.EndTime)
		if err != nil {
			continue
		}
		taken = append(taken, interval{start: start + offset, end: end + offset})
	}

	if !boat.UsesCalendar() {
		return taken
	}

	for _, p := range busyPeriods {
		offset, ok := domain.DayOffsetMinutes(date, p.Date)
		if !ok {
			continue
		}
		start, end, err := domain.MinuteRange(p.StartTime, p.EndTime)
		if err != nil {
			// Неразборчивый период из календаря считаем занятостью на весь день
			start, end = 0, types.MinutesPerDay
		}
		taken = append(taken, interval{start: start + offset, end: end + offset})
	}

	return taken
}

func overlapsAny(start, end int, taken []interval) bool {
	for _, t := range taken {
		if domain.RangesOverlap(start, end, t.start, t.end) {
			return true
		}
	}
	return false
}

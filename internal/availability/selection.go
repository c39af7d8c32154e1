package availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// CustomSlotName имя слота, выбранного клиентом вне блоков лодки
const CustomSlotName = "Custom"

var (
	// ErrSlotNotFound у лодки нет слота с таким именем на эту дату
	ErrSlotNotFound = errors.New("availability: slot not found")

	// ErrInvalidRange произвольный интервал не разбирается или имеет нулевую длительность
	ErrInvalidRange = errors.New("availability: invalid time range")

	// ErrOutsideWindow произвольный интервал выходит за окно дневного спецтарифа
	ErrOutsideWindow = errors.New("availability: time range is outside the special pricing window")
)

// Pick returns the slot the customer selected on the date.
// A non-empty name must match one of the boat's slots. Otherwise a slot with
// exactly the given range is used, and when none matches the range becomes a
// custom slot (custom = true). On a date with a daily special entry the custom
// range must lie inside the entry's window. Occupancy is not checked here, see IsFree.
func Pick(boat *domain.Boat, date types.Date, name string, start, end types.TimeString) (slot domain.Slot, custom bool, err error) {
	if boat == nil {
		return domain.Slot{}, false, ErrSlotNotFound
	}

	candidates := candidateSlots(boat, date)
	if name != "" {
		for _, c := range candidates {
			if c.Name == name {
				return c, false, nil
			}
		}
		return domain.Slot{}, false, fmt.Errorf("%w: %q", ErrSlotNotFound, name)
	}

	for _, c := range candidates {
		if c.Matches(start, end) {
			return c, false, nil
		}
	}

	slot, err = CustomSlot(start, end)
	if err != nil {
		return domain.Slot{}, false, err
	}
	if entry, ok := boat.SpecialPricingFor(date); ok && entry.IsDaily() {
		if len(candidates) == 0 || !within(slot, candidates[0]) {
			return domain.Slot{}, false, fmt.Errorf("%w: %s-%s", ErrOutsideWindow, slot.StartTime, slot.EndTime)
		}
	}
	return slot, true, nil
}

// within проверяет, что слот целиком внутри окна; часть после полуночи
// ночного окна сравнивается со сдвигом на сутки
func within(slot, window domain.Slot) bool {
	ws, we, err := domain.MinuteRange(window.StartTime, window.EndTime)
	if err != nil {
		return false
	}
	s, e, err := domain.MinuteRange(slot.StartTime, slot.EndTime)
	if err != nil {
		return false
	}
	if s < ws {
		s, e = s+types.MinutesPerDay, e+types.MinutesPerDay
	}
	return s >= ws && e <= we
}

// CustomSlot builds a slot for an arbitrary range; overnight ranges wrap past midnight
func CustomSlot(start, end types.TimeString) (domain.Slot, error) {
	s, err := types.NewTimeStringFromString(string(start))
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: start %q", ErrInvalidRange, start)
	}
	e, err := types.NewTimeStringFromString(string(end))
	if err != nil {
		return domain.Slot{}, fmt.Errorf("%w: end %q", ErrInvalidRange, end)
	}
	d, _ := s.MinutesUntil(e)
	if d == 0 {
		return domain.Slot{}, fmt.Errorf("%w: %s-%s has zero duration", ErrInvalidRange, s, e)
	}
	return domain.Slot{
		Name:            CustomSlotName,
		StartTime:       s,
		EndTime:         e,
		DurationMinutes: d,
	}, nil
}

// IsFree reports whether the slot does not overlap any confirmed booking or,
// for boats with calendar integration, any busy period on the date
func IsFree(
	boat *domain.Boat,
	date types.Date,
	slot domain.Slot,
	confirmedBookings []*domain.Booking,
	busyPeriods []domain.BusyPeriod,
) bool {
	if boat == nil {
		return false
	}
	start, end, err := domain.MinuteRange(slot.StartTime, slot.EndTime)
	if err != nil {
		return false
	}
	return !overlapsAny(start, end, takenIntervals(boat, date, confirmedBookings, busyPeriods))
}

// EndDate returns the date the slot ends on: the next day when it wraps past midnight
func EndDate(date types.Date, slot domain.Slot) types.Date {
	start, end, err := domain.MinuteRange(slot.StartTime, slot.EndTime)
	if err != nil || end <= types.MinutesPerDay || start >= types.MinutesPerDay {
		return date
	}
	return date.AddDays(1)
}

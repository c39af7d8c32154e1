package domain

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Slot represents a bookable time window on a specific date
type Slot struct {
	Name            string
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	Synthetic       bool // окно из дневного спецтарифа, а не из блоков лодки
}

// Hours returns the slot duration in hours
func (s *Slot) Hours() decimal.Decimal {
	return decimal.NewFromInt(int64(s.DurationMinutes)).Div(decimal.NewFromInt(60))
}

// Matches returns true if the slot covers exactly the given time range
func (s *Slot) Matches(start, end types.TimeString) bool {
	return s.StartTime == start && s.EndTime == end
}

// BusyPeriod is a time range taken in an external calendar.
// StartTime == EndTime means the whole day is busy.
type BusyPeriod struct {
	Date      types.Date
	StartTime types.TimeString
	EndTime   types.TimeString
}

// MinuteRange converts a time-of-day range to a half-open [start, end) minute interval.
// End at or before start wraps past midnight, so 22:00-02:00 becomes [1320, 1560).
func MinuteRange(start, end types.TimeString) (int, int, error) {
	s, err := start.Minutes()
	if err != nil {
		return 0, 0, err
	}
	e, err := end.Minutes()
	if err != nil {
		return 0, 0, err
	}
	if e <= s {
		e += types.MinutesPerDay
	}
	return s, e, nil
}

// RangesOverlap reports strict intersection of two half-open intervals; touching endpoints do not overlap
func RangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// DayOffsetMinutes returns the shift from the start of date to the start of other
// when other is the same, previous or next day. Ranges of neighbouring days are
// compared with a slot on date after adding this shift.
func DayOffsetMinutes(date, other types.Date) (int, bool) {
	switch other {
	case date:
		return 0, true
	case date.AddDays(-1):
		return -types.MinutesPerDay, true
	case date.AddDays(1):
		return types.MinutesPerDay, true
	}
	return 0, false
}

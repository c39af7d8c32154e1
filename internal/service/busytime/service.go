package busytime

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/integrations/calendar"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Источники резервного ответа
const (
	SourceCache = "cache"
	SourceEmpty = "empty"
)

// windowDays дата и следующий день: ночной слот заходит за полночь
const windowDays = 2

// Service загружает занятость лодки во внешнем календаре на день.
// При недоступности календаря отвечает из кэша; если нет и кэша,
// возвращает пустой список вместе с ErrCalendarUnavailable.
type Service struct {
	calendar CalendarClient
	cache    Cache
	location *time.Location
	metrics  Metrics
	logger   Logger
}

// NewService создает сервис занятости. calendar и cache могут быть nil.
func NewService(
	calendarClient CalendarClient,
	cache Cache,
	location *time.Location,
	metrics Metrics,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		calendar: calendarClient,
		cache:    cache,
		location: location,
		metrics:  metrics,
		logger:   logger,
	}
}

// BusyPeriods возвращает занятые интервалы лодки на дату и следующий день.
// Для лодок без интеграции с календарём всегда пустой список без ошибки.
func (s *Service) BusyPeriods(ctx context.Context, boat *domain.Boat, date types.Date) ([]domain.BusyPeriod, error) {
	if boat == nil || !boat.UsesCalendar() || s.calendar == nil {
		return []domain.BusyPeriod{}, nil
	}

	calendarID := boat.Calendar.CalendarID
	windowStart := date.In(s.location)
	windowEnd := date.AddDays(windowDays).In(s.location)

	ranges, err := s.calendar.CheckAvailability(ctx, calendarID, windowStart, windowEnd)
	if err != nil {
		s.logger.Warn("BusyPeriods: calendar lookup failed for boat=%d date=%s: %v", boat.ID, date, err)
		return s.fallback(ctx, boat.ID, calendarID, date, err)
	}

	periods := ToBusyPeriods(ranges, date, windowDays, s.location)

	if s.cache != nil {
		if err := s.cache.Set(ctx, calendarID, date, periods); err != nil {
			s.logger.Warn("BusyPeriods: failed to cache busy periods for boat=%d: %v", boat.ID, err)
		}
	}

	return periods, nil
}

func (s *Service) fallback(ctx context.Context, boatID int64, calendarID string, date types.Date, cause error) ([]domain.BusyPeriod, error) {
	if s.cache != nil {
		periods, found, err := s.cache.Get(ctx, calendarID, date)
		if err != nil {
			s.logger.Error("BusyPeriods: cache lookup failed for boat=%d: %v", boatID, err)
		}
		if found {
			s.logger.Info("BusyPeriods: using cached busy periods for boat=%d date=%s", boatID, date)
			s.metrics.IncCalendarFallback(SourceCache)
			return periods, nil
		}
	}

	s.metrics.IncCalendarFallback(SourceEmpty)
	return []domain.BusyPeriod{}, fmt.Errorf("%w: %v", ErrCalendarUnavailable, cause)
}

// ToBusyPeriods раскладывает интервалы календаря по дням начиная с from, обрезает их
// по границам каждого дня и переводит во время суток. Интервал, закрывающий весь день,
// становится периодом с совпадающими началом и концом.
func ToBusyPeriods(ranges []calendar.BusyRange, from types.Date, days int, loc *time.Location) []domain.BusyPeriod {
	periods := make([]domain.BusyPeriod, 0, len(ranges))
	for i := 0; i < days; i++ {
		date := from.AddDays(i)
		dayStart := date.In(loc)
		dayEnd := date.AddDays(1).In(loc)

		for _, r := range ranges {
			if period, ok := clipToDay(r, date, dayStart, dayEnd, loc); ok {
				periods = append(periods, period)
			}
		}
	}
	return periods
}

func clipToDay(r calendar.BusyRange, date types.Date, dayStart, dayEnd time.Time, loc *time.Location) (domain.BusyPeriod, bool) {
	start, end := r.Start.In(loc), r.End.In(loc)
	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(dayEnd) {
		end = dayEnd
	}
	if !start.Before(end) {
		return domain.BusyPeriod{}, false
	}

	startTime := types.NewTimeString(start)
	endTime := types.NewTimeString(end)
	// Интервал короче минуты не должен превратиться в занятость на весь день
	if startTime == endTime && end.Sub(start) < 24*time.Hour {
		if next, err := startTime.AddMinutes(1); err == nil {
			endTime = next
		} else {
			endTime = "00:00"
		}
	}

	return domain.BusyPeriod{
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}, true
}

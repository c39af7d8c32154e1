package busytime

import (
	"context"
	"time"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/integrations/calendar"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	CheckAvailability(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]calendar.BusyRange, error)
}

// Cache интерфейс кэша занятых интервалов
type Cache interface {
	Get(ctx context.Context, calendarID string, date types.Date) ([]domain.BusyPeriod, bool, error)
	Set(ctx context.Context, calendarID string, date types.Date, periods []domain.BusyPeriod) error
}

// Metrics интерфейс для учёта ответов из резервных источников
type Metrics interface {
	IncCalendarFallback(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

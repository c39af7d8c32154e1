// Package scheduler periodically rejects booking requests whose date passed without an owner decision.
package scheduler

import (
	"context"
	"time"
)

// BookingExpirer отклоняет просроченные заявки и возвращает их количество
type BookingExpirer interface {
	RejectExpired(ctx context.Context) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler запускает отклонение просроченных заявок по таймеру
type Scheduler struct {
	bookings BookingExpirer
	interval time.Duration
	logger   Logger
}

// New создает планировщик
func New(bookings BookingExpirer, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		bookings: bookings,
		interval: interval,
		logger:   logger,
	}
}

// Start блокирует до отмены ctx. Первый проход выполняется сразу при старте.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("Scheduler: started, interval=%s", s.interval)
	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler: stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	rejected, err := s.bookings.RejectExpired(ctx)
	if err != nil {
		s.logger.Error("Scheduler: failed to reject expired bookings: %v", err)
		return
	}
	if rejected > 0 {
		s.logger.Info("Scheduler: rejected %d expired booking requests", rejected)
	}
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/charter-booking-service/internal/availability"
	"github.com/m04kA/charter-booking-service/internal/domain"
	boatRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/boat"
	"github.com/m04kA/charter-booking-service/internal/pricing"
)

// UseCase use case для получения свободных слотов лодки на дату
type UseCase struct {
	boatRepo     BoatRepository
	bookingRepo  BookingRepository
	busyTime     BusyTimeProvider
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	currency     string
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	boatRepo BoatRepository,
	bookingRepo BookingRepository,
	busyTime BusyTimeProvider,
	metrics Metrics,
	location *time.Location,
	currency string,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		boatRepo:     boatRepo,
		bookingRepo:  bookingRepo,
		busyTime:     busyTime,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		currency:     currency,
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Недоступность календаря не ломает выдачу: слоты считаются по подтверждённым бронированиям.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: boat=%d, date=%s", req.BoatID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}
	if err := validateDate(req.Date, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем лодку
	boat, err := uc.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			uc.logger.Warn("GetAvailableSlots: boat id=%d not found", req.BoatID)
			return nil, ErrBoatNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get boat id=%d: %v", req.BoatID, err)
		return nil, fmt.Errorf("%w: failed to get boat: %v", ErrInternal, err)
	}
	if !boat.IsActive() {
		uc.logger.Warn("GetAvailableSlots: boat id=%d is %s", boat.ID, boat.Status)
		return nil, ErrBoatNotBookable
	}

	// 3. Подтверждённые бронирования на дату и соседние дни
	bookings, err := uc.bookingRepo.List(ctx, availability.OverlapFilter(boat.ID, req.Date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Занятость во внешнем календаре
	busy, err := uc.busyTime.BusyPeriods(ctx, boat, req.Date)
	degraded := err != nil
	if degraded {
		uc.logger.Warn("GetAvailableSlots: calendar degraded for boat=%d: %v", boat.ID, err)
	}

	// 5. Свободные слоты и цена каждого
	resolved := availability.ResolveSlots(boat, req.Date, bookings, busy)
	uc.metrics.ObserveSlotsResolved(len(resolved))

	slots := make([]Slot, 0, len(resolved))
	for _, s := range resolved {
		quote := pricing.PriceFor(boat, req.Date, s, 1, nil)
		slots = append(slots, Slot{
			Name:            s.Name,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationMinutes: s.DurationMinutes,
			Special:         s.Synthetic,
			Price:           domain.RoundMoney(quote.BaseAmount),
		})
	}

	uc.logger.Info("GetAvailableSlots: boat=%d date=%s, %d free slots", boat.ID, req.Date, len(slots))

	return &Response{
		BoatID:           boat.ID,
		Date:             req.Date,
		Currency:         uc.currency,
		CalendarDegraded: degraded,
		Slots:            slots,
	}, nil
}

package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/charter-booking-service/internal/availability"
	boatRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/boat"
	"github.com/m04kA/charter-booking-service/internal/pricing"
)

// UseCase use case для расчёта стоимости аренды без создания бронирования
type UseCase struct {
	boatRepo BoatRepository
	currency string
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(boatRepo BoatRepository, currency string, logger Logger) *UseCase {
	return &UseCase{
		boatRepo: boatRepo,
		currency: currency,
		logger:   logger,
	}
}

// Execute выполняет расчёт стоимости. Занятость слота не проверяется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: boat=%d, date=%s, slot=%q, time=%s-%s, guests=%d",
		req.BoatID, req.Date, req.SlotName, req.StartTime, req.EndTime, req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем лодку
	boat, err := uc.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			uc.logger.Warn("QuotePrice: boat id=%d not found", req.BoatID)
			return nil, ErrBoatNotFound
		}
		uc.logger.Error("QuotePrice: failed to get boat id=%d: %v", req.BoatID, err)
		return nil, fmt.Errorf("%w: failed to get boat: %v", ErrInternal, err)
	}
	if !boat.IsActive() {
		uc.logger.Warn("QuotePrice: boat id=%d is %s", boat.ID, boat.Status)
		return nil, ErrBoatNotBookable
	}

	// 3. Выбранный слот или произвольный интервал
	slot, custom, err := availability.Pick(boat, req.Date, req.SlotName, req.StartTime, req.EndTime)
	if err != nil {
		uc.logger.Warn("QuotePrice: slot not resolved: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrSlotNotFound, err)
	}

	// 4. Выбранные услуги
	services, err := boat.SelectServices(req.Services)
	if err != nil {
		uc.logger.Warn("QuotePrice: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}

	// 5. Расчёт
	quote := pricing.PriceFor(boat, req.Date, slot, req.Guests, services)

	return &Response{
		BoatID:            boat.ID,
		Date:              req.Date,
		EndDate:           availability.EndDate(req.Date, slot),
		SlotName:          slot.Name,
		StartTime:         slot.StartTime,
		EndTime:           slot.EndTime,
		IsCustomTime:      custom,
		Currency:          uc.currency,
		RateSource:        quote.RateSource,
		PricingType:       quote.PricingType,
		Rate:              quote.Rate,
		Hours:             quote.Hours,
		BaseAmount:        quote.BaseAmount,
		Services:          quote.Services,
		ServicesTotal:     quote.ServicesTotal,
		Total:             quote.Total,
		DepositPercentage: quote.DepositPercentage,
		Deposit:           quote.Deposit,
		RemainingBalance:  quote.RemainingBalance,
	}, nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/charter-booking-service/internal/availability"
	"github.com/m04kA/charter-booking-service/internal/domain"
	boatRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/boat"
	bookingRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/charter-booking-service/internal/pricing"
	"github.com/m04kA/charter-booking-service/internal/validation"
	"github.com/m04kA/charter-booking-service/pkg/txmanager"
)

// UseCase use case для создания заявки на бронирование
type UseCase struct {
	bookingRepo   BookingRepository
	boatRepo      BoatRepository
	busyTime      BusyTimeProvider
	paymentClient PaymentClient // nil, если процессор не настроен
	txManager     TransactionManager
	metrics       Metrics
	timeProvider  TimeProvider
	location      *time.Location
	currency      string
	logger        Logger
}

// NewUseCase создает новый экземпляр use case.
// paymentClient может быть nil: тогда карта принимается как есть и депозит обрабатывается вручную.
func NewUseCase(
	bookingRepo BookingRepository,
	boatRepo BoatRepository,
	busyTime BusyTimeProvider,
	paymentClient PaymentClient,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	currency string,
	logger Logger,
) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		bookingRepo:   bookingRepo,
		boatRepo:      boatRepo,
		busyTime:      busyTime,
		paymentClient: paymentClient,
		txManager:     txManager,
		metrics:       metrics,
		timeProvider:  &RealTimeProvider{},
		location:      location,
		currency:      currency,
		logger:        logger,
	}
}

// Execute выполняет use case создания заявки.
// Заявка сохраняется в статусе pending_approval, проверка пересечений
// с подтверждёнными бронированиями выполняется в сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, boat=%d, date=%s, slot=%q, time=%s-%s, guests=%d",
		req.UserID, req.BoatID, req.Date, req.SlotName, req.StartTime, req.EndTime, req.Guests)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}
	if err := validateDate(req.Date, uc.timeProvider.Now(), uc.location); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем лодку
	boat, err := uc.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			uc.logger.Warn("CreateBooking: boat id=%d not found", req.BoatID)
			return nil, ErrBoatNotFound
		}
		uc.logger.Error("CreateBooking: failed to get boat id=%d: %v", req.BoatID, err)
		return nil, fmt.Errorf("%w: failed to get boat: %v", ErrInternal, err)
	}
	if !boat.IsActive() {
		uc.logger.Warn("CreateBooking: boat id=%d is %s", boat.ID, boat.Status)
		return nil, ErrBoatNotBookable
	}

	// 3. Выбранный слот; отсутствие выбора отмечает валидатор
	var slot *domain.Slot
	custom := false
	if hasSlotSelection(req) && !req.Date.IsZero() {
		picked, isCustom, err := availability.Pick(boat, req.Date, req.SlotName, req.StartTime, req.EndTime)
		if err != nil {
			uc.logger.Warn("CreateBooking: slot not resolved: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrSlotNotFound, err)
		}
		slot, custom = &picked, isCustom
	}

	// 4. Выбранные услуги
	services, err := boat.SelectServices(req.Services)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	}

	// 5. Способ оплаты определяется один раз: есть процессор или нет
	method := uc.paymentMethod(req)

	// 6. Проверка заявки по всем правилам сразу
	customer := domain.Customer{
		ID:    req.UserID,
		Name:  strings.TrimSpace(req.CustomerName),
		Email: strings.TrimSpace(req.CustomerEmail),
		Phone: req.CustomerPhone,
	}
	result := validation.Validate(boat, req.Date, slot, req.Guests, customer, method)
	if !result.Valid {
		uc.logger.Warn("CreateBooking: submission rejected: %s", strings.Join(result.Errors, "; "))
		return nil, &ValidationError{Errors: result.Errors}
	}

	// 7. Токенизация карты, если процессор настроен
	method, err = uc.tokenize(ctx, method)
	if err != nil {
		return nil, err
	}

	// 8. Расчёт стоимости
	quote := pricing.PriceFor(boat, req.Date, *slot, req.Guests, services)

	// 9. Занятость в календаре. Недоступный календарь не блокирует заявку:
	// владелец проверяет её перед подтверждением.
	busy, err := uc.busyTime.BusyPeriods(ctx, boat, req.Date)
	if err != nil {
		uc.logger.Warn("CreateBooking: calendar degraded for boat=%d: %v", boat.ID, err)
	}

	booking := &domain.Booking{
		BoatID:                boat.ID,
		CustomerID:            req.UserID,
		StartDate:             req.Date,
		EndDate:               availability.EndDate(req.Date, *slot),
		StartTime:             slot.StartTime,
		EndTime:               slot.EndTime,
		SlotName:              slot.Name,
		IsCustomTime:          custom,
		Guests:                req.Guests,
		TotalHours:            quote.Hours,
		Rate:                  quote.Rate,
		RateSource:            quote.RateSource,
		PricingType:           quote.PricingType,
		BasePrice:             quote.BaseAmount,
		AdditionalServices:    quote.Services,
		TotalAmount:           quote.Total,
		CommissionAmount:      quote.Commission,
		DownPaymentPercentage: quote.DepositPercentage,
		DownPayment:           quote.Deposit,
		RemainingBalance:      quote.RemainingBalance,
		Currency:              uc.currency,
		Status:                domain.StatusPendingApproval,
		PaymentStatus:         domain.PaymentPending,
		// Денормализация данных для истории
		BoatName:      boat.Name,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		CustomerPhone: customer.Phone,
		Notes:         req.Notes,
	}

	// Переменная для хранения результата
	var created *domain.Booking

	// 10. Проверка пересечений и сохранение в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Подтверждённые бронирования лодки на дату и соседние дни с блокировкой (FOR UPDATE)
		confirmed, err := uc.bookingRepo.List(txCtx, availability.OverlapFilter(boat.ID, req.Date))
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 10.2. Слот должен быть свободен
		if !availability.IsFree(boat, req.Date, *slot, confirmed, busy) {
			uc.logger.Warn("CreateBooking: slot %s-%s on %s is taken", slot.StartTime, slot.EndTime, req.Date)
			return ErrSlotNotAvailable
		}

		// 10.3. Сохраняем заявку
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) || txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: lost concurrent booking for boat=%d: %v", boat.ID, err)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.metrics.IncBookingsCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d, total=%s %s",
		created.ID, created.TotalAmount, created.Currency)

	// 11. Платёж за депозит после фиксации заявки
	resp := &Response{Booking: created}
	uc.requestDeposit(ctx, resp, method)

	return resp, nil
}

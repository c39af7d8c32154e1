package bookings

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
	"github.com/m04kA/charter-booking-service/internal/integrations/calendar"
	"github.com/m04kA/charter-booking-service/internal/service/bookings/models"
	"github.com/m04kA/charter-booking-service/pkg/txmanager"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

// Причины недоступности в ответе проверки
const (
	ReasonBookingConflict     = "the requested time overlaps a confirmed booking"
	ReasonCalendarBusy        = "the boat is busy in its external calendar"
	ReasonCalendarUnavailable = "the external calendar could not be checked"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	boatRepo     BoatRepository
	busyTime     BusyTimeProvider
	calendar     CalendarClient
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований.
// calendarClient может быть nil, тогда события в календаре не создаются.
func NewService(
	bookingRepo BookingRepository,
	boatRepo BoatRepository,
	busyTime BusyTimeProvider,
	calendarClient CalendarClient,
	txManager TransactionManager,
	metrics Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		boatRepo:     boatRepo,
		busyTime:     busyTime,
		calendar:     calendarClient,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		location:     location,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Доступно клиенту, сделавшему бронирование, и владельцу лодки
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if booking.CustomerID != userID {
		if _, err := s.getOwnedBoat(ctx, "GetByID", booking.BoatID, userID); err != nil {
			return nil, err
		}
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя.
// С AsOwner возвращает бронирования всех лодок пользователя.
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: user=%d requested bookings of user=%d (owner=%t)",
		req.UserID, req.RequestedUserID, req.AsOwner)

	if req.UserID != req.RequestedUserID {
		s.logger.Warn("GetUserBookings: user=%d cannot read bookings of user=%d", req.UserID, req.RequestedUserID)
		return nil, ErrAccessDenied
	}

	status, err := models.ToDomainStatusPtr(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	filter := domain.BookingFilter{Status: status}
	if req.AsOwner {
		boats, err := s.boatRepo.List(ctx, domain.BoatFilter{OwnerID: &req.UserID})
		if err != nil {
			s.logger.Error("GetUserBookings: failed to list boats of owner=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
		}
		filter.BoatIDs = make([]int64, 0, len(boats))
		for _, b := range boats {
			filter.BoatIDs = append(filter.BoatIDs, b.ID)
		}
	} else {
		filter.CustomerID = &req.UserID
	}

	return s.list(ctx, "GetUserBookings", filter)
}

// GetBoatBookings получает бронирования лодки
// Доступно только владельцу лодки
func (s *Service) GetBoatBookings(ctx context.Context, req *models.GetBoatBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetBoatBookings: boat=%d by user=%d", req.BoatID, req.UserID)

	if _, err := s.getOwnedBoat(ctx, "GetBoatBookings", req.BoatID, req.UserID); err != nil {
		return nil, err
	}

	status, err := models.ToDomainStatusPtr(req.Status)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.list(ctx, "GetBoatBookings", domain.BookingFilter{
		BoatID: &req.BoatID,
		Date:   req.Date,
		Status: status,
	})
}

// UpdateStatus принимает решение владельца: подтвердить или отклонить заявку
// Доступно только владельцу лодки
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s by user=%d", bookingID, req.Status, req.UserID)

	status, err := models.ToDomainBookingStatus(req.Status)
	if err != nil || status == domain.StatusPendingApproval {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: status must be confirmed or rejected", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxRejectionReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", ErrInvalidInput, domain.MaxRejectionReasonLength)
	}

	booking, err := s.getBooking(ctx, "UpdateStatus", bookingID)
	if err != nil {
		return nil, err
	}
	boat, err := s.getOwnedBoat(ctx, "UpdateStatus", booking.BoatID, req.UserID)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		s.logger.Warn("UpdateStatus: booking id=%d is already %s", bookingID, booking.Status)
		return nil, ErrInvalidTransition
	}

	if status == domain.StatusConfirmed {
		return s.confirm(ctx, boat, bookingID)
	}
	return s.reject(ctx, bookingID, req.Reason)
}

// confirm подтверждает заявку. Пересечение с подтверждёнными бронированиями
// перепроверяется под блокировкой в той же транзакции, что и смена статуса.
func (s *Service) confirm(ctx context.Context, boat *domain.Boat, bookingID int64) (*models.BookingResponse, error) {
	var result *domain.Booking

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if !booking.IsPending() {
			return ErrInvalidTransition
		}

		start, end, err := domain.MinuteRange(booking.StartTime, booking.EndTime)
		if err != nil {
			return fmt.Errorf("%w: stored booking has invalid time range: %v", ErrInternal, err)
		}

		filter := availability.OverlapFilter(booking.BoatID, booking.StartDate)
		filter.ExcludeID = &booking.ID
		confirmed, err := s.bookingRepo.List(txCtx, filter)
		if err != nil {
			return err
		}
		if overlapping := domain.OverlappingBookings(confirmed, booking.StartDate, start, end); len(overlapping) > 0 {
			s.logger.Warn("UpdateStatus: booking id=%d overlaps confirmed booking id=%d", bookingID, overlapping[0].ID)
			return ErrSlotTaken
		}

		updated, err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusPendingApproval, domain.StatusConfirmed, nil)
		if err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, s.mapDecisionError("UpdateStatus", bookingID, err)
	}

	s.metrics.IncBookingDecision(string(domain.StatusConfirmed))
	s.logger.Info("UpdateStatus: booking id=%d confirmed", bookingID)

	s.publishToCalendar(ctx, boat, result)
	return models.FromDomainBooking(result), nil
}

func (s *Service) reject(ctx context.Context, bookingID int64, reason *string) (*models.BookingResponse, error) {
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		reason = &trimmed
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, bookingID, domain.StatusPendingApproval, domain.StatusRejected, reason)
	if err != nil {
		return nil, s.mapDecisionError("UpdateStatus", bookingID, err)
	}

	s.metrics.IncBookingDecision(string(domain.StatusRejected))
	s.logger.Info("UpdateStatus: booking id=%d rejected", bookingID)
	return models.FromDomainBooking(updated), nil
}

// publishToCalendar записывает подтверждённое бронирование в календарь лодки.
// Ошибка календаря не отменяет подтверждение.
func (s *Service) publishToCalendar(ctx context.Context, boat *domain.Boat, booking *domain.Booking) {
	if s.calendar == nil || !boat.UsesCalendar() {
		return
	}

	start, end, err := domain.MinuteRange(booking.StartTime, booking.EndTime)
	if err != nil {
		return
	}
	startAt := booking.StartDate.In(s.location).Add(time.Duration(start) * time.Minute)
	endAt := startAt.Add(time.Duration(end-start) * time.Minute)

	event, err := s.calendar.CreateEvent(ctx, boat.Calendar.CalendarID, calendar.Event{
		Summary:     fmt.Sprintf("Charter: %s (%s)", booking.CustomerName, booking.SlotName),
		Description: fmt.Sprintf("Booking #%d, %d guests", booking.ID, booking.Guests),
		Start:       calendar.EventTime{DateTime: startAt, TimeZone: s.location.String()},
		End:         calendar.EventTime{DateTime: endAt, TimeZone: s.location.String()},
	})
	if err != nil {
		s.logger.Error("UpdateStatus: failed to create calendar event for booking id=%d: %v", booking.ID, err)
		return
	}
	s.logger.Info("UpdateStatus: calendar event id=%s created for booking id=%d", event.ID, booking.ID)
}

// CheckAvailability проверяет, свободна ли лодка в указанный диапазон времени.
// Недоступность календаря без закэшированного ответа означает "недоступно".
func (s *Service) CheckAvailability(ctx context.Context, req *models.CheckAvailabilityRequest) (*models.AvailabilityResponse, error) {
	s.logger.Info("CheckAvailability: boat=%d date=%s %s-%s", req.BoatID, req.StartDate, req.StartTime, req.EndTime)

	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	if req.EndDate != nil && (req.EndDate.Before(req.StartDate) || req.EndDate.After(req.StartDate.AddDays(1))) {
		return nil, fmt.Errorf("%w: endDate must be the start date or the day after", ErrInvalidInput)
	}
	start, end, err := domain.MinuteRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	boat, err := s.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			return nil, ErrBoatNotFound
		}
		s.logger.Error("CheckAvailability: failed to get boat id=%d: %v", req.BoatID, err)
		return nil, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrInternal, err)
	}

	resp := &models.AvailabilityResponse{Available: true, Conflicts: []models.Conflict{}}

	filter := availability.OverlapFilter(boat.ID, req.StartDate)
	filter.ExcludeID = req.ExcludeID
	confirmed, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("CheckAvailability: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: CheckAvailability - repository error: %v", ErrInternal, err)
	}
	for _, b := range domain.OverlappingBookings(confirmed, req.StartDate, start, end) {
		id := b.ID
		resp.Conflicts = append(resp.Conflicts, models.Conflict{
			Source:    models.ConflictSourceBooking,
			BookingID: &id,
			Date:      b.StartDate,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	if len(resp.Conflicts) > 0 {
		resp.Available = false
		resp.Reason = ReasonBookingConflict
	}

	if !boat.UsesCalendar() {
		return resp, nil
	}

	busy, err := s.busyTime.BusyPeriods(ctx, boat, req.StartDate)
	if err != nil {
		s.logger.Warn("CheckAvailability: calendar unavailable for boat=%d: %v", boat.ID, err)
		resp.Available = false
		if resp.Reason == "" {
			resp.Reason = ReasonCalendarUnavailable
		}
		return resp, nil
	}

	calendarConflict := false
	for _, p := range busy {
		offset, ok := domain.DayOffsetMinutes(req.StartDate, p.Date)
		if !ok {
			continue
		}
		ps, pe, err := domain.MinuteRange(p.StartTime, p.EndTime)
		if err != nil {
			ps, pe = 0, types.MinutesPerDay
		}
		if domain.RangesOverlap(start, end, ps+offset, pe+offset) {
			calendarConflict = true
			resp.Conflicts = append(resp.Conflicts, models.Conflict{
				Source:    models.ConflictSourceCalendar,
				Date:      p.Date,
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
			})
		}
	}
	if calendarConflict {
		resp.Available = false
		if resp.Reason == "" {
			resp.Reason = ReasonCalendarBusy
		}
	}

	return resp, nil
}

// ApplyPaymentResult применяет результат оплаты депозита.
// Статус оплаты меняется только из pending; повтор того же уведомления ничего не меняет.
func (s *Service) ApplyPaymentResult(ctx context.Context, intentID string, status domain.PaymentStatus) (*models.BookingResponse, error) {
	s.logger.Info("ApplyPaymentResult: intent=%s status=%s", intentID, status)

	if status != domain.PaymentDepositPaid && status != domain.PaymentFailed {
		return nil, fmt.Errorf("%w: unsupported payment status %q", ErrInvalidInput, status)
	}

	booking, err := s.bookingRepo.GetByPaymentIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("ApplyPaymentResult: no booking for intent=%s", intentID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("ApplyPaymentResult: repository error for intent=%s: %v", intentID, err)
		return nil, fmt.Errorf("%w: ApplyPaymentResult - repository error: %v", ErrInternal, err)
	}

	if booking.PaymentStatus == status {
		s.logger.Info("ApplyPaymentResult: booking id=%d already has payment status %s", booking.ID, status)
		return models.FromDomainBooking(booking), nil
	}

	updated, err := s.bookingRepo.UpdatePaymentStatus(ctx, booking.ID, domain.PaymentPending, status)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("ApplyPaymentResult: booking id=%d payment status is no longer pending", booking.ID)
			return nil, ErrInvalidTransition
		}
		s.logger.Error("ApplyPaymentResult: repository error for booking id=%d: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: ApplyPaymentResult - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ApplyPaymentResult: booking id=%d payment status set to %s", updated.ID, status)
	return models.FromDomainBooking(updated), nil
}

// RejectExpired отклоняет заявки, дата начала которых уже прошла без решения владельца
func (s *Service) RejectExpired(ctx context.Context) (int64, error) {
	today := types.DateOf(s.timeProvider.Now().In(s.location))

	n, err := s.bookingRepo.RejectExpired(ctx, today, domain.ExpiredRejectionReason)
	if err != nil {
		s.logger.Error("RejectExpired: repository error: %v", err)
		return 0, fmt.Errorf("%w: RejectExpired - repository error: %v", ErrInternal, err)
	}

	if n > 0 {
		s.logger.Info("RejectExpired: rejected %d stale requests before %s", n, today)
		for i := int64(0); i < n; i++ {
			s.metrics.IncBookingDecision(domain.ExpiredRejectionReason)
		}
	}
	return n, nil
}

// Вспомогательные методы

func (s *Service) list(ctx context.Context, op string, filter domain.BookingFilter) (*models.BookingListResponse, error) {
	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error: %v", op, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: found %d bookings", op, len(bookings))
	return models.FromDomainBookings(bookings), nil
}

func (s *Service) getBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

// getOwnedBoat проверяет, что пользователь является владельцем лодки
func (s *Service) getOwnedBoat(ctx context.Context, op string, boatID, userID int64) (*domain.Boat, error) {
	boat, err := s.boatRepo.GetByID(ctx, boatID)
	if err != nil {
		if errors.Is(err, boatRepo.ErrBoatNotFound) {
			s.logger.Warn("%s: boat id=%d not found", op, boatID)
			return nil, ErrBoatNotFound
		}
		s.logger.Error("%s: failed to get boat id=%d: %v", op, boatID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	if !boat.IsOwnedBy(userID) {
		s.logger.Warn("%s: user=%d is not the owner of boat id=%d", op, userID, boatID)
		return nil, ErrAccessDenied
	}
	return boat, nil
}

// mapDecisionError приводит ошибки смены статуса к ошибкам сервиса
func (s *Service) mapDecisionError(op string, bookingID int64, err error) error {
	switch {
	case errors.Is(err, ErrSlotTaken), errors.Is(err, ErrInvalidTransition):
		return err
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return ErrBookingNotFound
	case errors.Is(err, bookingRepo.ErrStatusConflict):
		s.logger.Warn("%s: booking id=%d status changed concurrently", op, bookingID)
		return ErrInvalidTransition
	case errors.Is(err, bookingRepo.ErrConflict), txmanager.IsSerializationFailure(err):
		s.logger.Warn("%s: serialization conflict for booking id=%d: %v", op, bookingID, err)
		return ErrConcurrentUpdate
	default:
		s.logger.Error("%s: failed to update booking id=%d: %v", op, bookingID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

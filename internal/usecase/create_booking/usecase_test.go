package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/infra/storage/memory"
	"github.com/m04kA/charter-booking-service/internal/integrations/payment"
	"github.com/m04kA/charter-booking-service/internal/validation"
	"github.com/m04kA/charter-booking-service/pkg/logger"
	"github.com/m04kA/charter-booking-service/pkg/metrics"
	"github.com/m04kA/charter-booking-service/pkg/ptr"
	"github.com/m04kA/charter-booking-service/pkg/txmanager"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

type mockBusyTime struct {
	mock.Mock
}

func (m *mockBusyTime) BusyPeriods(ctx context.Context, boat *domain.Boat, date types.Date) ([]domain.BusyPeriod, error) {
	args := m.Called(ctx, boat.ID, date)
	periods, _ := args.Get(0).([]domain.BusyPeriod)
	return periods, args.Error(1)
}

type mockPaymentClient struct {
	mock.Mock
}

func (m *mockPaymentClient) TokenizeCard(ctx context.Context, number, expiry, cvv string) (string, error) {
	args := m.Called(ctx, number, expiry, cvv)
	return args.String(0), args.Error(1)
}

func (m *mockPaymentClient) CreatePaymentIntent(ctx context.Context, req payment.IntentRequest) (*payment.Intent, error) {
	args := m.Called(ctx, req)
	intent, _ := args.Get(0).(*payment.Intent)
	return intent, args.Error(1)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// 2025-06-14 суббота
var saturday = types.NewDate(2025, time.June, 14)

type fixture struct {
	uc       *UseCase
	boats    *memory.BoatRepository
	bookings *memory.BookingRepository
	busy     *mockBusyTime
	payments *mockPaymentClient
	metrics  *metrics.Metrics
	boat     *domain.Boat
}

// newFixture создает use case; withProcessor = false эмулирует отсутствие платёжного процессора
func newFixture(t *testing.T, withProcessor bool) *fixture {
	t.Helper()
	f := &fixture{
		boats:    memory.NewBoatRepository(),
		bookings: memory.NewBookingRepository(),
		busy:     &mockBusyTime{},
		payments: &mockPaymentClient{},
		metrics:  metrics.NewWithRegistry("test", prometheus.NewRegistry()),
	}

	weekend := decimal.NewFromInt(240)
	boat, err := f.boats.Create(context.Background(), &domain.Boat{
		OwnerID:               1,
		Name:                  "Sea Breeze",
		Status:                domain.BoatStatusActive,
		MaxGuests:             8,
		PricePerHour:          decimal.NewFromInt(200),
		WeekendPrice:          &weekend,
		DownPaymentPercentage: 25,
		AvailabilityBlocks: []domain.AvailabilityBlock{
			{Name: "Morning", StartTime: "09:00", EndTime: "13:00"},
			{Name: "Night", StartTime: "22:00", EndTime: "02:00"},
		},
		Services: []domain.Service{
			{Name: "Catering", Price: decimal.NewFromInt(50), PricingType: domain.ServicePricingPerPerson},
		},
	})
	require.NoError(t, err)
	f.boat = boat

	var client PaymentClient
	if withProcessor {
		client = f.payments
	}
	f.uc = NewUseCase(f.bookings, f.boats, f.busy, client, txmanager.NewMutexManager(),
		f.metrics, time.UTC, "USD", logger.Discard())
	f.uc.timeProvider = fixedTime{now: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}

	f.busy.On("BusyPeriods", mock.Anything, boat.ID, mock.Anything).Return([]domain.BusyPeriod{}, nil).Maybe()
	return f
}

func validRequest(boatID int64) *Request {
	return &Request{
		UserID:          42,
		BoatID:          boatID,
		Date:            saturday,
		SlotName:        "Morning",
		Guests:          4,
		Services:        []string{"Catering"},
		CustomerName:    "Jane Doe",
		CustomerEmail:   "jane@example.com",
		CustomerPhone:   ptr.Ptr("+30 210 000 0000"),
		PaymentMethodID: "pm_123",
	}
}

func TestExecute_CreatesPendingBookingWithPriceSnapshot(t *testing.T) {
	f := newFixture(t, true)
	f.payments.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(req payment.IntentRequest) bool {
		return req.PaymentMethodID == "pm_123" && req.BookingID == 1 && req.Amount.Equal(decimal.NewFromInt(290))
	})).Return(&payment.Intent{ID: "pi_1", Status: payment.IntentStatusProcessing}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest(f.boat.ID))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.StatusPendingApproval, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Equal(t, domain.RateSourceWeekend, b.RateSource)
	// 240 * 4 + 50 * 4 = 1160, депозит 25%
	assert.Equal(t, "1160", b.TotalAmount.String())
	assert.Equal(t, "290", b.DownPayment.String())
	assert.Equal(t, "870", b.RemainingBalance.String())
	assert.Equal(t, "116", b.CommissionAmount.String())
	assert.Equal(t, "Sea Breeze", b.BoatName)
	assert.Equal(t, "USD", b.Currency)
	assert.False(t, b.IsCustomTime)
	require.NotNil(t, b.PaymentIntentID)
	assert.Equal(t, "pi_1", *b.PaymentIntentID)
	assert.Nil(t, resp.ClientSecret)

	stored, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", *stored.PaymentIntentID)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.BookingsCreated))
	f.payments.AssertExpectations(t)
}

func TestExecute_OvernightCustomRange(t *testing.T) {
	f := newFixture(t, false)
	req := validRequest(f.boat.ID)
	req.SlotName = ""
	req.StartTime = "23:00"
	req.EndTime = "01:30"
	req.Services = nil
	req.PaymentMethodID = ""
	req.CardNumber = "4242 4242 4242 4242"
	req.CardExpiry = "12/30"
	req.CardCVV = "123"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	b := resp.Booking
	assert.True(t, b.IsCustomTime)
	assert.Equal(t, saturday.AddDays(1), b.EndDate)
	assert.Equal(t, "2.5", b.TotalHours.String())
	assert.Equal(t, "600", b.TotalAmount.String())
	assert.Nil(t, b.PaymentIntentID)
	f.payments.AssertNotCalled(t, "TokenizeCard", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_TokenizesCardWhenProcessorConfigured(t *testing.T) {
	f := newFixture(t, true)
	req := validRequest(f.boat.ID)
	req.PaymentMethodID = ""
	req.CardNumber = "4242424242424242"
	req.CardExpiry = "12/30"
	req.CardCVV = "123"

	f.payments.On("TokenizeCard", mock.Anything, "4242424242424242", "12/30", "123").Return("pm_card", nil)
	f.payments.On("CreatePaymentIntent", mock.Anything, mock.MatchedBy(func(r payment.IntentRequest) bool {
		return r.PaymentMethodID == "pm_card"
	})).Return(&payment.Intent{ID: "pi_2", Status: payment.IntentStatusRequiresAction, ClientSecret: "secret"}, nil)

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.ClientSecret)
	assert.Equal(t, "secret", *resp.ClientSecret)
	f.payments.AssertExpectations(t)
}

func TestExecute_CardDeclined(t *testing.T) {
	f := newFixture(t, true)
	req := validRequest(f.boat.ID)
	req.PaymentMethodID = ""
	req.CardNumber = "4000000000000002"
	req.CardExpiry = "12/30"
	req.CardCVV = "123"
	f.payments.On("TokenizeCard", mock.Anything, req.CardNumber, "12/30", "123").Return("", payment.ErrCardDeclined)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCardDeclined)

	all, err := f.bookings.List(context.Background(), domain.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecute_PaymentFailureKeepsBooking(t *testing.T) {
	f := newFixture(t, true)
	f.payments.On("CreatePaymentIntent", mock.Anything, mock.Anything).Return(nil, errors.New("processor down"))

	resp, err := f.uc.Execute(context.Background(), validRequest(f.boat.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, resp.Booking.PaymentStatus)
	assert.Equal(t, domain.StatusPendingApproval, resp.Booking.Status)

	stored, err := f.bookings.GetByID(context.Background(), resp.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFailed, stored.PaymentStatus)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.PaymentIntents.WithLabelValues("failed")))
}

func TestExecute_ImmediatePaymentSuccess(t *testing.T) {
	f := newFixture(t, true)
	f.payments.On("CreatePaymentIntent", mock.Anything, mock.Anything).
		Return(&payment.Intent{ID: "pi_3", Status: payment.IntentStatusSucceeded}, nil)

	resp, err := f.uc.Execute(context.Background(), validRequest(f.boat.ID))
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentDepositPaid, resp.Booking.PaymentStatus)
}

func TestExecute_ValidationCollectsAllErrors(t *testing.T) {
	f := newFixture(t, false)
	req := validRequest(f.boat.ID)
	req.Guests = 9
	req.CustomerName = " "
	req.CustomerEmail = ""
	req.PaymentMethodID = "pm_ignored_without_processor"

	_, err := f.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrValidation)

	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.ElementsMatch(t, []string{
		validation.GuestCapacityMessage(8),
		validation.MsgCustomerName,
		validation.MsgCustomerEmail,
		validation.MsgPaymentRequired,
	}, vErr.Errors)
}

func TestExecute_MissingSlotIsValidationError(t *testing.T) {
	f := newFixture(t, true)
	req := validRequest(f.boat.ID)
	req.SlotName = ""

	_, err := f.uc.Execute(context.Background(), req)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{validation.MsgSlotRequired}, vErr.Errors)
}

func TestExecute_SlotTakenByConfirmedBooking(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.bookings.Create(context.Background(), &domain.Booking{
		BoatID:    f.boat.ID,
		StartDate: saturday,
		EndDate:   saturday,
		StartTime: "12:00",
		EndTime:   "14:00",
		Status:    domain.StatusConfirmed,
	})
	require.NoError(t, err)

	req := validRequest(f.boat.ID)
	req.PaymentMethodID = ""
	req.CardNumber, req.CardExpiry, req.CardCVV = "4242424242424242", "12/30", "123"

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Пересечение только касанием допустимо
	req.SlotName = ""
	req.StartTime, req.EndTime = "14:00", "16:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_OverlapAcrossMidnight(t *testing.T) {
	f := newFixture(t, false)
	confirmed := func(date types.Date, start, end types.TimeString) {
		_, err := f.bookings.Create(context.Background(), &domain.Booking{
			BoatID:    f.boat.ID,
			StartDate: date,
			EndDate:   date.AddDays(1),
			StartTime: start,
			EndTime:   end,
			Status:    domain.StatusConfirmed,
		})
		require.NoError(t, err)
	}
	// пятничная ночь до 02:00 субботы и раннее утро воскресенья
	confirmed(saturday.AddDays(-1), "22:00", "02:00")
	confirmed(saturday.AddDays(1), "01:00", "03:00")

	req := validRequest(f.boat.ID)
	req.PaymentMethodID = ""
	req.CardNumber, req.CardExpiry, req.CardCVV = "4242424242424242", "12/30", "123"

	req.SlotName = "Night"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	req.SlotName = ""
	req.StartTime, req.EndTime = "01:00", "03:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	req.StartTime, req.EndTime = "02:00", "04:00"
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CalendarBusyBlocksSlot(t *testing.T) {
	f := newFixture(t, false)
	f.boat.Calendar = domain.CalendarIntegration{Enabled: true, CalendarID: "cal-1"}
	_, err := f.boats.Update(context.Background(), f.boat)
	require.NoError(t, err)

	f.busy.ExpectedCalls = nil
	f.busy.On("BusyPeriods", mock.Anything, f.boat.ID, saturday).
		Return([]domain.BusyPeriod{{Date: saturday, StartTime: "10:00", EndTime: "11:00"}}, nil)

	req := validRequest(f.boat.ID)
	req.PaymentMethodID = ""
	req.CardNumber, req.CardExpiry, req.CardCVV = "4242424242424242", "12/30", "123"

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_PendingRequestsDoNotBlockEachOther(t *testing.T) {
	f := newFixture(t, false)

	var wg sync.WaitGroup
	errs := make([]error, 5)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := validRequest(f.boat.ID)
			req.UserID = int64(100 + i)
			req.PaymentMethodID = ""
			req.CardNumber, req.CardExpiry, req.CardCVV = "4242424242424242", "12/30", "123"
			_, errs[i] = f.uc.Execute(context.Background(), req)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	pending := domain.StatusPendingApproval
	all, err := f.bookings.List(context.Background(), domain.BookingFilter{Status: &pending})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestExecute_Errors(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	req := validRequest(f.boat.ID)
	req.UserID = 0
	_, err := f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest(f.boat.ID)
	req.Date = types.NewDate(2025, time.May, 30)
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = f.uc.Execute(ctx, validRequest(999))
	assert.ErrorIs(t, err, ErrBoatNotFound)

	req = validRequest(f.boat.ID)
	req.SlotName = "Sunset"
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	req = validRequest(f.boat.ID)
	req.Services = []string{"Jet ski"}
	_, err = f.uc.Execute(ctx, req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	f.boat.Status = domain.BoatStatusInactive
	_, err = f.boats.Update(ctx, f.boat)
	require.NoError(t, err)
	_, err = f.uc.Execute(ctx, validRequest(f.boat.ID))
	assert.ErrorIs(t, err, ErrBoatNotBookable)
}

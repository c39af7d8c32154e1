package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/charter-booking-service/internal/domain"
	boatRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/boat"
	bookingRepo "github.com/m04kA/charter-booking-service/internal/infra/storage/booking"
	"github.com/m04kA/charter-booking-service/pkg/ptr"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

func seedBoats(t *testing.T, repo *BoatRepository) {
	t.Helper()
	ctx := context.Background()
	for _, b := range []domain.Boat{
		{OwnerID: 1, Name: "Sea Breeze", Status: domain.BoatStatusActive, MaxGuests: 8, PricePerHour: decimal.NewFromInt(150)},
		{OwnerID: 1, Name: "Blue Lagoon", Status: domain.BoatStatusDraft, MaxGuests: 4, PricePerHour: decimal.NewFromInt(90)},
		{OwnerID: 2, Name: "Albatross", Status: domain.BoatStatusActive, MaxGuests: 12, PricePerHour: decimal.NewFromInt(300)},
	} {
		boat := b
		_, err := repo.Create(ctx, &boat)
		require.NoError(t, err)
	}
}

func TestBoatRepository_EmptyFilterReturnsAllAndFilteringIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewBoatRepository()
	seedBoats(t, repo)

	all, err := repo.List(ctx, domain.BoatFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filter := domain.BoatFilter{OwnerID: ptr.Ptr(int64(1)), Status: ptr.Ptr(domain.BoatStatusActive)}
	once, err := repo.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, once, 1)
	assert.Equal(t, "Sea Breeze", once[0].Name)

	twice, err := repo.List(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	for _, b := range once {
		assert.True(t, filter.Matches(b))
	}
}

func TestBoatRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewBoatRepository()

	created, err := repo.Create(ctx, &domain.Boat{
		OwnerID:            1,
		Name:               "Sea Breeze",
		AvailabilityBlocks: []domain.AvailabilityBlock{{Name: "Morning", StartTime: "09:00", EndTime: "13:00"}},
	})
	require.NoError(t, err)

	created.AvailabilityBlocks[0].Name = "Changed"
	created.Name = "Changed"

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sea Breeze", stored.Name)
	assert.Equal(t, "Morning", stored.AvailabilityBlocks[0].Name)
}

func TestBoatRepository_UpdateAndNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewBoatRepository()
	seedBoats(t, repo)

	boat, err := repo.GetByID(ctx, 2)
	require.NoError(t, err)
	boat.Status = domain.BoatStatusActive
	boat.OwnerID = 99

	updated, err := repo.Update(ctx, boat)
	require.NoError(t, err)
	assert.Equal(t, domain.BoatStatusActive, updated.Status)
	assert.Equal(t, int64(1), updated.OwnerID)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, boatRepo.ErrBoatNotFound)
	_, err = repo.Update(ctx, &domain.Boat{ID: 42})
	assert.ErrorIs(t, err, boatRepo.ErrBoatNotFound)
}

func newBooking(boatID, customerID int64, date types.Date, start, end types.TimeString) *domain.Booking {
	return &domain.Booking{
		BoatID:        boatID,
		CustomerID:    customerID,
		StartDate:     date,
		EndDate:       date,
		StartTime:     start,
		EndTime:       end,
		Guests:        2,
		Status:        domain.StatusPendingApproval,
		PaymentStatus: domain.PaymentPending,
	}
}

func TestBookingRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()
	day := types.NewDate(2025, 6, 10)

	for _, b := range []*domain.Booking{
		newBooking(1, 10, day, "13:00", "17:00"),
		newBooking(1, 11, day, "09:00", "13:00"),
		newBooking(2, 10, day, "09:00", "13:00"),
		newBooking(1, 10, day.AddDays(1), "09:00", "13:00"),
	} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, domain.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, day.AddDays(1), all[0].StartDate)

	onDay, err := repo.List(ctx, domain.BookingFilter{BoatID: ptr.Ptr(int64(1)), Date: &day})
	require.NoError(t, err)
	require.Len(t, onDay, 2)
	assert.Equal(t, types.TimeString("09:00"), onDay[0].StartTime)

	excluding, err := repo.List(ctx, domain.BookingFilter{BoatID: ptr.Ptr(int64(1)), Date: &day, ExcludeID: ptr.Ptr(onDay[0].ID)})
	require.NoError(t, err)
	assert.Len(t, excluding, 1)

	from, to := day, day.AddDays(1)
	window, err := repo.List(ctx, domain.BookingFilter{BoatID: ptr.Ptr(int64(1)), DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, window, 3)
	assert.Equal(t, day, window[0].StartDate)
	assert.Equal(t, types.TimeString("09:00"), window[0].StartTime)
	assert.Equal(t, day.AddDays(1), window[2].StartDate)

	later := day.AddDays(1)
	fromNextDay, err := repo.List(ctx, domain.BookingFilter{DateFrom: &later})
	require.NoError(t, err)
	assert.Len(t, fromNextDay, 1)

	customer, err := repo.List(ctx, domain.BookingFilter{CustomerID: ptr.Ptr(int64(10))})
	require.NoError(t, err)
	assert.Len(t, customer, 3)

	owned, err := repo.List(ctx, domain.BookingFilter{BoatIDs: []int64{2}})
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	none, err := repo.List(ctx, domain.BookingFilter{BoatIDs: []int64{}})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookingRepository_UpdateStatusIsCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()
	created, err := repo.Create(ctx, newBooking(1, 10, types.NewDate(2025, 6, 10), "09:00", "13:00"))
	require.NoError(t, err)

	confirmed, err := repo.UpdateStatus(ctx, created.ID, domain.StatusPendingApproval, domain.StatusConfirmed, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, confirmed.Status)
	assert.NotNil(t, confirmed.ConfirmedAt)

	_, err = repo.UpdateStatus(ctx, created.ID, domain.StatusPendingApproval, domain.StatusRejected, ptr.Ptr("late"))
	assert.ErrorIs(t, err, bookingRepo.ErrStatusConflict)

	_, err = repo.UpdateStatus(ctx, 999, domain.StatusPendingApproval, domain.StatusRejected, nil)
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestBookingRepository_PaymentFlow(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()
	created, err := repo.Create(ctx, newBooking(1, 10, types.NewDate(2025, 6, 10), "09:00", "13:00"))
	require.NoError(t, err)

	require.NoError(t, repo.SetPaymentIntent(ctx, created.ID, "pi_123"))

	found, err := repo.GetByPaymentIntent(ctx, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	paid, err := repo.UpdatePaymentStatus(ctx, created.ID, domain.PaymentPending, domain.PaymentDepositPaid)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentDepositPaid, paid.PaymentStatus)

	_, err = repo.UpdatePaymentStatus(ctx, created.ID, domain.PaymentPending, domain.PaymentFailed)
	assert.ErrorIs(t, err, bookingRepo.ErrStatusConflict)

	_, err = repo.GetByPaymentIntent(ctx, "pi_unknown")
	assert.ErrorIs(t, err, bookingRepo.ErrBookingNotFound)
}

func TestBookingRepository_RejectExpired(t *testing.T) {
	ctx := context.Background()
	repo := NewBookingRepository()
	today := types.NewDate(2025, 6, 10)

	past, _ := repo.Create(ctx, newBooking(1, 10, today.AddDays(-1), "09:00", "13:00"))
	current, _ := repo.Create(ctx, newBooking(1, 10, today, "09:00", "13:00"))
	confirmedPast := newBooking(1, 10, today.AddDays(-2), "09:00", "13:00")
	confirmedPast.Status = domain.StatusConfirmed
	confirmedPast, _ = repo.Create(ctx, confirmedPast)

	n, err := repo.RejectExpired(ctx, today, domain.ExpiredRejectionReason)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, _ := repo.GetByID(ctx, past.ID)
	assert.Equal(t, domain.StatusRejected, got.Status)
	assert.Equal(t, domain.ExpiredRejectionReason, *got.RejectionReason)

	got, _ = repo.GetByID(ctx, current.ID)
	assert.Equal(t, domain.StatusPendingApproval, got.Status)

	got, _ = repo.GetByID(ctx, confirmedPast.ID)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}

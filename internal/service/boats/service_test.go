package boats

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/internal/infra/storage/memory"
	"github.com/m04kA/charter-booking-service/internal/service/boats/models"
	"github.com/m04kA/charter-booking-service/pkg/logger"
	"github.com/m04kA/charter-booking-service/pkg/ptr"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

const ownerID = int64(100)

func newService() *Service {
	return NewService(memory.NewBoatRepository(), logger.Discard())
}

func validCreateRequest() *models.CreateBoatRequest {
	return &models.CreateBoatRequest{
		UserID:       ownerID,
		Name:         "Sea Breeze",
		MaxGuests:    8,
		PricePerHour: decimal.NewFromInt(200),
		AvailabilityBlocks: []models.BlockRequest{
			{Name: "Morning", StartTime: "09:00", EndTime: "13:00"},
			{Name: "Sunset", StartTime: "18:00", EndTime: "21:00"},
		},
		Services: []models.ServiceRequest{
			{Name: "Catering", Price: decimal.NewFromInt(50), PricingType: "per_person"},
		},
	}
}

func TestService_Create(t *testing.T) {
	svc := newService()

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.Equal(t, ownerID, resp.OwnerID)
	assert.Equal(t, string(domain.BoatStatusDraft), resp.Status)
	assert.Equal(t, domain.DefaultDownPaymentPercentage, resp.DownPaymentPercentage)
	assert.Len(t, resp.AvailabilityBlocks, 2)
	assert.Empty(t, resp.SpecialPricing)
}

func TestService_Create_ClampsDownPayment(t *testing.T) {
	svc := newService()

	for input, want := range map[int]int{0: 10, 5: 10, 30: 30, 150: 100} {
		req := validCreateRequest()
		req.DownPaymentPercentage = ptr.Ptr(input)

		resp, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.DownPaymentPercentage, "input %d", input)
	}
}

func TestService_Create_KeepsBoatWithInvalidBlocks(t *testing.T) {
	svc := newService()
	req := validCreateRequest()
	req.AvailabilityBlocks = []models.BlockRequest{
		{Name: "Morning", StartTime: "09:00", EndTime: "13:00"},
		{Name: "Broken", StartTime: "25:00", EndTime: "13:00"},
		{Name: "Empty", StartTime: "10:00", EndTime: "10:00"},
	}

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	// блоки сохраняются как есть, ошибки видны по каждому блоку
	assert.Len(t, resp.AvailabilityBlocks, 3)
	require.Len(t, resp.BlockErrors, 2)
	assert.Contains(t, resp.BlockErrors[0], "block #2 (Broken)")
	assert.Contains(t, resp.BlockErrors[1], "block #3 (Empty)")

	stored, err := svc.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.BlockErrors, stored.BlockErrors)

	// исправленные блоки больше не помечаются
	fixed := []models.BlockRequest{{Name: "Morning", StartTime: "09:00", EndTime: "13:00"}}
	updated, err := svc.Update(context.Background(), resp.ID, &models.UpdateBoatRequest{
		UserID:             req.UserID,
		AvailabilityBlocks: &fixed,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.BlockErrors)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.CreateBoatRequest)
	}{
		{name: "empty name", mutate: func(r *models.CreateBoatRequest) { r.Name = " " }},
		{name: "no guests", mutate: func(r *models.CreateBoatRequest) { r.MaxGuests = 0 }},
		{name: "negative price", mutate: func(r *models.CreateBoatRequest) { r.PricePerHour = decimal.NewFromInt(-1) }},
		{name: "unknown status", mutate: func(r *models.CreateBoatRequest) { r.Status = ptr.Ptr("sunk") }},
		{name: "service without pricing type", mutate: func(r *models.CreateBoatRequest) { r.Services[0].PricingType = "" }},
		{name: "calendar without id", mutate: func(r *models.CreateBoatRequest) {
			r.Calendar = &models.CalendarRequest{Enabled: true}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)

			_, err := newService().Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	t.Run("owner patches fields", func(t *testing.T) {
		resp, err := svc.Update(ctx, created.ID, &models.UpdateBoatRequest{
			UserID:       ownerID,
			Status:       ptr.Ptr("active"),
			WeekendPrice: ptr.Ptr(decimal.NewFromInt(240)),
		})
		require.NoError(t, err)
		assert.Equal(t, "active", resp.Status)
		require.NotNil(t, resp.WeekendPrice)
		assert.True(t, resp.WeekendPrice.Equal(decimal.NewFromInt(240)))
		assert.Equal(t, "Sea Breeze", resp.Name)
	})

	t.Run("other user is denied", func(t *testing.T) {
		_, err := svc.Update(ctx, created.ID, &models.UpdateBoatRequest{UserID: 7, Name: ptr.Ptr("Mine")})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("missing boat", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, &models.UpdateBoatRequest{UserID: ownerID})
		assert.ErrorIs(t, err, ErrBoatNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)
	other := validCreateRequest()
	other.UserID = 200
	other.Status = ptr.Ptr("active")
	_, err = svc.Create(ctx, other)
	require.NoError(t, err)

	all, err := svc.List(ctx, &models.ListBoatsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	owned, err := svc.List(ctx, &models.ListBoatsRequest{OwnerID: ptr.Ptr(ownerID)})
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, first.ID, owned[0].ID)

	active, err := svc.List(ctx, &models.ListBoatsRequest{Status: ptr.Ptr("active")})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	_, err = svc.List(ctx, &models.ListBoatsRequest{Status: ptr.Ptr("bogus")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SpecialPricing(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	created, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	date := types.NewDate(2025, time.July, 4)

	resp, err := svc.SetSpecialPricing(ctx, created.ID, &models.SpecialPricingRequest{
		UserID:       ownerID,
		Date:         date,
		PricingType:  "hourly",
		PricePerHour: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	require.Len(t, resp.SpecialPricing, 1)

	// повторная установка на ту же дату заменяет запись
	resp, err = svc.SetSpecialPricing(ctx, created.ID, &models.SpecialPricingRequest{
		UserID:      ownerID,
		Date:        date,
		PricingType: "daily",
		PricePerDay: decimal.NewFromInt(2000),
		StartTime:   "10:00",
		EndTime:     "18:00",
	})
	require.NoError(t, err)
	require.Len(t, resp.SpecialPricing, 1)
	assert.Equal(t, "daily", resp.SpecialPricing[0].PricingType)

	_, err = svc.SetSpecialPricing(ctx, created.ID, &models.SpecialPricingRequest{
		UserID:      ownerID,
		Date:        date,
		PricingType: "daily",
		PricePerDay: decimal.NewFromInt(2000),
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "daily entry needs a window")

	_, err = svc.SetSpecialPricing(ctx, created.ID, &models.SpecialPricingRequest{
		UserID: 7, Date: date, PricingType: "hourly", PricePerHour: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err = svc.RemoveSpecialPricing(ctx, created.ID, date, ownerID)
	require.NoError(t, err)
	assert.Empty(t, resp.SpecialPricing)

	_, err = svc.RemoveSpecialPricing(ctx, created.ID, date, ownerID)
	assert.ErrorIs(t, err, ErrSpecialPricingNotFound)
}

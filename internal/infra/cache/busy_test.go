package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

type mockRedis struct {
	mock.Mock
}

func (m *mockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	args := m.Called(ctx, key)
	return args.Get(0).(*redis.StringCmd)
}

func (m *mockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.StatusCmd)
}

func TestBusyPeriodCache_SetAndGet(t *testing.T) {
	ctx := context.Background()
	date := types.NewDate(2025, time.June, 10)
	periods := []domain.BusyPeriod{{Date: date, StartTime: "09:00", EndTime: "11:00"}}
	stored := `[{"date":"2025-06-10","start_time":"09:00","end_time":"11:00"}]`

	client := &mockRedis{}
	client.On("Set", ctx, "charter:busy:cal-1:2025-06-10", stored, 10*time.Minute).
		Return(redis.NewStatusResult("OK", nil))
	client.On("Get", ctx, "charter:busy:cal-1:2025-06-10").
		Return(redis.NewStringResult(stored, nil))

	c := NewBusyPeriodCache(client, 10*time.Minute)
	require.NoError(t, c.Set(ctx, "cal-1", date, periods))

	got, found, err := c.Get(ctx, "cal-1", date)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, periods, got)
	client.AssertExpectations(t)
}

func TestBusyPeriodCache_Miss(t *testing.T) {
	ctx := context.Background()
	client := &mockRedis{}
	client.On("Get", ctx, mock.Anything).Return(redis.NewStringResult("", redis.Nil))

	got, found, err := NewBusyPeriodCache(client, time.Minute).Get(ctx, "cal-1", types.NewDate(2025, time.June, 10))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got)
}

func TestBusyPeriodCache_Errors(t *testing.T) {
	ctx := context.Background()
	date := types.NewDate(2025, time.June, 10)

	client := &mockRedis{}
	client.On("Get", ctx, "charter:busy:broken:2025-06-10").Return(redis.NewStringResult("", errors.New("connection refused")))
	client.On("Get", ctx, "charter:busy:garbage:2025-06-10").Return(redis.NewStringResult("{not json", nil))
	client.On("Set", ctx, mock.Anything, mock.Anything, mock.Anything).Return(redis.NewStatusResult("", errors.New("readonly")))

	c := NewBusyPeriodCache(client, time.Minute)

	_, _, err := c.Get(ctx, "broken", date)
	assert.ErrorIs(t, err, ErrRead)

	_, _, err = c.Get(ctx, "garbage", date)
	assert.ErrorIs(t, err, ErrDecode)

	assert.ErrorIs(t, c.Set(ctx, "cal", date, nil), ErrWrite)
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/charter-booking-service/internal/domain"
	"github.com/m04kA/charter-booking-service/pkg/types"
)

var (
	ErrRead   = errors.New("cache: read failed")
	ErrWrite  = errors.New("cache: write failed")
	ErrDecode = errors.New("cache: decode failed")
)

// RedisClient часть API go-redis, которой пользуется кэш
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// BusyPeriodCache хранит последний успешный ответ календаря по дню.
// Используется как резерв, когда календарь недоступен.
type BusyPeriodCache struct {
	client RedisClient
	ttl    time.Duration
}

// NewRedisClient создает клиента Redis и проверяет соединение
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping %s: %v", ErrRead, addr, err)
	}
	return client, nil
}

// NewBusyPeriodCache создает кэш занятых интервалов
func NewBusyPeriodCache(client RedisClient, ttl time.Duration) *BusyPeriodCache {
	return &BusyPeriodCache{client: client, ttl: ttl}
}

type busyPeriodEntry struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Get возвращает сохранённые интервалы; found=false при промахе
func (c *BusyPeriodCache) Get(ctx context.Context, calendarID string, date types.Date) ([]domain.BusyPeriod, bool, error) {
	raw, err := c.client.Get(ctx, key(calendarID, date)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var entries []busyPeriodEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	periods := make([]domain.BusyPeriod, 0, len(entries))
	for _, e := range entries {
		d, err := types.ParseDate(e.Date)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		periods = append(periods, domain.BusyPeriod{
			Date:      d,
			StartTime: types.TimeString(e.StartTime),
			EndTime:   types.TimeString(e.EndTime),
		})
	}
	return periods, true, nil
}

// Set сохраняет интервалы дня на время TTL
func (c *BusyPeriodCache) Set(ctx context.Context, calendarID string, date types.Date, periods []domain.BusyPeriod) error {
	entries := make([]busyPeriodEntry, 0, len(periods))
	for _, p := range periods {
		entries = append(entries, busyPeriodEntry{
			Date:      p.Date.String(),
			StartTime: string(p.StartTime),
			EndTime:   string(p.EndTime),
		})
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := c.client.Set(ctx, key(calendarID, date), string(payload), c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func key(calendarID string, date types.Date) string {
	return "charter:busy:" + calendarID + ":" + date.String()
}

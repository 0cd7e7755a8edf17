package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"grafik/internal/modules/schedule/domain"
	scheduleout "grafik/internal/modules/schedule/port/out"
	apperrors "grafik/internal/platform/errors"
)

const redisKeyPattern = "monthCache:*"

// RedisMonthCache shares month rosters between clients on one host or
// network. Entries expire server-side after the TTL.
type RedisMonthCache struct {
	client *redis.Client
}

func NewRedisMonthCache(client *redis.Client) scheduleout.MonthCache {
	return &RedisMonthCache{client: client}
}

func (c *RedisMonthCache) Get(ctx context.Context, key string) (domain.CachedMonth, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.CachedMonth{}, apperrors.ErrCacheMiss
	}
	if err != nil {
		return domain.CachedMonth{}, fmt.Errorf("read month cache %s: %w", key, err)
	}
	var wire cachedMonthWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return domain.CachedMonth{}, fmt.Errorf("decode month cache %s: %w", key, err)
	}
	return wire.domain(), nil
}

func (c *RedisMonthCache) Put(ctx context.Context, key string, entry domain.CachedMonth, ttl time.Duration) error {
	payload, err := json.Marshal(cachedToWire(entry))
	if err != nil {
		return fmt.Errorf("encode month cache %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("write month cache %s: %w", key, err)
	}
	return nil
}

func (c *RedisMonthCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete month cache %s: %w", key, err)
	}
	return nil
}

func (c *RedisMonthCache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, redisKeyPattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan month cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("clear month cache: %w", err)
	}
	return nil
}

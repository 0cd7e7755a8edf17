package out_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	scheduleout "grafik/internal/modules/schedule/adapter/out"
	"grafik/internal/modules/schedule/domain"
	apperrors "grafik/internal/platform/errors"
)

func newRedisCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func redisEntry() domain.CachedMonth {
	bar := false
	return domain.CachedMonth{
		StoredAt: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC),
		Month: domain.Month{Year: 2026, Month: 5, Days: map[string]domain.Day{
			"2026-05-12": {
				Date:    "2026-05-12",
				Morning: []domain.Assignment{{UserID: 3, FullName: "Kasia", Code: "1", Hours: 8, BarToday: &bar, Lounge: "mazurek"}},
			},
		}},
	}
}

func TestRedisMonthCacheRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, rdb := newRedisCache(t)
	cache := scheduleout.NewRedisMonthCache(rdb)

	key := domain.MonthKey(2026, 5)
	if _, err := cache.Get(ctx, key); !errors.Is(err, apperrors.ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := cache.Put(ctx, key, redisEntry(), time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("monthCache:2026-05") {
		t.Fatalf("expected the entry under monthCache:2026-05, keys=%v", mr.Keys())
	}
	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	day := got.Month.Days["2026-05-12"]
	if got.Month.Year != 2026 || len(day.Morning) != 1 {
		t.Fatalf("unexpected month %+v", got)
	}
	if m := day.Morning[0]; m.FullName != "Kasia" || m.Lounge != "mazurek" || m.BarToday == nil || *m.BarToday {
		t.Fatalf("assignment lost fields: %+v", m)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := cache.Get(ctx, key); !errors.Is(err, apperrors.ErrCacheMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestRedisMonthCacheExpiresAfterTTL(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, rdb := newRedisCache(t)
	cache := scheduleout.NewRedisMonthCache(rdb)

	key := domain.MonthKey(2026, 5)
	if err := cache.Put(ctx, key, redisEntry(), 30*time.Second); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ttl := mr.TTL(key); ttl != 30*time.Second {
		t.Fatalf("ttl = %v", ttl)
	}
	mr.FastForward(29 * time.Second)
	if _, err := cache.Get(ctx, key); err != nil {
		t.Fatalf("entry must survive until the ttl, got %v", err)
	}
	mr.FastForward(2 * time.Second)
	if _, err := cache.Get(ctx, key); !errors.Is(err, apperrors.ErrCacheMiss) {
		t.Fatalf("expected miss after the ttl, got %v", err)
	}
}

func TestRedisMonthCacheClearKeepsForeignKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mr, rdb := newRedisCache(t)
	cache := scheduleout.NewRedisMonthCache(rdb)

	for m := 1; m <= 3; m++ {
		if err := cache.Put(ctx, domain.MonthKey(2026, m), redisEntry(), time.Minute); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if err := mr.Set("session:other", "x"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	keys := mr.Keys()
	if len(keys) != 1 || keys[0] != "session:other" {
		t.Fatalf("clear must drop every monthCache key and nothing else, keys=%v", keys)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clearing an empty cache: %v", err)
	}
}

package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"grafik/internal/modules/schedule/domain"
	scheduleout "grafik/internal/modules/schedule/port/out"
	apperrors "grafik/internal/platform/errors"
)

// SQLiteMonthCache keeps month rosters in the local state database.
// Freshness is judged by the caller from stored_at.
type SQLiteMonthCache struct {
	db *sql.DB
}

func NewSQLiteMonthCache(ctx context.Context, db *sql.DB) (scheduleout.MonthCache, error) {
	cache := &SQLiteMonthCache{db: db}
	if err := cache.ensureSchema(ctx); err != nil {
		return nil, err
	}
	return cache, nil
}

func (c *SQLiteMonthCache) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS month_cache (
  key TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  stored_at TEXT NOT NULL
);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create month_cache table: %w", err)
	}
	return nil
}

func (c *SQLiteMonthCache) Get(ctx context.Context, key string) (domain.CachedMonth, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM month_cache WHERE key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.CachedMonth{}, apperrors.ErrCacheMiss
	}
	if err != nil {
		return domain.CachedMonth{}, fmt.Errorf("read month cache %s: %w", key, err)
	}
	var wire cachedMonthWire
	if err := json.Unmarshal(payload, &wire); err != nil {
		return domain.CachedMonth{}, fmt.Errorf("decode month cache %s: %w", key, err)
	}
	return wire.domain(), nil
}

// Put ignores ttl; expired rows are simply overwritten on the next fetch.
func (c *SQLiteMonthCache) Put(ctx context.Context, key string, entry domain.CachedMonth, _ time.Duration) error {
	payload, err := json.Marshal(cachedToWire(entry))
	if err != nil {
		return fmt.Errorf("encode month cache %s: %w", key, err)
	}
	const stmt = `
INSERT INTO month_cache (key, payload, stored_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  payload=excluded.payload,
  stored_at=excluded.stored_at;
`
	if _, err := c.db.ExecContext(ctx, stmt, key, payload, entry.StoredAt.UTC().Format(time.RFC3339Nano)); err != nil {
		return fmt.Errorf("write month cache %s: %w", key, err)
	}
	return nil
}

func (c *SQLiteMonthCache) Delete(ctx context.Context, key string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM month_cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete month cache %s: %w", key, err)
	}
	return nil
}

func (c *SQLiteMonthCache) Clear(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM month_cache`); err != nil {
		return fmt.Errorf("clear month cache: %w", err)
	}
	return nil
}

package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	accountout "grafik/internal/modules/account/port/out"
	apperrors "grafik/internal/platform/errors"
)

type SQLitePreferenceStore struct {
	db *sql.DB
}

func NewSQLitePreferenceStore(ctx context.Context, db *sql.DB) (accountout.PreferenceStore, error) {
	store := &SQLitePreferenceStore{db: db}
	const ddl = `
CREATE TABLE IF NOT EXISTS preferences (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return nil, fmt.Errorf("create preferences table: %w", err)
	}
	return store, nil
}

func (s *SQLitePreferenceStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("preference %s: %w", key, apperrors.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("read preference %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLitePreferenceStore) Set(ctx context.Context, key, value string) error {
	const stmt = `
INSERT INTO preferences (key, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET
  value=excluded.value,
  updated_at=excluded.updated_at;
`
	if _, err := s.db.ExecContext(ctx, stmt, key, value, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("write preference %s: %w", key, err)
	}
	return nil
}

package out_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"grafik/internal/modules/session/adapter/out"
	"grafik/internal/modules/session/domain"
	apperrors "grafik/internal/platform/errors"
)

func TestFileTokenStoreRoundTripAndMode(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	store := out.NewFileTokenStore(path)

	if _, err := store.Load(); !errors.Is(err, apperrors.ErrNoToken) {
		t.Fatalf("expected no token on fresh store, got %v", err)
	}
	saved := domain.StoredToken{Token: "abc", SavedAt: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
	loaded, err := store.Load()
	if err != nil || loaded.Token != "abc" || !loaded.SavedAt.Equal(saved.SavedAt) {
		t.Fatalf("unexpected load %+v %v", loaded, err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clearing twice must be fine: %v", err)
	}
	if _, err := store.Load(); !errors.Is(err, apperrors.ErrNoToken) {
		t.Fatalf("expected no token after clear, got %v", err)
	}
}

func TestFileTokenStoreCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := out.NewFileTokenStore(path).Load()
	if err == nil || errors.Is(err, apperrors.ErrNoToken) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestMemoryTokenStore(t *testing.T) {
	t.Parallel()
	store := out.NewMemoryTokenStore()
	if _, err := store.Load(); !errors.Is(err, apperrors.ErrNoToken) {
		t.Fatalf("expected empty store")
	}
	_ = store.Save(domain.StoredToken{Token: "x"})
	if got, _ := store.Load(); got.Token != "x" {
		t.Fatalf("expected saved token")
	}
	_ = store.Clear()
	if _, err := store.Load(); !errors.Is(err, apperrors.ErrNoToken) {
		t.Fatalf("expected cleared store")
	}
}

package out

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"grafik/internal/modules/session/domain"
	apperrors "grafik/internal/platform/errors"
)

// FileTokenStore keeps one token in a JSON file readable only by the user.
type FileTokenStore struct {
	path string
	mu   sync.Mutex
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Path() string { return s.path }

func (s *FileTokenStore) Load() (domain.StoredToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.StoredToken{}, apperrors.ErrNoToken
	}
	if err != nil {
		return domain.StoredToken{}, fmt.Errorf("read token file: %w", err)
	}
	var stored domain.StoredToken
	if err := json.Unmarshal(raw, &stored); err != nil {
		return domain.StoredToken{}, fmt.Errorf("decode token file: %w", err)
	}
	if stored.Token == "" {
		return domain.StoredToken{}, apperrors.ErrNoToken
	}
	return stored, nil
}

func (s *FileTokenStore) Save(token domain.StoredToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	raw, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// MemoryTokenStore lives only as long as the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token domain.StoredToken
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Load() (domain.StoredToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token.Token == "" {
		return domain.StoredToken{}, apperrors.ErrNoToken
	}
	return s.token, nil
}

func (s *MemoryTokenStore) Save(token domain.StoredToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = domain.StoredToken{}
	return nil
}

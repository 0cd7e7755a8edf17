package service

import (
	"errors"
	"fmt"
	"strings"

	hclog "github.com/hashicorp/go-hclog"

	"grafik/internal/modules/session/domain"
	sessionout "grafik/internal/modules/session/port/out"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/logging"
)

// SessionService owns the bearer token across the two storage scopes.
// Every read goes to the stores so that a login from another process is
// seen immediately.
type SessionService struct {
	clock      clock.Clock
	persistent sessionout.TokenStore
	ephemeral  sessionout.TokenStore
	log        hclog.Logger
}

func NewSessionService(clk clock.Clock, persistent, ephemeral sessionout.TokenStore, logger hclog.Logger) *SessionService {
	if clk == nil {
		clk = clock.SystemClock{}
	}
	return &SessionService{clock: clk, persistent: persistent, ephemeral: ephemeral, log: logging.OrNull(logger).Named("session")}
}

// Token returns the persistent token, else the ephemeral one, else "".
func (s *SessionService) Token() string {
	token, _ := s.Stored()
	return token
}

// Stored is Token plus the scope the token came from.
func (s *SessionService) Stored() (string, domain.Scope) {
	if token := s.load(s.persistent, domain.ScopePersistent); token != "" {
		return token, domain.ScopePersistent
	}
	if token := s.load(s.ephemeral, domain.ScopeEphemeral); token != "" {
		return token, domain.ScopeEphemeral
	}
	return "", domain.ScopeNone
}

func (s *SessionService) load(store sessionout.TokenStore, scope domain.Scope) string {
	stored, err := store.Load()
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoToken) {
			s.log.Warn("read token store", "scope", scope, "error", err)
		}
		return ""
	}
	return strings.TrimSpace(stored.Token)
}

// SetToken writes into exactly one scope and empties the other.
func (s *SessionService) SetToken(token string, remember bool) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("store token: %w: empty token", apperrors.ErrInvalidInput)
	}
	target, other := s.ephemeral, s.persistent
	if remember {
		target, other = s.persistent, s.ephemeral
	}
	if err := other.Clear(); err != nil {
		return fmt.Errorf("clear previous token: %w", err)
	}
	if err := target.Save(domain.StoredToken{Token: token, SavedAt: s.clock.Now()}); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// ClearToken empties both scopes. The first failure is returned after
// both were attempted.
func (s *SessionService) ClearToken() error {
	errPersistent := s.persistent.Clear()
	errEphemeral := s.ephemeral.Clear()
	return errors.Join(errPersistent, errEphemeral)
}

// Claims decodes the current token; no token yields empty claims.
func (s *SessionService) Claims() domain.Claims {
	return domain.DecodeClaims(s.Token())
}

package out

import (
	"context"

	"grafik/internal/modules/session/domain"
)

// TokenStore holds at most one token. Load reports apperrors.ErrNoToken
// when the scope is empty.
type TokenStore interface {
	Load() (domain.StoredToken, error)
	Save(token domain.StoredToken) error
	Clear() error
}

type AuthGateway interface {
	Login(ctx context.Context, email, password string) (string, error)
	Register(ctx context.Context, email, fullName, password string) (string, error)
	Me(ctx context.Context) (domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

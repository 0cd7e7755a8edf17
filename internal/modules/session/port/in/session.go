package in

import (
	"context"

	"grafik/internal/modules/session/dto"
)

type Usecase interface {
	Login(ctx context.Context, input dto.LoginInput) (dto.IdentityOutput, error)
	Register(ctx context.Context, input dto.RegisterInput) (dto.IdentityOutput, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (dto.IdentityOutput, error)
	Me(ctx context.Context) (dto.UserOutput, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error
}

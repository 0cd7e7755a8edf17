package in

import (
	"context"

	"grafik/internal/modules/session/dto"
	sessionin "grafik/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Login(ctx context.Context, email, password string, remember bool) (dto.IdentityOutput, error) {
	return h.usecase.Login(ctx, dto.LoginInput{Email: email, Password: password, Remember: remember})
}

func (h CLIHandler) Register(ctx context.Context, email, fullName, password string, remember bool) (dto.IdentityOutput, error) {
	return h.usecase.Register(ctx, dto.RegisterInput{Email: email, FullName: fullName, Password: password, Remember: remember})
}

func (h CLIHandler) Logout(ctx context.Context) error {
	return h.usecase.Logout(ctx)
}

func (h CLIHandler) Current(ctx context.Context) (dto.IdentityOutput, error) {
	return h.usecase.Current(ctx)
}

func (h CLIHandler) Me(ctx context.Context) (dto.UserOutput, error) {
	return h.usecase.Me(ctx)
}

func (h CLIHandler) RequestPasswordReset(ctx context.Context, email string) error {
	return h.usecase.RequestPasswordReset(ctx, email)
}

func (h CLIHandler) ResetPassword(ctx context.Context, token, newPassword string) error {
	return h.usecase.ResetPassword(ctx, dto.ResetPasswordInput{Token: token, NewPassword: newPassword})
}

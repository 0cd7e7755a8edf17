package usecase

import (
	"context"
	"fmt"
	"strings"

	"grafik/internal/modules/session/domain"
	"grafik/internal/modules/session/dto"
	sessionin "grafik/internal/modules/session/port/in"
	sessionout "grafik/internal/modules/session/port/out"
	"grafik/internal/modules/session/service"
	apperrors "grafik/internal/platform/errors"
)

type Interactor struct {
	svc  *service.SessionService
	auth sessionout.AuthGateway
}

func NewInteractor(svc *service.SessionService, auth sessionout.AuthGateway) sessionin.Usecase {
	return &Interactor{svc: svc, auth: auth}
}

func (i *Interactor) Login(ctx context.Context, input dto.LoginInput) (dto.IdentityOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return dto.IdentityOutput{}, fmt.Errorf("login: %w: email and password are required", apperrors.ErrInvalidInput)
	}
	token, err := i.auth.Login(ctx, email, input.Password)
	if err != nil {
		return dto.IdentityOutput{}, err
	}
	return i.store(token, input.Remember)
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.IdentityOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	fullName := strings.TrimSpace(input.FullName)
	if email == "" || fullName == "" || input.Password == "" {
		return dto.IdentityOutput{}, fmt.Errorf("register: %w: email, full name and password are required", apperrors.ErrInvalidInput)
	}
	token, err := i.auth.Register(ctx, email, fullName, input.Password)
	if err != nil {
		return dto.IdentityOutput{}, err
	}
	return i.store(token, input.Remember)
}

func (i *Interactor) store(token string, remember bool) (dto.IdentityOutput, error) {
	if err := i.svc.SetToken(token, remember); err != nil {
		return dto.IdentityOutput{}, err
	}
	scope := domain.ScopeEphemeral
	if remember {
		scope = domain.ScopePersistent
	}
	return toIdentity(domain.DecodeClaims(token), scope), nil
}

func (i *Interactor) Logout(context.Context) error {
	return i.svc.ClearToken()
}

func (i *Interactor) Current(context.Context) (dto.IdentityOutput, error) {
	token, scope := i.svc.Stored()
	if token == "" {
		return dto.IdentityOutput{}, apperrors.ErrUnauthenticated
	}
	return toIdentity(domain.DecodeClaims(token), scope), nil
}

func (i *Interactor) Me(ctx context.Context) (dto.UserOutput, error) {
	user, err := i.auth.Me(ctx)
	if err != nil {
		return dto.UserOutput{}, err
	}
	return dto.UserOutput{ID: user.ID, Email: user.Email, FullName: user.FullName, Role: string(user.Role)}, nil
}

func (i *Interactor) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("password reset: %w: email is required", apperrors.ErrInvalidInput)
	}
	return i.auth.RequestPasswordReset(ctx, email)
}

func (i *Interactor) ResetPassword(ctx context.Context, input dto.ResetPasswordInput) error {
	if strings.TrimSpace(input.Token) == "" || input.NewPassword == "" {
		return fmt.Errorf("password reset: %w: token and new password are required", apperrors.ErrInvalidInput)
	}
	return i.auth.ResetPassword(ctx, strings.TrimSpace(input.Token), input.NewPassword)
}

func toIdentity(claims domain.Claims, scope domain.Scope) dto.IdentityOutput {
	return dto.IdentityOutput{
		SubjectID:  claims.SubjectID,
		FullName:   claims.FullName,
		Role:       string(claims.Role),
		Privileged: claims.Role.Privileged(),
		Scope:      string(scope),
	}
}

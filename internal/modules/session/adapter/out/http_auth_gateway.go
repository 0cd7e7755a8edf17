package out

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"grafik/internal/modules/session/domain"
	sessionout "grafik/internal/modules/session/port/out"
	"grafik/internal/platform/httpapi"
)

type HTTPAuthGateway struct {
	client *httpapi.Client
}

func NewHTTPAuthGateway(client *httpapi.Client) sessionout.AuthGateway {
	return &HTTPAuthGateway{client: client}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type userWire struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (g *HTTPAuthGateway) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	err := g.client.Call(ctx, httpapi.Request{
		Method:    http.MethodPost,
		Path:      "/login",
		Body:      map[string]string{"email": email, "password": password},
		Anonymous: true,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	return tokenOrError("login", resp)
}

func (g *HTTPAuthGateway) Register(ctx context.Context, email, fullName, password string) (string, error) {
	var resp tokenResponse
	err := g.client.Call(ctx, httpapi.Request{
		Method:    http.MethodPost,
		Path:      "/register",
		Body:      map[string]string{"email": email, "full_name": fullName, "password": password},
		Anonymous: true,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("register: %w", err)
	}
	return tokenOrError("register", resp)
}

func tokenOrError(op string, resp tokenResponse) (string, error) {
	token := strings.TrimSpace(resp.AccessToken)
	if token == "" {
		return "", fmt.Errorf("%s: response carried no access_token", op)
	}
	return token, nil
}

func (g *HTTPAuthGateway) Me(ctx context.Context) (domain.User, error) {
	var wire userWire
	if err := g.client.Get(ctx, "/me", nil, &wire); err != nil {
		return domain.User{}, fmt.Errorf("load profile: %w", err)
	}
	return domain.User{ID: wire.ID, Email: wire.Email, FullName: wire.FullName, Role: domain.ParseRole(wire.Role)}, nil
}

func (g *HTTPAuthGateway) RequestPasswordReset(ctx context.Context, email string) error {
	err := g.client.Call(ctx, httpapi.Request{
		Method:    http.MethodPost,
		Path:      "/password/request",
		Body:      map[string]string{"email": email},
		Anonymous: true,
	}, nil)
	if err != nil {
		return fmt.Errorf("request password reset: %w", err)
	}
	return nil
}

func (g *HTTPAuthGateway) ResetPassword(ctx context.Context, token, newPassword string) error {
	err := g.client.Call(ctx, httpapi.Request{
		Method:    http.MethodPost,
		Path:      "/password/reset",
		Body:      map[string]string{"token": token, "new_password": newPassword},
		Anonymous: true,
	}, nil)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

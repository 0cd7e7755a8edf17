package out

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"grafik/internal/modules/admin/domain"
	adminout "grafik/internal/modules/admin/port/out"
	"grafik/internal/platform/httpapi"
)

type importWire struct {
	Imported     int      `json:"imported"`
	CreatedUsers []string `json:"created_users"`
}

func (w importWire) domain() domain.ImportResult {
	return domain.ImportResult{Imported: w.Imported, CreatedUsers: w.CreatedUsers}
}

type userWire struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (w userWire) domain() domain.User {
	return domain.User{ID: w.ID, FullName: w.FullName, Email: w.Email, Role: w.Role}
}

type HTTPImportGateway struct {
	client *httpapi.Client
}

func NewHTTPImportGateway(client *httpapi.Client) adminout.ImportGateway {
	return &HTTPImportGateway{client: client}
}

func (g *HTTPImportGateway) UploadFile(ctx context.Context, path string, file domain.ImportFile, period domain.Period) (domain.ImportResult, error) {
	var wire importWire
	err := g.client.Call(ctx, httpapi.Request{
		Method: http.MethodPost,
		Path:   path,
		Form: &httpapi.Form{
			Fields: map[string]string{"year": strconv.Itoa(period.Year), "month": strconv.Itoa(period.Month)},
			Files:  []httpapi.FormFile{{Field: "file", Name: file.Name, Content: file.Content}},
		},
	}, &wire)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("upload %s: %w", file.Name, err)
	}
	return wire.domain(), nil
}

func (g *HTTPImportGateway) UploadText(ctx context.Context, text string, period domain.Period) (domain.ImportResult, error) {
	body := struct {
		Text  string `json:"text"`
		Year  int    `json:"year"`
		Month int    `json:"month"`
	}{Text: text, Year: period.Year, Month: period.Month}
	var wire importWire
	if err := g.client.Post(ctx, "/upload-text", body, &wire); err != nil {
		return domain.ImportResult{}, fmt.Errorf("upload text: %w", err)
	}
	return wire.domain(), nil
}

type HTTPUserGateway struct {
	client *httpapi.Client
}

func NewHTTPUserGateway(client *httpapi.Client) adminout.UserGateway {
	return &HTTPUserGateway{client: client}
}

func (g *HTTPUserGateway) Users(ctx context.Context) ([]domain.User, error) {
	var wire []userWire
	if err := g.client.Get(ctx, "/users", nil, &wire); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]domain.User, 0, len(wire))
	for _, u := range wire {
		out = append(out, u.domain())
	}
	return out, nil
}

func (g *HTTPUserGateway) Create(ctx context.Context, user domain.NewUser) (domain.User, error) {
	body := struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}{Email: user.Email, FullName: user.FullName, Password: user.Password, Role: user.Role}
	var wire userWire
	if err := g.client.Post(ctx, "/users", body, &wire); err != nil {
		return domain.User{}, fmt.Errorf("create user %s: %w", user.Email, err)
	}
	return wire.domain(), nil
}

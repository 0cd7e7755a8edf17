package out

import (
	"context"
	"fmt"
	"net/url"

	"grafik/internal/modules/account/domain"
	accountout "grafik/internal/modules/account/port/out"
	"grafik/internal/platform/httpapi"
)

type profileWire struct {
	ID         int64    `json:"id"`
	Email      string   `json:"email"`
	FullName   string   `json:"full_name"`
	Role       string   `json:"role"`
	OrderIndex *int     `json:"order_index"`
	Zmiwaka    bool     `json:"is_zmiwaka"`
	Rate       *float64 `json:"hourly_rate_pln"`
	Tax        float64  `json:"tax_percent"`
}

func (w profileWire) domain() domain.Profile {
	return domain.Profile{
		ID:         w.ID,
		Email:      w.Email,
		FullName:   w.FullName,
		Role:       w.Role,
		OrderIndex: w.OrderIndex,
		Zmiwaka:    w.Zmiwaka,
		Rate:       w.Rate,
		Tax:        w.Tax,
	}
}

type settingsWire struct {
	Rate *float64 `json:"hourly_rate_pln"`
	Tax  float64  `json:"tax_percent"`
}

// statsWire carries net amounts as pointers so an older server that only
// reports gross still yields a net figure.
type statsWire struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`
	Rate       float64  `json:"rate_pln"`
	Tax        float64  `json:"tax_percent"`
	HoursTotal float64  `json:"hours_total"`
	HoursDone  float64  `json:"hours_done"`
	HoursLeft  float64  `json:"hours_left"`
	GrossDone  float64  `json:"gross_done"`
	NetDone    *float64 `json:"net_done"`
	GrossAll   float64  `json:"gross_all"`
	NetAll     *float64 `json:"net_all"`
	Daily      []struct {
		Date  string   `json:"date"`
		Code  string   `json:"code"`
		Hours float64  `json:"hours"`
		Done  bool     `json:"done"`
		Gross float64  `json:"gross"`
		Net   *float64 `json:"net"`
	} `json:"daily"`
}

func netOr(v *float64, gross, tax float64) float64 {
	if v != nil {
		return *v
	}
	return domain.Net(gross, tax)
}

func (w statsWire) domain() domain.Stats {
	out := domain.Stats{
		From:       w.Range.From,
		To:         w.Range.To,
		Rate:       w.Rate,
		Tax:        w.Tax,
		HoursTotal: w.HoursTotal,
		HoursDone:  w.HoursDone,
		HoursLeft:  w.HoursLeft,
		GrossDone:  w.GrossDone,
		NetDone:    netOr(w.NetDone, w.GrossDone, w.Tax),
		GrossAll:   w.GrossAll,
		NetAll:     netOr(w.NetAll, w.GrossAll, w.Tax),
		Daily:      make([]domain.StatsDay, 0, len(w.Daily)),
	}
	for _, d := range w.Daily {
		out.Daily = append(out.Daily, domain.StatsDay{
			Date:  d.Date,
			Code:  d.Code,
			Hours: d.Hours,
			Done:  d.Done,
			Gross: d.Gross,
			Net:   netOr(d.Net, d.Gross, w.Tax),
		})
	}
	return out
}

type HTTPAccountGateway struct {
	client *httpapi.Client
}

func NewHTTPAccountGateway(client *httpapi.Client) accountout.AccountGateway {
	return &HTTPAccountGateway{client: client}
}

func (g *HTTPAccountGateway) Profile(ctx context.Context) (domain.Profile, error) {
	var wire profileWire
	if err := g.client.Get(ctx, "/profile", nil, &wire); err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	return wire.domain(), nil
}

func (g *HTTPAccountGateway) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Profile, error) {
	body := struct {
		FullName string `json:"full_name,omitempty"`
		Email    string `json:"email,omitempty"`
	}{FullName: update.FullName, Email: update.Email}
	var wire profileWire
	if err := g.client.Put(ctx, "/profile", body, &wire); err != nil {
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return wire.domain(), nil
}

func (g *HTTPAccountGateway) Settings(ctx context.Context) (domain.PaySettings, error) {
	var wire settingsWire
	if err := g.client.Get(ctx, "/me/settings", nil, &wire); err != nil {
		return domain.PaySettings{}, fmt.Errorf("get settings: %w", err)
	}
	return domain.PaySettings{Rate: wire.Rate, Tax: wire.Tax}, nil
}

func (g *HTTPAccountGateway) UpdateSettings(ctx context.Context, settings domain.PaySettings) error {
	if err := g.client.Post(ctx, "/me/settings", settingsWire{Rate: settings.Rate, Tax: settings.Tax}, nil); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return nil
}

func (g *HTTPAccountGateway) Stats(ctx context.Context, month string) (domain.Stats, error) {
	var wire statsWire
	if err := g.client.Get(ctx, "/my-stats", url.Values{"month": {month}}, &wire); err != nil {
		return domain.Stats{}, fmt.Errorf("get stats %s: %w", month, err)
	}
	return wire.domain(), nil
}

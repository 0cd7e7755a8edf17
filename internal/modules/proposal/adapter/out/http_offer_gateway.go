package out

import (
	"context"
	"fmt"
	"net/http"

	"grafik/internal/modules/proposal/domain"
	proposalout "grafik/internal/modules/proposal/port/out"
	"grafik/internal/platform/httpapi"
)

type partyWire struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

type offerWire struct {
	ID        int64      `json:"id"`
	Status    string     `json:"status"`
	Date      string     `json:"date"`
	Code      string     `json:"code"`
	Owner     *partyWire `json:"owner"`
	Candidate *partyWire `json:"candidate"`
	CreatedAt string     `json:"created_at"`
}

func (w offerWire) domain() domain.Offer {
	o := domain.Offer{
		ID:        w.ID,
		Status:    domain.ParseOfferStatus(w.Status),
		Date:      w.Date,
		Code:      w.Code,
		CreatedAt: w.CreatedAt,
	}
	if w.Owner != nil {
		o.Owner = domain.Party{ID: w.Owner.ID, FullName: w.Owner.FullName}
	}
	if w.Candidate != nil {
		o.Candidate = &domain.Party{ID: w.Candidate.ID, FullName: w.Candidate.FullName}
	}
	return o
}

type HTTPOfferGateway struct {
	client *httpapi.Client
}

func NewHTTPOfferGateway(client *httpapi.Client) proposalout.OfferGateway {
	return &HTTPOfferGateway{client: client}
}

func (g *HTTPOfferGateway) Offers(ctx context.Context) (domain.Market, error) {
	var wire struct {
		Open []offerWire `json:"open"`
		Mine []offerWire `json:"mine"`
	}
	if err := g.client.Get(ctx, "/market/offers", nil, &wire); err != nil {
		return domain.Market{}, fmt.Errorf("list offers: %w", err)
	}
	market := domain.Market{Open: make([]domain.Offer, 0, len(wire.Open)), Mine: make([]domain.Offer, 0, len(wire.Mine))}
	for _, o := range wire.Open {
		market.Open = append(market.Open, o.domain())
	}
	for _, o := range wire.Mine {
		market.Mine = append(market.Mine, o.domain())
	}
	return market, nil
}

func (g *HTTPOfferGateway) Create(ctx context.Context, shiftID int64) (int64, error) {
	var resp struct {
		OfferID int64 `json:"offer_id"`
	}
	path := fmt.Sprintf("/market/offers/%d", shiftID)
	if err := g.client.Call(ctx, httpapi.Request{Method: http.MethodPost, Path: path}, &resp); err != nil {
		return 0, fmt.Errorf("offer shift %d: %w", shiftID, err)
	}
	return resp.OfferID, nil
}

func (g *HTTPOfferGateway) Transition(ctx context.Context, id int64, action domain.OfferAction) (domain.Offer, error) {
	var resp struct {
		Offer offerWire `json:"offer"`
	}
	path := fmt.Sprintf("/market/offers/%d/%s", id, action)
	if err := g.client.Call(ctx, httpapi.Request{Method: http.MethodPost, Path: path}, &resp); err != nil {
		return domain.Offer{}, fmt.Errorf("%s offer %d: %w", action, id, err)
	}
	return resp.Offer.domain(), nil
}

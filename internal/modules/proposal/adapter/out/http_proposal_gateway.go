package out

import (
	"context"
	"fmt"
	"net/http"

	"grafik/internal/modules/proposal/domain"
	proposalout "grafik/internal/modules/proposal/port/out"
	"grafik/internal/platform/httpapi"
)

type HTTPProposalGateway struct {
	client *httpapi.Client
}

func NewHTTPProposalGateway(client *httpapi.Client) proposalout.ProposalGateway {
	return &HTTPProposalGateway{client: client}
}

func (g *HTTPProposalGateway) List(ctx context.Context) (proposalout.RawBuckets, error) {
	var wire struct {
		Incoming    []domain.Record `json:"incoming"`
		Outgoing    []domain.Record `json:"outgoing"`
		ForApproval []domain.Record `json:"for_approval"`
		ToApprove   []domain.Record `json:"to_approve"`
	}
	if err := g.client.Get(ctx, "/proposals", nil, &wire); err != nil {
		return proposalout.RawBuckets{}, fmt.Errorf("list proposals: %w", err)
	}
	queue := wire.ForApproval
	if len(queue) == 0 {
		queue = wire.ToApprove
	}
	return proposalout.RawBuckets{Incoming: wire.Incoming, Outgoing: wire.Outgoing, ForApproval: queue}, nil
}

func (g *HTTPProposalGateway) Create(ctx context.Context, req domain.CreateRequest) error {
	body := struct {
		TargetUserID int64  `json:"target_user_id"`
		MyDate       string `json:"my_date"`
		TheirDate    string `json:"their_date"`
	}{TargetUserID: req.TargetUserID, MyDate: req.MyDate, TheirDate: req.TheirDate}
	if err := g.client.Post(ctx, "/proposals", body, nil); err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	return nil
}

func (g *HTTPProposalGateway) Transition(ctx context.Context, id int64, action domain.Action) error {
	path := fmt.Sprintf("/proposals/%d/%s", id, action)
	if err := g.client.Call(ctx, httpapi.Request{Method: http.MethodPost, Path: path}, nil); err != nil {
		return fmt.Errorf("%s proposal %d: %w", action, id, err)
	}
	return nil
}

func (g *HTTPProposalGateway) Takeover(ctx context.Context, targetUserID int64, date string) (domain.Offer, error) {
	body := struct {
		TargetUserID int64  `json:"target_user_id"`
		Date         string `json:"date"`
	}{TargetUserID: targetUserID, Date: date}
	var resp struct {
		Offer offerWire `json:"offer"`
	}
	if err := g.client.Post(ctx, "/takeovers", body, &resp); err != nil {
		return domain.Offer{}, fmt.Errorf("request takeover: %w", err)
	}
	return resp.Offer.domain(), nil
}

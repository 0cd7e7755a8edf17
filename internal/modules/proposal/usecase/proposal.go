package usecase

import (
	"context"
	"strconv"

	hclog "github.com/hashicorp/go-hclog"

	"grafik/internal/modules/proposal/domain"
	"grafik/internal/modules/proposal/dto"
	proposalin "grafik/internal/modules/proposal/port/in"
	"grafik/internal/modules/proposal/service"
	schedulein "grafik/internal/modules/schedule/port/in"
	sessionin "grafik/internal/modules/session/port/in"
	"grafik/internal/platform/logging"
)

type Interactor struct {
	svc      *service.ProposalService
	schedule schedulein.Usecase
	session  sessionin.Usecase
	log      hclog.Logger
}

func NewInteractor(svc *service.ProposalService, schedule schedulein.Usecase, session sessionin.Usecase, logger hclog.Logger) proposalin.Usecase {
	return &Interactor{svc: svc, schedule: schedule, session: session, log: logging.OrNull(logger).Named("proposal")}
}

func (i *Interactor) List(ctx context.Context) (dto.ListOutput, error) {
	buckets, err := i.svc.List(ctx)
	if err != nil {
		return dto.ListOutput{}, err
	}
	return toList(buckets), nil
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.ListOutput, error) {
	err := i.svc.Create(ctx, domain.CreateRequest{
		TargetUserID: input.TargetUserID,
		MyDate:       input.MyDate,
		TheirDate:    input.TheirDate,
		MyCode:       input.MyCode,
		TheirCode:    input.TheirCode,
	})
	if err != nil {
		return dto.ListOutput{}, err
	}
	return i.List(ctx)
}

func (i *Interactor) Accept(ctx context.Context, id int64) (dto.ListOutput, error) {
	return i.transition(ctx, id, domain.ActionAccept)
}

func (i *Interactor) Decline(ctx context.Context, id int64) (dto.ListOutput, error) {
	return i.transition(ctx, id, domain.ActionDecline)
}

func (i *Interactor) Cancel(ctx context.Context, id int64) (dto.ListOutput, error) {
	return i.transition(ctx, id, domain.ActionCancel)
}

func (i *Interactor) Approve(ctx context.Context, id int64) (dto.ListOutput, error) {
	return i.transition(ctx, id, domain.ActionApprove)
}

func (i *Interactor) Reject(ctx context.Context, id int64) (dto.ListOutput, error) {
	return i.transition(ctx, id, domain.ActionReject)
}

// transition never edits the list locally: the backend's answer is
// reloaded in full.
func (i *Interactor) transition(ctx context.Context, id int64, action domain.Action) (dto.ListOutput, error) {
	if err := i.svc.Transition(ctx, id, action); err != nil {
		return dto.ListOutput{}, err
	}
	if action == domain.ActionApprove {
		i.invalidate(ctx)
	}
	return i.List(ctx)
}

func (i *Interactor) CreateTakeover(ctx context.Context, input dto.TakeoverInput) (dto.OfferOutput, error) {
	if err := i.schedule.CheckTakeover(ctx, input.Date); err != nil {
		return dto.OfferOutput{}, err
	}
	offer, err := i.svc.Takeover(ctx, input.TargetUserID, input.Date)
	if err != nil {
		return dto.OfferOutput{}, err
	}
	return toOffer(offer, i.viewerID(ctx)), nil
}

func (i *Interactor) Offers(ctx context.Context) (dto.MarketOutput, error) {
	market, err := i.svc.Offers(ctx)
	if err != nil {
		return dto.MarketOutput{}, err
	}
	viewer := i.viewerID(ctx)
	return dto.MarketOutput{Open: toOffers(market.Open, viewer), Mine: toOffers(market.Mine, viewer)}, nil
}

func (i *Interactor) CreateOffer(ctx context.Context, shiftID int64) (int64, error) {
	return i.svc.CreateOffer(ctx, shiftID)
}

func (i *Interactor) ClaimOffer(ctx context.Context, id int64) (dto.MarketOutput, error) {
	return i.transitionOffer(ctx, id, domain.OfferClaim)
}

func (i *Interactor) CancelOffer(ctx context.Context, id int64) (dto.MarketOutput, error) {
	return i.transitionOffer(ctx, id, domain.OfferCancel)
}

func (i *Interactor) ApproveOffer(ctx context.Context, id int64) (dto.MarketOutput, error) {
	return i.transitionOffer(ctx, id, domain.OfferApprove)
}

func (i *Interactor) RejectOffer(ctx context.Context, id int64) (dto.MarketOutput, error) {
	return i.transitionOffer(ctx, id, domain.OfferReject)
}

func (i *Interactor) transitionOffer(ctx context.Context, id int64, action domain.OfferAction) (dto.MarketOutput, error) {
	if _, err := i.svc.TransitionOffer(ctx, id, action); err != nil {
		return dto.MarketOutput{}, err
	}
	if action == domain.OfferApprove {
		i.invalidate(ctx)
	}
	return i.Offers(ctx)
}

// invalidate drops every cached month. Failures only leave stale rosters
// until the TTL runs out.
func (i *Interactor) invalidate(ctx context.Context) {
	if i.schedule == nil {
		return
	}
	if err := i.schedule.InvalidateAll(ctx); err != nil {
		i.log.Warn("invalidate month cache", "error", err)
	}
}

// viewerID is 0 when there is no session, which hides owner actions.
func (i *Interactor) viewerID(ctx context.Context) int64 {
	if i.session == nil {
		return 0
	}
	identity, err := i.session.Current(ctx)
	if err != nil {
		return 0
	}
	id, err := strconv.ParseInt(identity.SubjectID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func toList(b domain.Buckets) dto.ListOutput {
	return dto.ListOutput{
		Incoming:    toRows(domain.TabIncoming, b.Incoming),
		Outgoing:    toRows(domain.TabOutgoing, b.Outgoing),
		Manager:     toRows(domain.TabManager, b.ForApproval),
		ShowManager: b.ShowManagerTab(),
	}
}

func toRows(tab domain.Tab, proposals []domain.Proposal) []dto.RowOutput {
	out := make([]dto.RowOutput, 0, len(proposals))
	for _, p := range proposals {
		row := domain.RowFor(tab, p)
		actions := make([]string, 0, len(row.Actions))
		for _, a := range row.Actions {
			actions = append(actions, string(a))
		}
		out = append(out, dto.RowOutput{
			ID:       row.ID,
			From:     row.From,
			To:       row.To,
			GiveDate: row.GiveDate,
			GiveCode: row.GiveCode,
			GetDate:  row.GetDate,
			GetCode:  row.GetCode,
			Status:   string(row.Status),
			Actions:  actions,
			Fallback: row.Fallback,
		})
	}
	return out
}

func toOffers(offers []domain.Offer, viewer int64) []dto.OfferOutput {
	out := make([]dto.OfferOutput, 0, len(offers))
	for _, o := range offers {
		out = append(out, toOffer(o, viewer))
	}
	return out
}

func toOffer(o domain.Offer, viewer int64) dto.OfferOutput {
	out := dto.OfferOutput{
		ID:        o.ID,
		Status:    string(o.Status),
		Date:      o.Date,
		Code:      o.Code,
		Owner:     dto.PartyOutput{ID: o.Owner.ID, FullName: o.Owner.FullName},
		CreatedAt: o.CreatedAt,
	}
	if o.Candidate != nil {
		out.Candidate = &dto.PartyOutput{ID: o.Candidate.ID, FullName: o.Candidate.FullName}
	}
	for _, a := range domain.OfferActions(o, viewer) {
		out.Actions = append(out.Actions, string(a))
	}
	return out
}

package service

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"grafik/internal/modules/proposal/domain"
	proposalout "grafik/internal/modules/proposal/port/out"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/logging"
)

type ProposalService struct {
	cal       clock.BusinessCalendar
	proposals proposalout.ProposalGateway
	offers    proposalout.OfferGateway
	log       hclog.Logger
}

func NewProposalService(cal clock.BusinessCalendar, proposals proposalout.ProposalGateway, offers proposalout.OfferGateway, logger hclog.Logger) *ProposalService {
	return &ProposalService{cal: cal, proposals: proposals, offers: offers, log: logging.OrNull(logger).Named("proposal")}
}

func (s *ProposalService) List(ctx context.Context) (domain.Buckets, error) {
	raw, err := s.proposals.List(ctx)
	if err != nil {
		return domain.Buckets{}, err
	}
	return domain.Buckets{
		Incoming:    s.extractAll(domain.TabIncoming, raw.Incoming),
		Outgoing:    s.extractAll(domain.TabOutgoing, raw.Outgoing),
		ForApproval: s.extractAll(domain.TabManager, raw.ForApproval),
	}, nil
}

func (s *ProposalService) extractAll(tab domain.Tab, records []domain.Record) []domain.Proposal {
	out := make([]domain.Proposal, 0, len(records))
	for _, rec := range records {
		p, recovered := domain.Extract(rec)
		if len(recovered) > 0 {
			s.log.Warn("proposal fields recovered heuristically", "id", p.ID, "tab", tab, "fields", recovered)
		}
		out = append(out, p)
	}
	return out
}

// Create validates dates and groups locally; a failing check never
// reaches the backend.
func (s *ProposalService) Create(ctx context.Context, req domain.CreateRequest) error {
	var err error
	if req.MyDate, err = normalize(req.MyDate); err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	if req.TheirDate, err = normalize(req.TheirDate); err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	if err := domain.ValidateCreate(req, s.cal.Tomorrow()); err != nil {
		return fmt.Errorf("create proposal: %w", err)
	}
	return s.proposals.Create(ctx, req)
}

func (s *ProposalService) Transition(ctx context.Context, id int64, action domain.Action) error {
	if id <= 0 {
		return fmt.Errorf("%s proposal: %w: id is required", action, apperrors.ErrInvalidInput)
	}
	switch action {
	case domain.ActionAccept, domain.ActionDecline, domain.ActionCancel, domain.ActionApprove, domain.ActionReject:
	default:
		return fmt.Errorf("proposal: %w: unknown action %q", apperrors.ErrInvalidInput, action)
	}
	return s.proposals.Transition(ctx, id, action)
}

func (s *ProposalService) Takeover(ctx context.Context, targetUserID int64, date string) (domain.Offer, error) {
	if targetUserID <= 0 {
		return domain.Offer{}, fmt.Errorf("takeover: %w: target user is required", apperrors.ErrInvalidInput)
	}
	iso, err := normalize(date)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("takeover: %w", err)
	}
	return s.proposals.Takeover(ctx, targetUserID, iso)
}

func (s *ProposalService) Offers(ctx context.Context) (domain.Market, error) {
	return s.offers.Offers(ctx)
}

func (s *ProposalService) CreateOffer(ctx context.Context, shiftID int64) (int64, error) {
	if shiftID <= 0 {
		return 0, fmt.Errorf("create offer: %w: shift id is required", apperrors.ErrInvalidInput)
	}
	return s.offers.Create(ctx, shiftID)
}

func (s *ProposalService) TransitionOffer(ctx context.Context, id int64, action domain.OfferAction) (domain.Offer, error) {
	if id <= 0 {
		return domain.Offer{}, fmt.Errorf("%s offer: %w: id is required", action, apperrors.ErrInvalidInput)
	}
	switch action {
	case domain.OfferClaim, domain.OfferCancel, domain.OfferApprove, domain.OfferReject:
	default:
		return domain.Offer{}, fmt.Errorf("offer: %w: unknown action %q", apperrors.ErrInvalidInput, action)
	}
	return s.offers.Transition(ctx, id, action)
}

func normalize(date string) (string, error) {
	iso, err := clock.NormalizeDate(date)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	return iso, nil
}

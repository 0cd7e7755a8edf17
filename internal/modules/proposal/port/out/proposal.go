package out

import (
	"context"

	"grafik/internal/modules/proposal/domain"
)

// RawBuckets carries undecoded proposal records; extraction happens in
// the service so recovered fields can be logged.
type RawBuckets struct {
	Incoming    []domain.Record
	Outgoing    []domain.Record
	ForApproval []domain.Record
}

type ProposalGateway interface {
	List(ctx context.Context) (RawBuckets, error)
	Create(ctx context.Context, req domain.CreateRequest) error
	Transition(ctx context.Context, id int64, action domain.Action) error
	Takeover(ctx context.Context, targetUserID int64, date string) (domain.Offer, error)
}

type OfferGateway interface {
	Offers(ctx context.Context) (domain.Market, error)
	Create(ctx context.Context, shiftID int64) (int64, error)
	Transition(ctx context.Context, id int64, action domain.OfferAction) (domain.Offer, error)
}

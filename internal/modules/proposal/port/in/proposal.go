package in

import (
	"context"

	"grafik/internal/modules/proposal/dto"
)

type Usecase interface {
	List(ctx context.Context) (dto.ListOutput, error)
	Create(ctx context.Context, input dto.CreateInput) (dto.ListOutput, error)
	Accept(ctx context.Context, id int64) (dto.ListOutput, error)
	Decline(ctx context.Context, id int64) (dto.ListOutput, error)
	Cancel(ctx context.Context, id int64) (dto.ListOutput, error)
	Approve(ctx context.Context, id int64) (dto.ListOutput, error)
	Reject(ctx context.Context, id int64) (dto.ListOutput, error)
	CreateTakeover(ctx context.Context, input dto.TakeoverInput) (dto.OfferOutput, error)

	Offers(ctx context.Context) (dto.MarketOutput, error)
	CreateOffer(ctx context.Context, shiftID int64) (int64, error)
	ClaimOffer(ctx context.Context, id int64) (dto.MarketOutput, error)
	CancelOffer(ctx context.Context, id int64) (dto.MarketOutput, error)
	ApproveOffer(ctx context.Context, id int64) (dto.MarketOutput, error)
	RejectOffer(ctx context.Context, id int64) (dto.MarketOutput, error)
}

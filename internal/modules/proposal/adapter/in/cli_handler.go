package in

import (
	"context"
	"fmt"
	"strings"

	"grafik/internal/modules/proposal/dto"
	proposalin "grafik/internal/modules/proposal/port/in"
	apperrors "grafik/internal/platform/errors"
)

type CLIHandler struct {
	usecase proposalin.Usecase
}

func NewCLIHandler(usecase proposalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) (dto.ListOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Create(ctx context.Context, targetUserID int64, myDate, theirDate, myCode, theirCode string) (dto.ListOutput, error) {
	return h.usecase.Create(ctx, dto.CreateInput{
		TargetUserID: targetUserID,
		MyDate:       myDate,
		TheirDate:    theirDate,
		MyCode:       myCode,
		TheirCode:    theirCode,
	})
}

// Transition dispatches one of accept, decline, cancel, approve, reject.
func (h CLIHandler) Transition(ctx context.Context, verb string, id int64) (dto.ListOutput, error) {
	switch strings.ToLower(verb) {
	case "accept":
		return h.usecase.Accept(ctx, id)
	case "decline":
		return h.usecase.Decline(ctx, id)
	case "cancel":
		return h.usecase.Cancel(ctx, id)
	case "approve":
		return h.usecase.Approve(ctx, id)
	case "reject":
		return h.usecase.Reject(ctx, id)
	default:
		return dto.ListOutput{}, fmt.Errorf("%w: unknown proposal action %q", apperrors.ErrInvalidInput, verb)
	}
}

func (h CLIHandler) Takeover(ctx context.Context, targetUserID int64, date string) (dto.OfferOutput, error) {
	return h.usecase.CreateTakeover(ctx, dto.TakeoverInput{TargetUserID: targetUserID, Date: date})
}

func (h CLIHandler) Offers(ctx context.Context) (dto.MarketOutput, error) {
	return h.usecase.Offers(ctx)
}

func (h CLIHandler) CreateOffer(ctx context.Context, shiftID int64) (int64, error) {
	return h.usecase.CreateOffer(ctx, shiftID)
}

// OfferTransition dispatches one of claim, cancel, approve, reject.
func (h CLIHandler) OfferTransition(ctx context.Context, verb string, id int64) (dto.MarketOutput, error) {
	switch strings.ToLower(verb) {
	case "claim":
		return h.usecase.ClaimOffer(ctx, id)
	case "cancel":
		return h.usecase.CancelOffer(ctx, id)
	case "approve":
		return h.usecase.ApproveOffer(ctx, id)
	case "reject":
		return h.usecase.RejectOffer(ctx, id)
	default:
		return dto.MarketOutput{}, fmt.Errorf("%w: unknown offer action %q", apperrors.ErrInvalidInput, verb)
	}
}

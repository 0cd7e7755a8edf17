package domain

import "strings"

type OfferStatus string

const (
	OfferOpen      OfferStatus = "open"
	OfferRequested OfferStatus = "requested"
	OfferApproved  OfferStatus = "approved"
	OfferRejected  OfferStatus = "rejected"
	OfferCancelled OfferStatus = "cancelled"
)

func ParseOfferStatus(raw string) OfferStatus {
	s := OfferStatus(strings.ToLower(strings.TrimSpace(raw)))
	if s == "canceled" {
		return OfferCancelled
	}
	return s
}

type OfferAction string

const (
	OfferClaim   OfferAction = "claim"
	OfferCancel  OfferAction = "cancel"
	OfferApprove OfferAction = "approve"
	OfferReject  OfferAction = "reject"
)

// Offer is a shift put on the market, or a takeover request for one.
type Offer struct {
	ID        int64
	Status    OfferStatus
	Date      string
	Code      string
	Owner     Party
	Candidate *Party
	CreatedAt string
}

// OfferActions decides the market buttons from the viewer and status.
func OfferActions(o Offer, viewerID int64) []OfferAction {
	owner := viewerID != 0 && o.Owner.ID == viewerID
	switch {
	case !owner && o.Status == OfferOpen:
		return []OfferAction{OfferClaim}
	case owner && o.Status == OfferOpen:
		return []OfferAction{OfferCancel}
	case owner && o.Status == OfferRequested:
		return []OfferAction{OfferApprove, OfferReject, OfferCancel}
	default:
		return nil
	}
}

// Market is the offers list: open offers of others and the viewer's own.
type Market struct {
	Open []Offer
	Mine []Offer
}

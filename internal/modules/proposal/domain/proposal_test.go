package domain_test

import (
	"errors"
	"reflect"
	"testing"

	"grafik/internal/modules/proposal/domain"
	apperrors "grafik/internal/platform/errors"
)

func TestActionsGrid(t *testing.T) {
	t.Parallel()
	statuses := []domain.Status{
		domain.StatusPending, domain.StatusAccepted, domain.StatusDeclined,
		domain.StatusCancelled, domain.ParseStatus("canceled"), domain.StatusApproved,
		domain.StatusRejected, domain.Status("weird"),
	}
	want := map[domain.Tab]map[domain.Status][]domain.Action{
		domain.TabIncoming: {domain.StatusPending: {domain.ActionAccept, domain.ActionDecline}},
		domain.TabOutgoing: {domain.StatusPending: {domain.ActionCancel}},
		domain.TabManager:  {domain.StatusAccepted: {domain.ActionApprove, domain.ActionReject}},
	}
	for _, tab := range []domain.Tab{domain.TabIncoming, domain.TabOutgoing, domain.TabManager} {
		for _, status := range statuses {
			got := domain.Actions(tab, status)
			expected := want[tab][status]
			if len(got) != len(expected) || (len(got) > 0 && !reflect.DeepEqual(got, expected)) {
				t.Fatalf("actions(%s, %s) = %v, want %v", tab, status, got, expected)
			}
		}
	}
	if !domain.Allows(domain.TabManager, domain.StatusAccepted, domain.ActionReject) {
		t.Fatalf("manager must be able to reject an accepted proposal")
	}
	if domain.Allows(domain.TabIncoming, domain.StatusAccepted, domain.ActionAccept) {
		t.Fatalf("accepted proposal must not be accepted again")
	}
}

func TestParseStatusSpellings(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"canceled", "cancelled", " Cancelled "} {
		s := domain.ParseStatus(raw)
		if s != domain.StatusCancelled || !s.IsCancelled() || !s.Terminal() {
			t.Fatalf("%q parsed to %q", raw, s)
		}
	}
	if domain.StatusPending.Terminal() || domain.StatusAccepted.Terminal() {
		t.Fatalf("pending and accepted are not terminal")
	}
}

func TestParseTab(t *testing.T) {
	t.Parallel()
	if tab, err := domain.ParseTab("for_approval"); err != nil || tab != domain.TabManager {
		t.Fatalf("alias must map to the manager tab, got %q %v", tab, err)
	}
	if _, err := domain.ParseTab("archive"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestRowForSwapsLabelsOnIncoming(t *testing.T) {
	t.Parallel()
	p := domain.Proposal{
		ID:        7,
		Requester: domain.Party{ID: 1, FullName: "Anna"},
		Target:    domain.Party{ID: 2, FullName: "Jan"},
		MyDate:    "2026-05-12",
		TheirDate: "2026-05-14",
		GiveCode:  "1",
		TakeCode:  "2",
		Status:    domain.StatusPending,
	}
	out := domain.RowFor(domain.TabOutgoing, p)
	if out.GiveDate != "2026-05-12" || out.GiveCode != "1" || out.GetDate != "2026-05-14" || out.GetCode != "2" {
		t.Fatalf("unexpected outgoing row %+v", out)
	}
	in := domain.RowFor(domain.TabIncoming, p)
	if in.GiveDate != out.GetDate || in.GetDate != out.GiveDate || in.GiveCode != out.GetCode || in.GetCode != out.GiveCode {
		t.Fatalf("incoming row must swap give and get: %+v vs %+v", in, out)
	}
	if in.From != "Anna" || in.To != "Jan" {
		t.Fatalf("names must not swap: %+v", in)
	}
	manager := domain.RowFor(domain.TabManager, p)
	if manager.GiveDate != out.GiveDate || len(manager.Actions) != 0 {
		t.Fatalf("manager row must use outgoing labels and no actions for pending: %+v", manager)
	}
}

func TestValidateCreate(t *testing.T) {
	t.Parallel()
	const tomorrow = "2026-05-11"
	cases := []struct {
		name string
		req  domain.CreateRequest
		want error
	}{
		{"today rejected", domain.CreateRequest{TargetUserID: 2, MyDate: "2026-05-10", TheirDate: "2026-05-12"}, apperrors.ErrPastDate},
		{"their today rejected", domain.CreateRequest{TargetUserID: 2, MyDate: "2026-05-12", TheirDate: "2026-05-10"}, apperrors.ErrPastDate},
		{"tomorrow accepted", domain.CreateRequest{TargetUserID: 2, MyDate: tomorrow, TheirDate: tomorrow, MyCode: "1", TheirCode: "2/B"}, nil},
		{"same group same day", domain.CreateRequest{TargetUserID: 2, MyDate: tomorrow, TheirDate: tomorrow, MyCode: "1", TheirCode: "B"}, apperrors.ErrSameGroup},
		{"unknown codes skip group check", domain.CreateRequest{TargetUserID: 2, MyDate: tomorrow, TheirDate: tomorrow}, nil},
		{"missing target", domain.CreateRequest{MyDate: tomorrow, TheirDate: tomorrow}, apperrors.ErrInvalidInput},
		{"missing date", domain.CreateRequest{TargetUserID: 2, MyDate: tomorrow}, apperrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		err := domain.ValidateCreate(tc.req, tomorrow)
		if tc.want == nil && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestOfferActions(t *testing.T) {
	t.Parallel()
	const viewer = 5
	cases := []struct {
		owner  int64
		status domain.OfferStatus
		want   []domain.OfferAction
	}{
		{9, domain.OfferOpen, []domain.OfferAction{domain.OfferClaim}},
		{9, domain.OfferRequested, nil},
		{viewer, domain.OfferOpen, []domain.OfferAction{domain.OfferCancel}},
		{viewer, domain.OfferRequested, []domain.OfferAction{domain.OfferApprove, domain.OfferReject, domain.OfferCancel}},
		{viewer, domain.OfferApproved, nil},
		{viewer, domain.ParseOfferStatus("canceled"), nil},
		{9, domain.OfferRejected, nil},
	}
	for _, tc := range cases {
		got := domain.OfferActions(domain.Offer{Owner: domain.Party{ID: tc.owner}, Status: tc.status}, viewer)
		if len(got) != len(tc.want) || (len(got) > 0 && !reflect.DeepEqual(got, tc.want)) {
			t.Fatalf("owner=%d status=%s: got %v, want %v", tc.owner, tc.status, got, tc.want)
		}
	}
}

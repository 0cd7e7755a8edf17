package offers

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	proposaldto "grafik/internal/modules/proposal/dto"
	"grafik/internal/ui/components"
)

type fakePort struct {
	market proposaldto.MarketOutput
	verbs  []string
	posted []int64
}

func (f *fakePort) Offers(context.Context) (proposaldto.MarketOutput, error) { return f.market, nil }

func (f *fakePort) CreateOffer(_ context.Context, shiftID int64) (int64, error) {
	f.posted = append(f.posted, shiftID)
	return 9, nil
}

func (f *fakePort) OfferTransition(_ context.Context, verb string, _ int64) (proposaldto.MarketOutput, error) {
	f.verbs = append(f.verbs, verb)
	return f.market, nil
}

func (f *fakePort) Takeover(context.Context, int64, string) (proposaldto.OfferOutput, error) {
	return proposaldto.OfferOutput{}, errors.New("already requested")
}

func loaded(t *testing.T, port *fakePort) Model {
	t.Helper()
	m := New(port, "en")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m, _ = m.Update(m.Init()())
	return m
}

func TestMarketPlaceholdersAndClaim(t *testing.T) {
	t.Parallel()
	port := &fakePort{market: proposaldto.MarketOutput{Open: []proposaldto.OfferOutput{{
		ID: 3, Date: "2026-05-21", Code: "2", Owner: proposaldto.PartyOutput{FullName: "Piotr"}, Status: "open", Actions: []string{"claim"},
	}}}}
	m := loaded(t, port)

	items := m.list.Items()
	if len(items) != 2 {
		t.Fatalf("expected the offer and one placeholder, got %d", len(items))
	}
	if empty, ok := items[1].(emptyItem); !ok || empty.text != "You are not offering any shift" {
		t.Fatalf("unexpected placeholder %+v", items[1])
	}

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		if _, ok := cmd().(MarketMsg); ok {
			t.Fatalf("reject is not offered")
		}
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("claim must run")
	}
	if msg, ok := cmd().(MarketMsg); !ok || msg.Action != "claim" || len(port.verbs) != 1 {
		t.Fatalf("expected a claim, got %+v %v", msg, port.verbs)
	}
}

func TestPostedResults(t *testing.T) {
	t.Parallel()
	port := &fakePort{}
	m := loaded(t, port)

	posted := m.Offer(12)().(PostedMsg)
	if posted.Err != nil || posted.Action != "offered" || port.posted[0] != 12 {
		t.Fatalf("unexpected offer result %+v", posted)
	}
	if _, cmd := m.Update(posted); cmd == nil {
		t.Fatalf("a posted offer must reload the market")
	}

	failed := m.Takeover(4, "2026-05-21")().(PostedMsg)
	_, cmd := m.Update(failed)
	if cmd == nil {
		t.Fatalf("expected a failure")
	}
	if _, ok := cmd().(components.FailedMsg); !ok {
		t.Fatalf("takeover errors must be reported")
	}
}

package stats

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	accountdto "grafik/internal/modules/account/dto"
	scheduledto "grafik/internal/modules/schedule/dto"
	"grafik/internal/platform/clock"
	"grafik/internal/ui/components"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeAccount struct {
	calls []string
	err   error
}

func (f *fakeAccount) Stats(_ context.Context, month, path string) (accountdto.StatsOutput, error) {
	f.calls = append(f.calls, month+"|"+path)
	if f.err != nil {
		return accountdto.StatsOutput{}, f.err
	}
	return accountdto.StatsOutput{Month: month, HoursDone: 40, HoursTotal: 120, TargetHours: 160, TargetPercent: 25, Rate: 30.5, Tax: 12}, nil
}

type fakeNext struct{}

func (fakeNext) NextShift(context.Context) (scheduledto.NextShiftOutput, error) {
	return scheduledto.NextShiftOutput{Date: "2026-05-12", Code: "1", Hours: 8, MonthDone: 5, MonthTotal: 15}, nil
}

func newModel(t *testing.T, account *fakeAccount) Model {
	t.Helper()
	cal, err := clock.NewBusinessCalendar(fixedClock{now: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}, clock.DefaultZone)
	if err != nil {
		t.Fatal(err)
	}
	m := New(account, fakeNext{}, cal)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestStatsShowNextShiftAndTotals(t *testing.T) {
	t.Parallel()
	m := newModel(t, &fakeAccount{})
	m, _ = m.Update(m.Init()())
	body := m.render()
	for _, want := range []string{"Stats 2026-05", "Next shift 2026-05-12 1 (8.0h)", "5/15 this month", "rate 30.50 PLN/h  tax 12%"} {
		if !strings.Contains(body, want) {
			t.Fatalf("missing %q in:\n%s", want, body)
		}
	}
}

func TestExportKeepsMonthAndReportsPath(t *testing.T) {
	t.Parallel()
	account := &fakeAccount{}
	m := newModel(t, account)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("[")})
	m, _ = m.Update(cmd())
	msg := m.Export("/tmp/april.xlsx")().(LoadedMsg)
	if msg.Exported != "/tmp/april.xlsx" || account.calls[len(account.calls)-1] != "2026-04|/tmp/april.xlsx" {
		t.Fatalf("export went to %v", account.calls)
	}
}

func TestStatsFailureIsReported(t *testing.T) {
	t.Parallel()
	m := newModel(t, &fakeAccount{err: errors.New("boom")})
	_, cmd := m.Update(m.Init()())
	if cmd == nil {
		t.Fatalf("expected a failure")
	}
	if failed, ok := cmd().(components.FailedMsg); !ok || failed.Destination != Destination {
		t.Fatalf("expected FailedMsg for %s", Destination)
	}
}

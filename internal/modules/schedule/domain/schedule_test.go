package domain_test

import (
	"errors"
	"testing"

	"grafik/internal/modules/schedule/domain"
	apperrors "grafik/internal/platform/errors"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestGroupOf(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Group{
		"1":    domain.GroupMorning,
		"1/B":  domain.GroupMorning,
		"2":    domain.GroupEvening,
		" 2/B": domain.GroupEvening,
		"B":    domain.GroupMorning,
		"":     domain.GroupMorning,
	}
	for code, want := range cases {
		if got := domain.GroupOf(code); got != want {
			t.Fatalf("GroupOf(%q) = %q, want %q", code, got, want)
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name string
		in   domain.Assignment
		want domain.Chip
	}{
		{"coordinator beats dishwasher", domain.Assignment{Coordinator: true, Dishwasher: true, CoordLounge: "Polonez"}, domain.Chip{Kind: domain.ChipCoordinator, Lounge: "polonez"}},
		{"coordinator unknown lounge", domain.Assignment{Coordinator: true, CoordLounge: "sala"}, domain.Chip{Kind: domain.ChipCoordinator}},
		{"dishwasher beats bar", domain.Assignment{Dishwasher: true, Code: "1/B"}, domain.Chip{Kind: domain.ChipDishwasher}},
		{"bar flag", domain.Assignment{Code: "1", BarToday: boolPtr(true)}, domain.Chip{Kind: domain.ChipBar}},
		{"bar flag false beats code", domain.Assignment{Code: "1/B", BarToday: boolPtr(false)}, domain.Chip{Kind: domain.ChipRegular}},
		{"bar from code", domain.Assignment{Code: "2/b"}, domain.Chip{Kind: domain.ChipBar}},
		{"bar alone", domain.Assignment{Code: "B"}, domain.Chip{Kind: domain.ChipBar}},
		{"no bar inside word", domain.Assignment{Code: "1B"}, domain.Chip{Kind: domain.ChipRegular}},
		{"regular", domain.Assignment{Code: "1"}, domain.Chip{Kind: domain.ChipRegular}},
	}
	for _, tc := range cases {
		if got := domain.Classify(tc.in); got != tc.want {
			t.Fatalf("%s: got %+v want %+v", tc.name, got, tc.want)
		}
	}
}

func TestSortAssignments(t *testing.T) {
	t.Parallel()
	rows := []domain.Assignment{
		{FullName: "Zmywak", Dishwasher: true},
		{FullName: "Ewa", Code: "1", OrderIndex: intPtr(2)},
		{FullName: "Adam", Code: "1"},
		{FullName: "Bartek", Code: "1", OrderIndex: intPtr(1)},
		{FullName: "Barman", Code: "1/B"},
		{FullName: "Koordynator", Coordinator: true},
		{FullName: "Mazurek", Coordinator: true, CoordLounge: "mazurek"},
	}
	domain.SortAssignments(rows)
	want := []string{"Mazurek", "Koordynator", "Barman", "Bartek", "Ewa", "Adam", "Zmywak"}
	for i, name := range want {
		if rows[i].FullName != name {
			t.Fatalf("position %d: got %q want %q (%+v)", i, rows[i].FullName, name, rows)
		}
	}
}

func TestLadderHidesPastDaysAndOrders(t *testing.T) {
	t.Parallel()
	month := domain.Month{Year: 2026, Month: 5, Days: map[string]domain.Day{
		"2026-05-12": {Morning: []domain.Assignment{{FullName: "B"}, {FullName: "A"}}},
		"2026-05-03": {},
		"2026-05-10": {Evening: []domain.Assignment{{FullName: "C", Code: "2"}}},
	}}
	days := domain.Ladder(month, "2026-05-10")
	if len(days) != 2 || days[0].Date != "2026-05-10" || days[1].Date != "2026-05-12" {
		t.Fatalf("unexpected ladder %+v", days)
	}
	if days[1].Morning[0].FullName != "A" {
		t.Fatalf("expected sorted roster inside ladder day")
	}
	if all := domain.Ladder(month, ""); len(all) != 3 {
		t.Fatalf("empty from must show all days, got %d", len(all))
	}
}

func TestSwapCandidates(t *testing.T) {
	t.Parallel()
	mine := []domain.Shift{
		{ID: 5, Date: "2026-05-20", Code: "1"},
		{ID: 1, Date: "2026-05-10", Code: "1"},
		{ID: 2, Date: "2026-05-11", Code: "1"},
		{ID: 3, Date: "2026-05-15", Code: "2"},
		{ID: 4, Date: "2026-05-15", Code: "1/B"},
	}
	got := domain.SwapCandidates(mine, "2026-05-15", "2", "2026-05-11")
	ids := []int64{}
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	want := []int64{2, 4, 5}
	if len(ids) != len(want) {
		t.Fatalf("got %v want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("got %v want %v", ids, want)
		}
	}
}

func TestCheckTakeover(t *testing.T) {
	t.Parallel()
	mine := []domain.Shift{{Date: "2026-05-12"}}
	if err := domain.CheckTakeover(mine, "2026-05-10", "2026-05-11"); !errors.Is(err, apperrors.ErrPastDate) {
		t.Fatalf("today must be rejected, got %v", err)
	}
	if err := domain.CheckTakeover(mine, "2026-05-11", "2026-05-11"); err != nil {
		t.Fatalf("tomorrow must be accepted, got %v", err)
	}
	if err := domain.CheckTakeover(mine, "2026-05-12", "2026-05-11"); !errors.Is(err, apperrors.ErrAlreadyWorking) {
		t.Fatalf("own shift day must be rejected, got %v", err)
	}
}

func TestMonthKey(t *testing.T) {
	t.Parallel()
	if got := domain.MonthKey(2026, 5); got != "monthCache:2026-05" {
		t.Fatalf("unexpected key %q", got)
	}
}

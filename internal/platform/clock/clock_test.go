package clock_test

import (
	"testing"
	"time"

	"grafik/internal/platform/clock"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func TestBusinessCalendarUsesWarsawDate(t *testing.T) {
	t.Parallel()
	// 23:30 UTC on 31 March is already 1 April in Warsaw (CEST, UTC+2).
	cal, err := clock.NewBusinessCalendar(fixedClock{now: time.Date(2026, 3, 31, 23, 30, 0, 0, time.UTC)}, "")
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}
	if got := cal.Today(); got != "2026-04-01" {
		t.Fatalf("expected warsaw today 2026-04-01, got %s", got)
	}
	if got := cal.Tomorrow(); got != "2026-04-02" {
		t.Fatalf("expected tomorrow 2026-04-02, got %s", got)
	}
	if cal.IsFromTomorrow("2026-04-01") {
		t.Fatalf("today must not count as from tomorrow")
	}
	if !cal.IsFromTomorrow("2026-04-02") {
		t.Fatalf("tomorrow must be accepted")
	}
	if got := cal.CurrentMonth(); got != "2026-04" {
		t.Fatalf("expected current month 2026-04, got %s", got)
	}
}

func TestBusinessCalendarRejectsUnknownZone(t *testing.T) {
	t.Parallel()
	if _, err := clock.NewBusinessCalendar(clock.SystemClock{}, "Mars/Olympus"); err == nil {
		t.Fatalf("expected unknown zone error")
	}
}

func TestNormalizeDate(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"2026-05-07":           "2026-05-07",
		"2026-05-07T10:00:00Z": "2026-05-07",
		"07.05.2026":           "2026-05-07",
		"07/05/2026":           "2026-05-07",
		" 07-05-2026 ":         "2026-05-07",
	}
	for in, want := range cases {
		got, err := clock.NormalizeDate(in)
		if err != nil || got != want {
			t.Fatalf("normalize %q: got %q err=%v", in, got, err)
		}
	}
	if _, err := clock.NormalizeDate("tomorrow"); err == nil {
		t.Fatalf("expected error for free text")
	}
}

func TestMonthOfAndSpanHours(t *testing.T) {
	t.Parallel()
	y, m, err := clock.MonthOf("2026-11-03")
	if err != nil || y != 2026 || m != 11 {
		t.Fatalf("month of: %d %d %v", y, m, err)
	}
	if _, _, err := clock.MonthOf("11"); err == nil {
		t.Fatalf("expected short month error")
	}
	h, err := clock.SpanHours("22:00", "06:30")
	if err != nil || h != 8.5 {
		t.Fatalf("expected overnight span 8.5, got %v %v", h, err)
	}
	if _, err := clock.SpanHours("9", "17:00"); err == nil {
		t.Fatalf("expected HH:MM error")
	}
}

package clock

import (
	"fmt"
	"strings"
	"time"

	// Embeds the zone database so Europe/Warsaw resolves on hosts without one.
	_ "time/tzdata"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	DefaultZone = "Europe/Warsaw"
)

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// BusinessCalendar answers "what day is it" in the organisation's
// reference timezone rather than the host's.
type BusinessCalendar struct {
	clock Clock
	loc   *time.Location
}

func NewBusinessCalendar(clk Clock, zone string) (BusinessCalendar, error) {
	if clk == nil {
		clk = SystemClock{}
	}
	if strings.TrimSpace(zone) == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return BusinessCalendar{}, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return BusinessCalendar{clock: clk, loc: loc}, nil
}

func (c BusinessCalendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c BusinessCalendar) Now() time.Time {
	if c.clock == nil {
		return time.Now().In(c.Location())
	}
	return c.clock.Now().In(c.Location())
}

// Today returns the current business date as YYYY-MM-DD.
func (c BusinessCalendar) Today() string {
	return c.dayOffset(0)
}

// Tomorrow returns the first date on which swaps and takeovers are allowed.
func (c BusinessCalendar) Tomorrow() string {
	return c.dayOffset(1)
}

// CurrentMonth returns YYYY-MM for today's business date.
func (c BusinessCalendar) CurrentMonth() string {
	return c.Now().Format(MonthLayout)
}

// IsFromTomorrow reports whether an ISO date lies strictly after today.
func (c BusinessCalendar) IsFromTomorrow(date string) bool {
	return date >= c.Tomorrow()
}

func (c BusinessCalendar) dayOffset(days int) string {
	y, m, d := c.Now().Date()
	// Noon keeps the arithmetic clear of DST transitions.
	return time.Date(y, m, d+days, 12, 0, 0, 0, c.Location()).Format(DateLayout)
}

// NormalizeDate accepts YYYY-MM-DD or DD.MM.YYYY (also with / or -) and
// returns the ISO form.
func NormalizeDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 10 {
		if t, err := time.Parse(DateLayout, s[:10]); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	for _, layout := range []string{"02.01.2006", "02/01/2006", "02-01-2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognised date %q", raw)
}

// MonthOf splits an ISO date or YYYY-MM string into year and month.
func MonthOf(value string) (int, int, error) {
	s := strings.TrimSpace(value)
	if len(s) < 7 {
		return 0, 0, fmt.Errorf("unrecognised month %q", value)
	}
	t, err := time.Parse(MonthLayout, s[:7])
	if err != nil {
		return 0, 0, fmt.Errorf("unrecognised month %q", value)
	}
	return t.Year(), int(t.Month()), nil
}

// ParseClock parses HH:MM into minutes after midnight.
func ParseClock(value string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("time must be HH:MM, got %q", value)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// SpanHours returns the hours between two HH:MM marks, wrapping past midnight.
func SpanHours(from, to string) (float64, error) {
	start, err := ParseClock(from)
	if err != nil {
		return 0, err
	}
	end, err := ParseClock(to)
	if err != nil {
		return 0, err
	}
	if end < start {
		end += 24 * 60
	}
	return float64(end-start) / 60, nil
}

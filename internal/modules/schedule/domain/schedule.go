package domain

import (
	"fmt"
	"strings"
	"time"
)

// Group is the half of the day a shift code belongs to.
type Group string

const (
	GroupMorning Group = "morning"
	GroupEvening Group = "evening"
)

// GroupOf maps a shift code to its group: a leading "2" is evening,
// anything else is morning.
func GroupOf(code string) Group {
	if strings.HasPrefix(strings.TrimSpace(code), "2") {
		return GroupEvening
	}
	return GroupMorning
}

// Shift is one of the viewer's own scheduled assignments.
type Shift struct {
	ID          int64
	UserID      int64
	FullName    string
	Date        string
	Code        string
	Hours       float64
	WorkedHours *float64
	Lounge      string
	CoordLounge string
	ActualStart string
	ActualEnd   string
}

func (s Shift) Group() Group { return GroupOf(s.Code) }

func (s Shift) CheckedIn() bool  { return s.ActualStart != "" }
func (s Shift) CheckedOut() bool { return s.ActualEnd != "" }

// Assignment is one person on a day roster.
type Assignment struct {
	UserID      int64
	FullName    string
	Code        string
	Hours       float64
	OrderIndex  *int
	Coordinator bool
	Dishwasher  bool
	// BarToday is nil when the backend did not say.
	BarToday    *bool
	Lounge      string
	CoordLounge string
}

type Day struct {
	Date    string
	Morning []Assignment
	Evening []Assignment
}

func (d Day) Empty() bool { return len(d.Morning) == 0 && len(d.Evening) == 0 }

// Month is a month roster keyed by ISO date.
type Month struct {
	Year  int
	Month int
	Days  map[string]Day
}

// CachedMonth is a month roster plus the moment it was fetched.
type CachedMonth struct {
	Month    Month
	StoredAt time.Time
}

// MonthKey names the cache entry for a month.
func MonthKey(year, month int) string {
	return fmt.Sprintf("monthCache:%04d-%02d", year, month)
}

type NextShift struct {
	Empty      bool
	Date       string
	Code       string
	Hours      float64
	MonthTotal int
	MonthDone  int
}

// Worklog is either an explicit hour count or a start/end pair.
type Worklog struct {
	WorkedHours *float64
	Start       string
	End         string
	Note        string
}

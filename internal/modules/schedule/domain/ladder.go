package domain

import (
	"sort"

	apperrors "grafik/internal/platform/errors"
)

// Ladder lists the month's days in date order, hiding days before from.
// An empty from shows every day.
func Ladder(m Month, from string) []Day {
	days := make([]Day, 0, len(m.Days))
	for date, day := range m.Days {
		if from != "" && date < from {
			continue
		}
		day.Date = date
		days = append(days, day.Sorted())
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days
}

// SwapCandidates returns the viewer's shifts that may be offered for a
// target shift: from tomorrow on, and on the target's own day only from
// the other group.
func SwapCandidates(mine []Shift, targetDate, targetCode, tomorrow string) []Shift {
	targetGroup := GroupOf(targetCode)
	out := make([]Shift, 0, len(mine))
	for _, s := range mine {
		if s.Date < tomorrow {
			continue
		}
		if s.Date == targetDate && s.Group() == targetGroup {
			continue
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CheckTakeover applies the advisory guards for taking someone's shift.
func CheckTakeover(mine []Shift, date, tomorrow string) error {
	if date < tomorrow {
		return apperrors.ErrPastDate
	}
	for _, s := range mine {
		if s.Date == date {
			return apperrors.ErrAlreadyWorking
		}
	}
	return nil
}

package domain

import (
	"regexp"
	"sort"
	"strings"
)

type ChipKind string

const (
	ChipCoordinator ChipKind = "coordinator"
	ChipBar         ChipKind = "bar"
	ChipRegular     ChipKind = "regular"
	ChipDishwasher  ChipKind = "dishwasher"
)

const (
	LoungeMazurek = "mazurek"
	LoungePolonez = "polonez"
)

// Chip is how one assignment is drawn on a day roster.
type Chip struct {
	Kind ChipKind
	// Lounge is set only for coordinators of a named lounge.
	Lounge string
}

var barCode = regexp.MustCompile(`(?i)(^|[/\s])B($|[/\s])`)

// Classify decides the chip. Coordinator wins over dishwasher, which wins
// over bar; the bar flag from the backend beats the code heuristic.
func Classify(a Assignment) Chip {
	if a.Coordinator {
		lounge := strings.ToLower(strings.TrimSpace(a.CoordLounge))
		if lounge != LoungeMazurek && lounge != LoungePolonez {
			lounge = ""
		}
		return Chip{Kind: ChipCoordinator, Lounge: lounge}
	}
	if a.Dishwasher {
		return Chip{Kind: ChipDishwasher}
	}
	if a.BarToday != nil {
		if *a.BarToday {
			return Chip{Kind: ChipBar}
		}
		return Chip{Kind: ChipRegular}
	}
	if barCode.MatchString(strings.TrimSpace(a.Code)) {
		return Chip{Kind: ChipBar}
	}
	return Chip{Kind: ChipRegular}
}

// Rank orders chips inside a group, lowest first.
func (c Chip) Rank() int {
	switch c.Kind {
	case ChipCoordinator:
		if c.Lounge != "" {
			return 0
		}
		return 1
	case ChipBar:
		return 2
	case ChipRegular:
		return 3
	default:
		return 4
	}
}

// SortAssignments orders a group by chip rank, then order index with
// missing values last, then name.
func SortAssignments(rows []Assignment) {
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := Classify(rows[i]).Rank(), Classify(rows[j]).Rank()
		if ri != rj {
			return ri < rj
		}
		oi, oj := rows[i].OrderIndex, rows[j].OrderIndex
		switch {
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		}
		return rows[i].FullName < rows[j].FullName
	})
}

// Sorted returns a copy of the day with both groups ordered.
func (d Day) Sorted() Day {
	out := Day{Date: d.Date, Morning: append([]Assignment(nil), d.Morning...), Evening: append([]Assignment(nil), d.Evening...)}
	SortAssignments(out.Morning)
	SortAssignments(out.Evening)
	return out
}

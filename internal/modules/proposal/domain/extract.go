package domain

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"grafik/internal/platform/clock"
)

// Record is one proposal as decoded from JSON, before extraction.
type Record map[string]any

// MaxFallbackDepth bounds how far the heuristic search descends.
const MaxFallbackDepth = 4

var (
	isoDateRe  = regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`)
	dmyDateRe  = regexp.MustCompile(`\b\d{2}[./-]\d{2}[./-]\d{4}\b`)
	shiftCodeR = regexp.MustCompile(`^(?:[12](?:/B)?|B)$`)
)

type side int

const (
	sideNone side = iota
	sideGive
	sideTake
)

var (
	giveWords = map[string]bool{"give": true, "from": true, "my": true}
	takeWords = map[string]bool{"take": true, "to": true, "their": true}
)

// Extract reads the explicit schema and recovers missing fields from the
// rest of the record. It returns the names of recovered fields.
func Extract(rec Record) (Proposal, []string) {
	p := Proposal{
		ID:        intField(rec["id"]),
		Requester: partyField(rec["requester"]),
		Target:    partyField(rec["target_user"]),
		MyDate:    dateField(rec["my_date"]),
		TheirDate: dateField(rec["their_date"]),
		GiveCode:  codeField(rec["give_code"]),
		TakeCode:  codeField(rec["take_code"]),
		Status:    ParseStatus(stringField(rec["status"])),
		CreatedAt: stringField(rec["created_at"]),
	}

	var recovered []string
	if p.Requester.FullName == "" {
		if name := firstName(rec, "requester_user", "requester_name", "from"); name != "" {
			p.Requester.FullName = name
			recovered = append(recovered, "requester")
		}
	}
	if p.Target.FullName == "" {
		if name := firstName(rec, "target", "target_name", "to"); name != "" {
			p.Target.FullName = name
			recovered = append(recovered, "target_user")
		}
	}

	if p.MyDate == "" || p.TheirDate == "" || p.GiveCode == "" || p.TakeCode == "" {
		found := scan(rec)
		if p.MyDate == "" && found.giveDate != "" {
			p.MyDate = found.giveDate
			recovered = append(recovered, "my_date")
		}
		if p.TheirDate == "" && found.takeDate != "" {
			p.TheirDate = found.takeDate
			recovered = append(recovered, "their_date")
		}
		if p.GiveCode == "" && found.giveCode != "" {
			p.GiveCode = found.giveCode
			recovered = append(recovered, "give_code")
		}
		if p.TakeCode == "" && found.takeCode != "" {
			p.TakeCode = found.takeCode
			recovered = append(recovered, "take_code")
		}
	}
	p.Fallback = len(recovered) > 0
	return p, recovered
}

type scanResult struct {
	giveDate, takeDate string
	giveCode, takeCode string
}

// scan walks the record to MaxFallbackDepth and keeps the first date and
// code found on each side. Keys are visited in sorted order so the result
// does not depend on map iteration.
func scan(rec Record) scanResult {
	var out scanResult
	var walk func(v any, s side, depth int)
	walk = func(v any, s side, depth int) {
		if depth > MaxFallbackDepth {
			return
		}
		switch x := v.(type) {
		case map[string]any:
			keys := make([]string, 0, len(x))
			for k := range x {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				walk(x[k], sideOf(k, s), depth+1)
			}
		case []any:
			for _, item := range x {
				walk(item, s, depth+1)
			}
		case string:
			if s == sideNone {
				return
			}
			if date := findDate(x); date != "" {
				if s == sideGive && out.giveDate == "" {
					out.giveDate = date
				}
				if s == sideTake && out.takeDate == "" {
					out.takeDate = date
				}
				return
			}
			if code := strings.TrimSpace(x); shiftCodeR.MatchString(code) {
				if s == sideGive && out.giveCode == "" {
					out.giveCode = code
				}
				if s == sideTake && out.takeCode == "" {
					out.takeCode = code
				}
			}
		}
	}
	walk(map[string]any(rec), sideNone, 0)
	return out
}

// sideOf classifies a path segment by its underscore-separated words. A
// segment naming neither side inherits the parent's side.
func sideOf(segment string, parent side) side {
	for _, word := range strings.FieldsFunc(strings.ToLower(segment), func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	}) {
		if giveWords[word] {
			return sideGive
		}
		if takeWords[word] {
			return sideTake
		}
	}
	return parent
}

func findDate(s string) string {
	if m := isoDateRe.FindString(s); m != "" {
		return m
	}
	if m := dmyDateRe.FindString(s); m != "" {
		if iso, err := clock.NormalizeDate(m); err == nil {
			return iso
		}
	}
	return ""
}

func dateField(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	if iso, err := clock.NormalizeDate(s); err == nil {
		return iso
	}
	return ""
}

func codeField(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

func intField(v any) int64 {
	switch x := v.(type) {
	case float64:
		return int64(x)
	case int64:
		return x
	case int:
		return int64(x)
	case string:
		n, _ := strconv.ParseInt(x, 10, 64)
		return n
	default:
		return 0
	}
}

func partyField(v any) Party {
	switch x := v.(type) {
	case map[string]any:
		return Party{ID: intField(x["id"]), FullName: nameOf(x)}
	case string:
		return Party{FullName: strings.TrimSpace(x)}
	default:
		return Party{}
	}
}

func nameOf(m map[string]any) string {
	for _, k := range []string{"full_name", "fullName", "name", "display_name", "email"} {
		if s, ok := m[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstName(rec Record, keys ...string) string {
	for _, k := range keys {
		if name := partyField(rec[k]).FullName; name != "" {
			return name
		}
	}
	return ""
}

package domain

import (
	"fmt"
	"slices"
	"strings"

	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
)

// Field names of the coordinator's end-of-shift report form.
var (
	ReportBars  = []string{"bar0", "bar1", "bar2", "bar-elita", "zmiwak", "barman"}
	ReportTimes = []string{"arrived", "left"}
	ReportNotes = []string{"past", "missing", "passengers"}
)

var (
	reportLounges = []string{"mazurek", "polonez"}
	reportShifts  = []string{"morning", "evening"}
)

// ReportKey identifies one report: a lounge, a shift and a date.
type ReportKey struct {
	Lounge    string
	ShiftType string
	Date      string
}

func (k ReportKey) Normalize() (ReportKey, error) {
	k.Lounge = strings.ToLower(strings.TrimSpace(k.Lounge))
	k.ShiftType = strings.ToLower(strings.TrimSpace(k.ShiftType))
	if !slices.Contains(reportLounges, k.Lounge) {
		return k, fmt.Errorf("%w: lounge must be one of %s, got %q", apperrors.ErrInvalidInput, strings.Join(reportLounges, "|"), k.Lounge)
	}
	if !slices.Contains(reportShifts, k.ShiftType) {
		return k, fmt.Errorf("%w: shift must be one of %s, got %q", apperrors.ErrInvalidInput, strings.Join(reportShifts, "|"), k.ShiftType)
	}
	iso, err := clock.NormalizeDate(k.Date)
	if err != nil {
		return k, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	k.Date = iso
	return k, nil
}

// Report is the coordinator's shift report. A zero ID means nothing has
// been saved for the key yet.
type Report struct {
	ReportKey
	ID        int64
	CoordName string
	Bars      map[string]string
	Times     map[string]string
	Notes     map[string]string
	CreatedAt string
}

func (r Report) Empty() bool { return r.ID == 0 }

// Complete fills every form field, keeping whatever the server sent.
func (r Report) Complete() Report {
	r.Bars = fill(r.Bars, ReportBars)
	r.Times = fill(r.Times, ReportTimes)
	r.Notes = fill(r.Notes, ReportNotes)
	return r
}

// Normalize validates the key, rejects unknown field names and checks the
// times are HH:MM. Blank values are allowed.
func (r Report) Normalize() (Report, error) {
	key, err := r.ReportKey.Normalize()
	if err != nil {
		return r, err
	}
	r.ReportKey = key
	for _, group := range []struct {
		name   string
		fields []string
		values map[string]string
	}{
		{"bar", ReportBars, r.Bars},
		{"time", ReportTimes, r.Times},
		{"note", ReportNotes, r.Notes},
	} {
		if unknown := unknownKeys(group.values, group.fields); len(unknown) > 0 {
			return r, fmt.Errorf("%w: unknown %s field %s (want %s)", apperrors.ErrInvalidInput, group.name, strings.Join(unknown, ", "), strings.Join(group.fields, ", "))
		}
	}
	r = r.Complete()
	for k, v := range r.Bars {
		r.Bars[k] = strings.TrimSpace(v)
	}
	for k, v := range r.Notes {
		r.Notes[k] = strings.TrimSpace(v)
	}
	for k, v := range r.Times {
		v = strings.TrimSpace(v)
		r.Times[k] = v
		if v == "" {
			continue
		}
		if _, err := clock.ParseClock(v); err != nil {
			return r, fmt.Errorf("%w: %s: %w", apperrors.ErrInvalidInput, k, err)
		}
	}
	return r, nil
}

func fill(values map[string]string, fields []string) map[string]string {
	out := make(map[string]string, len(fields))
	for k, v := range values {
		out[k] = v
	}
	for _, f := range fields {
		if _, ok := out[f]; !ok {
			out[f] = ""
		}
	}
	return out
}

func unknownKeys(values map[string]string, fields []string) []string {
	var out []string
	for k := range values {
		if !slices.Contains(fields, k) {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

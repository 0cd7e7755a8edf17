package domain

import (
	"fmt"
	"strings"

	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
)

type EventKind string

const (
	KindLate        EventKind = "late"
	KindExtra       EventKind = "extra"
	KindAbsence     EventKind = "absence"
	KindManualShift EventKind = "manual_shift"
)

type Event struct {
	ID        int64
	Kind      EventKind
	UserID    int64
	User      string
	Date      string
	Reason    string
	Hours     *float64
	From      string
	To        string
	CreatedBy string
	CreatedAt string
}

// StaffingDay is the head count for one date, with deltas against the
// server's norm.
type StaffingDay struct {
	Date         string
	Morning      int
	Evening      int
	MorningDelta int
	EveningDelta int
}

func (d StaffingDay) Short() bool { return d.MorningDelta < 0 || d.EveningDelta < 0 }

type Summary struct {
	Month    string
	Events   []Event
	Staffing []StaffingDay
}

// ShortDays lists the dates below the norm in either group.
func (s Summary) ShortDays() []string {
	var out []string
	for _, d := range s.Staffing {
		if d.Short() {
			out = append(out, d.Date)
		}
	}
	return out
}

type DeletedEntry struct {
	EventID     int64
	DeletedDate string
	UserName    string
	Reason      string
}

type DeletedDetail struct {
	EventID     int64
	Kind        EventKind
	EventDate   string
	From        string
	To          string
	Hours       *float64
	UserName    string
	DeletedBy   string
	DeletedDate string
	Reason      string
}

// Record is one write to the control log. Fields unused by a kind stay
// zero.
type Record struct {
	Kind         EventKind
	UserID       int64
	Date         string
	Reason       string
	DelayMinutes *int
	Hours        float64
	From         string
	To           string
}

// Normalize trims the record and validates it for its kind.
func (r Record) Normalize() (Record, error) {
	if r.UserID <= 0 {
		return r, fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	iso, err := clock.NormalizeDate(r.Date)
	if err != nil {
		return r, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
	}
	r.Date = iso
	r.Reason = strings.TrimSpace(r.Reason)
	r.From, r.To = strings.TrimSpace(r.From), strings.TrimSpace(r.To)

	switch r.Kind {
	case KindLate:
		if r.DelayMinutes != nil && *r.DelayMinutes < 0 {
			return r, fmt.Errorf("%w: delay must not be negative", apperrors.ErrInvalidInput)
		}
		if err := optionalClocks(r.From, r.To); err != nil {
			return r, err
		}
	case KindExtra:
		if r.Hours <= 0 {
			return r, fmt.Errorf("%w: hours must be greater than zero", apperrors.ErrInvalidInput)
		}
	case KindAbsence:
	case KindManualShift:
		if _, err := clock.SpanHours(r.From, r.To); err != nil {
			return r, fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
		}
	default:
		return r, fmt.Errorf("%w: unknown event kind %q", apperrors.ErrInvalidInput, r.Kind)
	}
	return r, nil
}

func optionalClocks(values ...string) error {
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, err := clock.ParseClock(v); err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrInvalidInput, err)
		}
	}
	return nil
}

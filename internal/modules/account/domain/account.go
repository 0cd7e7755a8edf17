package domain

import (
	"fmt"
	"math"
	"strings"

	apperrors "grafik/internal/platform/errors"
)

// MonthlyTargetHours is the full-time month the stats view measures against.
const MonthlyTargetHours = 160.0

type Profile struct {
	ID         int64
	Email      string
	FullName   string
	Role       string
	OrderIndex *int
	Zmiwaka    bool
	Rate       *float64
	Tax        float64
}

type ProfileUpdate struct {
	FullName string
	Email    string
}

func (u ProfileUpdate) Normalize() (ProfileUpdate, error) {
	u.FullName = strings.TrimSpace(u.FullName)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.FullName == "" && u.Email == "" {
		return u, fmt.Errorf("%w: nothing to update", apperrors.ErrInvalidInput)
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return u, fmt.Errorf("%w: invalid email %q", apperrors.ErrInvalidInput, u.Email)
	}
	return u, nil
}

// PaySettings is the hourly rate in PLN and the tax percentage. A nil rate
// means the user never set one.
type PaySettings struct {
	Rate *float64
	Tax  float64
}

func (s PaySettings) Validate() error {
	if s.Rate != nil && (*s.Rate < 0 || math.IsNaN(*s.Rate)) {
		return fmt.Errorf("%w: rate must not be negative", apperrors.ErrInvalidInput)
	}
	if s.Tax < 0 || s.Tax > 100 || math.IsNaN(s.Tax) {
		return fmt.Errorf("%w: tax must be between 0 and 100", apperrors.ErrInvalidInput)
	}
	return nil
}

// Net applies the tax percentage to a gross amount, rounded to grosze.
func Net(gross, taxPercent float64) float64 {
	return round2(gross * (1 - taxPercent/100))
}

type StatsDay struct {
	Date  string
	Code  string
	Hours float64
	Done  bool
	Gross float64
	Net   float64
}

type Stats struct {
	Month      string
	From       string
	To         string
	Rate       float64
	Tax        float64
	HoursTotal float64
	HoursDone  float64
	HoursLeft  float64
	GrossDone  float64
	NetDone    float64
	GrossAll   float64
	NetAll     float64
	Daily      []StatsDay
}

// TargetLeft is how many scheduled hours are missing to the monthly target.
func (s Stats) TargetLeft() float64 {
	return math.Max(round2(MonthlyTargetHours-s.HoursTotal), 0)
}

// TargetPercent is the scheduled share of the target, capped at 100.
func (s Stats) TargetPercent() float64 {
	return math.Min(math.Round(s.HoursTotal/MonthlyTargetHours*1000)/10, 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

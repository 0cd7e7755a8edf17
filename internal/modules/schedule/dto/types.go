package dto

type MonthInput struct {
	Year    int
	Month   int
	Refresh bool
}

type LadderInput struct {
	Year  int
	Month int
	// From hides earlier days; empty means today.
	From    string
	Refresh bool
}

type WorklogInput struct {
	ShiftID     int64
	WorkedHours *float64
	Start       string
	End         string
	Note        string
}

type SwapCandidatesInput struct {
	TargetDate string
	TargetCode string
}

type ShiftOutput struct {
	ID          int64
	Date        string
	Code        string
	Group       string
	Hours       float64
	WorkedHours *float64
	Lounge      string
	CoordLounge string
	CheckedIn   bool
	CheckedOut  bool
}

type AssignmentOutput struct {
	UserID      int64
	FullName    string
	Code        string
	Hours       float64
	Chip        string
	ChipLounge  string
	Lounge      string
	CoordLounge string
}

type DayOutput struct {
	Date    string
	Morning []AssignmentOutput
	Evening []AssignmentOutput
}

type MonthOutput struct {
	Year   int
	Month  int
	Days   []DayOutput
	Cached bool
}

type NextShiftOutput struct {
	Empty      bool
	Date       string
	Code       string
	Hours      float64
	MonthTotal int
	MonthDone  int
}

type WorklogOutput struct {
	WorkedHours *float64
}

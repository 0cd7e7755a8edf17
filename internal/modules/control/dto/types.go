package dto

type LateInput struct {
	UserID       int64
	Date         string
	Reason       string
	DelayMinutes *int
	From         string
	To           string
}

type ExtraInput struct {
	UserID int64
	Date   string
	Reason string
	Hours  float64
}

type AbsenceInput struct {
	UserID int64
	Date   string
	Reason string
}

type AddShiftInput struct {
	UserID int64
	Date   string
	Reason string
	From   string
	To     string
}

type EventOutput struct {
	ID        int64
	Kind      string
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

type StaffingOutput struct {
	Date         string
	Morning      int
	Evening      int
	MorningDelta int
	EveningDelta int
	Short        bool
}

type SummaryOutput struct {
	Month     string
	Events    []EventOutput
	Staffing  []StaffingOutput
	ShortDays []string
}

type AddShiftOutput struct {
	Event   EventOutput
	ShiftID int64
}

type DeletedOutput struct {
	EventID     int64
	DeletedDate string
	UserName    string
	Reason      string
}

type DeletedDetailOutput struct {
	EventID     int64
	Kind        string
	EventDate   string
	From        string
	To          string
	Hours       *float64
	UserName    string
	DeletedBy   string
	DeletedDate string
	Reason      string
}

type ReportKeyInput struct {
	Lounge    string
	ShiftType string
	Date      string
}

// ReportInput carries the form fields by name; see domain.ReportBars and
// friends for the accepted keys.
type ReportInput struct {
	ReportKeyInput
	Bars  map[string]string
	Times map[string]string
	Notes map[string]string
}

type ReportField struct {
	Name  string
	Value string
}

// ReportOutput lists every form field in form order, blank when unset.
type ReportOutput struct {
	Lounge    string
	ShiftType string
	Date      string
	Saved     bool
	CoordName string
	Bars      []ReportField
	Times     []ReportField
	Notes     []ReportField
	CreatedAt string
}

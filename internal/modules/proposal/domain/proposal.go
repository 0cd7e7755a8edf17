package domain

import (
	"fmt"
	"strings"

	scheduledomain "grafik/internal/modules/schedule/domain"
	apperrors "grafik/internal/platform/errors"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// ParseStatus folds the backend's "canceled" spelling into cancelled.
// Unknown values are kept as-is and allow no action.
func ParseStatus(raw string) Status {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if s == "canceled" {
		return StatusCancelled
	}
	return s
}

func (s Status) IsCancelled() bool { return s == StatusCancelled || s == "canceled" }

func (s Status) Terminal() bool {
	switch {
	case s.IsCancelled():
		return true
	case s == StatusDeclined, s == StatusApproved, s == StatusRejected:
		return true
	default:
		return false
	}
}

// Tab is the list a proposal is shown in.
type Tab string

const (
	TabIncoming Tab = "incoming"
	TabOutgoing Tab = "outgoing"
	TabManager  Tab = "manager"
)

func ParseTab(raw string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(raw))); t {
	case TabIncoming, TabOutgoing, TabManager:
		return t, nil
	case "for_approval", "to_approve":
		return TabManager, nil
	default:
		return "", fmt.Errorf("%w: unknown tab %q", apperrors.ErrInvalidInput, raw)
	}
}

type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionCancel  Action = "cancel"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

// Actions is the complete button matrix: the tab and status alone decide
// what the viewer may do.
func Actions(tab Tab, status Status) []Action {
	switch {
	case tab == TabIncoming && status == StatusPending:
		return []Action{ActionAccept, ActionDecline}
	case tab == TabOutgoing && status == StatusPending:
		return []Action{ActionCancel}
	case tab == TabManager && status == StatusAccepted:
		return []Action{ActionApprove, ActionReject}
	default:
		return nil
	}
}

// Allows reports whether action is offered for (tab, status).
func Allows(tab Tab, status Status, action Action) bool {
	for _, a := range Actions(tab, status) {
		if a == action {
			return true
		}
	}
	return false
}

type Party struct {
	ID       int64
	FullName string
}

type Proposal struct {
	ID        int64
	Requester Party
	Target    Party
	MyDate    string
	TheirDate string
	GiveCode  string
	TakeCode  string
	Status    Status
	CreatedAt string
	// Fallback is set when any field had to be recovered heuristically.
	Fallback bool
}

// Buckets is the proposal list split the way the backend returns it.
type Buckets struct {
	Incoming    []Proposal
	Outgoing    []Proposal
	ForApproval []Proposal
}

// ShowManagerTab is true only when there is something to approve.
func (b Buckets) ShowManagerTab() bool { return len(b.ForApproval) > 0 }

func (b Buckets) In(tab Tab) []Proposal {
	switch tab {
	case TabIncoming:
		return b.Incoming
	case TabOutgoing:
		return b.Outgoing
	case TabManager:
		return b.ForApproval
	default:
		return nil
	}
}

// Row is one rendered line of a proposal list.
type Row struct {
	ID       int64
	From     string
	To       string
	GiveDate string
	GiveCode string
	GetDate  string
	GetCode  string
	Status   Status
	Actions  []Action
	Fallback bool
}

// RowFor lays a proposal out for tab. Incoming rows are seen from the
// target's side, so give and get swap.
func RowFor(tab Tab, p Proposal) Row {
	row := Row{
		ID:       p.ID,
		From:     p.Requester.FullName,
		To:       p.Target.FullName,
		GiveDate: p.MyDate,
		GiveCode: p.GiveCode,
		GetDate:  p.TheirDate,
		GetCode:  p.TakeCode,
		Status:   p.Status,
		Actions:  Actions(tab, p.Status),
		Fallback: p.Fallback,
	}
	if tab == TabIncoming {
		row.GiveDate, row.GetDate = p.TheirDate, p.MyDate
		row.GiveCode, row.GetCode = p.TakeCode, p.GiveCode
	}
	return row
}

// CreateRequest is a swap proposal as the viewer fills it in. Codes are
// optional and only used for the same-day check.
type CreateRequest struct {
	TargetUserID int64
	MyDate       string
	TheirDate    string
	MyCode       string
	TheirCode    string
}

// ValidateCreate runs the checks that do not need the backend. Dates must
// already be ISO.
func ValidateCreate(req CreateRequest, tomorrow string) error {
	if req.TargetUserID <= 0 {
		return fmt.Errorf("%w: target user is required", apperrors.ErrInvalidInput)
	}
	if req.MyDate == "" || req.TheirDate == "" {
		return fmt.Errorf("%w: both dates are required", apperrors.ErrInvalidInput)
	}
	if req.MyDate < tomorrow || req.TheirDate < tomorrow {
		return apperrors.ErrPastDate
	}
	if req.MyDate == req.TheirDate && req.MyCode != "" && req.TheirCode != "" &&
		scheduledomain.GroupOf(req.MyCode) == scheduledomain.GroupOf(req.TheirCode) {
		return apperrors.ErrSameGroup
	}
	return nil
}

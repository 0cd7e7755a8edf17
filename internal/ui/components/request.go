package components

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"grafik/internal/platform/httpapi"
)

// FailedMsg carries a failed background call up to the root model, which
// shows it as a toast or switches to the login screen.
type FailedMsg struct {
	Err         error
	Destination string
}

// Fail wraps err into a command for the root model.
func Fail(err error, destination string) tea.Cmd {
	return func() tea.Msg { return FailedMsg{Err: err, Destination: destination} }
}

// Ticket numbers requests so that only the newest response is applied.
type Ticket struct{ seq int }

// Next issues a new request number and makes every older one stale.
func (t *Ticket) Next() int {
	t.seq++
	return t.seq
}

// Last returns the newest request number without issuing a new one.
func (t Ticket) Last() int { return t.seq }

// Current reports whether seq belongs to the newest request.
func (t Ticket) Current(seq int) bool { return seq == t.seq }

// Context returns a background context remembering the route to return to
// when the call is rejected with 401.
func Context(destination string) context.Context {
	return httpapi.WithDestination(context.Background(), destination)
}

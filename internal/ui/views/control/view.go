package control

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	controldto "grafik/internal/modules/control/dto"
	"grafik/internal/platform/clock"
	"grafik/internal/ui/components"
	"grafik/internal/ui/theme"
)

const Destination = "/control"

type ControlPort interface {
	Summary(ctx context.Context, month string) (controldto.SummaryOutput, error)
	Deleted(ctx context.Context) ([]controldto.DeletedOutput, error)
}

type SummaryMsg struct {
	seq     int
	Summary controldto.SummaryOutput
	Err     error
}

type DeletedMsg struct {
	seq  int
	Rows []controldto.DeletedOutput
	Err  error
}

type Model struct {
	port        ControlPort
	month       string
	showDeleted bool
	summary     controldto.SummaryOutput
	deleted     []controldto.DeletedOutput
	ticket      components.Ticket
	body        viewport.Model
	width       int
	height      int
}

func New(port ControlPort, cal clock.BusinessCalendar) Model {
	return Model{port: port, month: cal.CurrentMonth(), body: viewport.New(0, 0)}
}

// Load fetches the panel. The tab is only built for coordinators, so the
// first fetch waits until the root model knows the role.
func (m *Model) Load() tea.Cmd {
	seq := m.ticket.Next()
	port, month := m.port, m.month
	if m.showDeleted {
		return func() tea.Msg {
			rows, err := port.Deleted(components.Context(Destination))
			return DeletedMsg{seq: seq, Rows: rows, Err: err}
		}
	}
	return func() tea.Msg {
		out, err := port.Summary(components.Context(Destination), month)
		return SummaryMsg{seq: seq, Summary: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 2

	case SummaryMsg:
		if !m.ticket.Current(msg.seq) {
			return m, nil
		}
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		m.summary = msg.Summary
		m.body.SetContent(m.render())

	case DeletedMsg:
		if !m.ticket.Current(msg.seq) {
			return m, nil
		}
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		m.deleted = msg.Rows
		m.body.SetContent(m.render())

	case tea.KeyMsg:
		switch msg.String() {
		case "[":
			cmd := m.goMonth(-1)
			return m, cmd
		case "]":
			cmd := m.goMonth(1)
			return m, cmd
		case "l":
			m.showDeleted = !m.showDeleted
			cmd := m.Load()
			return m, cmd
		case "r":
			cmd := m.Load()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - 2).
		Height(m.height - 2).
		Render(m.body.View())
}

func (m *Model) goMonth(delta int) tea.Cmd {
	if t, err := time.Parse(clock.MonthLayout, m.month); err == nil {
		m.month = t.AddDate(0, delta, 0).Format(clock.MonthLayout)
	}
	m.showDeleted = false
	return m.Load()
}

func (m Model) render() string {
	var sb strings.Builder
	if m.showDeleted {
		sb.WriteString(theme.Title.Render("Deleted events") + "\n\n")
		if len(m.deleted) == 0 {
			sb.WriteString(theme.Muted.Render("nothing deleted") + "\n")
		}
		for _, d := range m.deleted {
			sb.WriteString(fmt.Sprintf("#%-6d %-12s %-24s %s\n", d.EventID, d.DeletedDate, d.UserName, d.Reason))
		}
		sb.WriteString("\n" + theme.Muted.Render("l: summary"))
		return sb.String()
	}

	s := m.summary
	sb.WriteString(theme.Title.Render("Control "+m.month) + "\n\n")
	sb.WriteString(theme.Hot.Render("Events") + "\n")
	if len(s.Events) == 0 {
		sb.WriteString(theme.Muted.Render("  none") + "\n")
	}
	for _, e := range s.Events {
		extra := ""
		if e.Hours != nil {
			extra = fmt.Sprintf(" %.2fh", *e.Hours)
		}
		if e.From != "" || e.To != "" {
			extra += " " + e.From + "-" + e.To
		}
		sb.WriteString(fmt.Sprintf("  #%-5d %s %-12s %-22s %s%s\n", e.ID, e.Date, e.Kind, e.User, e.Reason, extra))
	}

	sb.WriteString("\n" + theme.Hot.Render("Staffing") + "\n")
	for _, d := range s.Staffing {
		line := fmt.Sprintf("  %s  morning %2d (%+d)  evening %2d (%+d)", d.Date, d.Morning, d.MorningDelta, d.Evening, d.EveningDelta)
		if d.Short {
			line = theme.Bad.Render(line + "  short")
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n" + theme.Muted.Render("[ ]: month  l: deleted log  r: refresh"))
	return sb.String()
}

package stats

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	accountdto "grafik/internal/modules/account/dto"
	scheduledto "grafik/internal/modules/schedule/dto"
	"grafik/internal/platform/clock"
	"grafik/internal/ui/components"
	"grafik/internal/ui/theme"
)

const Destination = "/stats"

type AccountPort interface {
	Stats(ctx context.Context, month, path string) (accountdto.StatsOutput, error)
}

type SchedulePort interface {
	NextShift(ctx context.Context) (scheduledto.NextShiftOutput, error)
}

type LoadedMsg struct {
	seq      int
	Stats    accountdto.StatsOutput
	Next     scheduledto.NextShiftOutput
	Exported string
	Err      error
}

type Model struct {
	account  AccountPort
	schedule SchedulePort
	month    string
	stats    accountdto.StatsOutput
	next     scheduledto.NextShiftOutput
	ticket   components.Ticket
	bar      progress.Model
	body     viewport.Model
	width    int
	height   int
}

func New(account AccountPort, schedule SchedulePort, cal clock.BusinessCalendar) Model {
	return Model{
		account:  account,
		schedule: schedule,
		month:    cal.CurrentMonth(),
		bar:      progress.New(progress.WithDefaultGradient()),
		body:     viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return m.fetch(m.ticket.Last(), m.month, "")
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = m.width - 4
		m.body.Height = m.height - 2
		m.bar.Width = min(m.width-10, 60)
		m.body.SetContent(m.render())

	case LoadedMsg:
		if !m.ticket.Current(msg.seq) {
			return m, nil
		}
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		m.stats = msg.Stats
		m.next = msg.Next
		m.body.SetContent(m.render())

	case tea.KeyMsg:
		switch msg.String() {
		case "[":
			cmd := m.goMonth(-1)
			return m, cmd
		case "]":
			cmd := m.goMonth(1)
			return m, cmd
		case "r":
			cmd := m.ShowMonth(m.month)
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

// ShowMonth loads the statistics of a YYYY-MM month.
func (m *Model) ShowMonth(month string) tea.Cmd {
	m.month = month
	return m.fetch(m.ticket.Next(), month, "")
}

// Export writes the shown month to an .xlsx workbook.
func (m *Model) Export(path string) tea.Cmd {
	return m.fetch(m.ticket.Next(), m.month, path)
}

func (m *Model) goMonth(delta int) tea.Cmd {
	t, err := time.Parse(clock.MonthLayout, m.month)
	if err != nil {
		return nil
	}
	return m.ShowMonth(t.AddDate(0, delta, 0).Format(clock.MonthLayout))
}

func (m Model) fetch(seq int, month, path string) tea.Cmd {
	account, schedule := m.account, m.schedule
	return func() tea.Msg {
		ctx := components.Context(Destination)
		out, err := account.Stats(ctx, month, path)
		if err != nil {
			return LoadedMsg{seq: seq, Err: err}
		}
		next, err := schedule.NextShift(ctx)
		return LoadedMsg{seq: seq, Stats: out, Next: next, Exported: path, Err: err}
	}
}

func (m Model) render() string {
	s := m.stats
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Stats "+m.month) + "\n\n")
	if !m.next.Empty && m.next.Date != "" {
		sb.WriteString(theme.Hot.Render(fmt.Sprintf("Next shift %s %s (%.1fh)", m.next.Date, m.next.Code, m.next.Hours)))
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("  %d/%d this month", m.next.MonthDone, m.next.MonthTotal)) + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("hours   %6.1f done  %6.1f left  %6.1f total\n", s.HoursDone, s.HoursLeft, s.HoursTotal))
	sb.WriteString(fmt.Sprintf("gross   %8.2f done  %8.2f all\n", s.GrossDone, s.GrossAll))
	sb.WriteString(fmt.Sprintf("net     %8.2f done  %8.2f all\n", s.NetDone, s.NetAll))
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("rate %.2f PLN/h  tax %.0f%%", s.Rate, s.Tax)) + "\n\n")

	sb.WriteString(fmt.Sprintf("target %.0fh  %.1fh to go\n", s.TargetHours, s.TargetLeft))
	sb.WriteString(m.bar.ViewAs(s.TargetPercent/100) + "\n\n")

	for _, d := range s.Daily {
		mark := " "
		if d.Done {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s %-6s %5.1fh %8.2f %8.2f\n", mark, d.Date, d.Code, d.Hours, d.Gross, d.Net))
	}
	sb.WriteString("\n" + theme.Muted.Render("[ ]: month  r: refresh  :export <file.xlsx>"))
	return sb.String()
}

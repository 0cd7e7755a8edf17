package proposals

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	proposaldto "grafik/internal/modules/proposal/dto"
	"grafik/internal/platform/i18n"
	"grafik/internal/ui/components"
	"grafik/internal/ui/theme"
)

const Destination = "/proposals"

type ProposalPort interface {
	List(ctx context.Context) (proposaldto.ListOutput, error)
	Create(ctx context.Context, targetUserID int64, myDate, theirDate, myCode, theirCode string) (proposaldto.ListOutput, error)
	Transition(ctx context.Context, verb string, id int64) (proposaldto.ListOutput, error)
}

// ListedMsg carries a fresh set of buckets, either from a reload or as the
// result of a write.
type ListedMsg struct {
	seq    int
	List   proposaldto.ListOutput
	Action string
	Err    error
}

// actionKeys maps keys to lifecycle verbs. A key only works when the
// selected row offers the verb.
var actionKeys = map[string]string{
	"a": "accept",
	"d": "decline",
	"c": "cancel",
	"o": "approve",
	"x": "reject",
}

type rowItem struct {
	bucket string
	row    proposaldto.RowOutput
}

// emptyItem stands in for a bucket with no rows.
type emptyItem struct {
	bucket string
	text   string
}

func (i emptyItem) Title() string       { return i.bucket }
func (i emptyItem) Description() string { return i.text }
func (i emptyItem) FilterValue() string { return "" }

func (i rowItem) Title() string {
	return fmt.Sprintf("#%d %s → %s", i.row.ID, i.row.From, i.row.To)
}

func (i rowItem) Description() string {
	return fmt.Sprintf("%s  give %s %s  get %s %s  [%s]", i.bucket, i.row.GiveDate, i.row.GiveCode, i.row.GetDate, i.row.GetCode, i.row.Status)
}

func (i rowItem) FilterValue() string { return i.row.From + " " + i.row.To + " " + i.row.Status }

type Model struct {
	port    ProposalPort
	lang    string
	ticket  components.Ticket
	list    list.Model
	detail  viewport.Model
	loading bool
	width   int
	height  int
}

func New(port ProposalPort, lang string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Proposals"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, lang: lang, list: l, detail: viewport.New(0, 0), loading: true}
}

func (m Model) Init() tea.Cmd {
	return m.fetch(m.ticket.Last(), "", func(ctx context.Context) (proposaldto.ListOutput, error) {
		return m.port.List(ctx)
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := m.width * 6 / 10
		m.list.SetSize(listW, m.height)
		m.detail.Width = m.width - listW - 4
		m.detail.Height = m.height - 4

	case ListedMsg:
		if !m.ticket.Current(msg.seq) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		cmds = append(cmds, m.list.SetItems(items(msg.List, m.lang)))
		m.detail.SetContent(m.renderDetail())

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		if msg.String() == "r" {
			cmd := m.Reload()
			return m, cmd
		}
		if verb, ok := actionKeys[msg.String()]; ok {
			if item, ok := m.list.SelectedItem().(rowItem); ok && slices.Contains(item.row.Actions, verb) {
				cmd := m.transition(verb, item.row.ID)
				return m, cmd
			}
		}
	}

	var lCmd, vCmd tea.Cmd
	prev := m.list.Index()
	m.list, lCmd = m.list.Update(msg)
	if m.list.Index() != prev {
		m.detail.SetContent(m.renderDetail())
	}
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, lCmd, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Loading proposals…")
	}
	listW := m.width * 6 / 10
	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(m.width - listW - 2).
		Height(m.height - 2).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// Reload drops whatever is in flight and fetches the buckets again.
func (m *Model) Reload() tea.Cmd {
	port := m.port
	return m.fetch(m.ticket.Next(), "", func(ctx context.Context) (proposaldto.ListOutput, error) {
		return port.List(ctx)
	})
}

// Create sends a swap proposal to a colleague. Empty codes leave the
// same-day group check to the backend.
func (m *Model) Create(targetUserID int64, myDate, theirDate, myCode, theirCode string) tea.Cmd {
	port := m.port
	return m.fetch(m.ticket.Next(), "created", func(ctx context.Context) (proposaldto.ListOutput, error) {
		return port.Create(ctx, targetUserID, myDate, theirDate, myCode, theirCode)
	})
}

func (m *Model) transition(verb string, id int64) tea.Cmd {
	port := m.port
	return m.fetch(m.ticket.Next(), verb, func(ctx context.Context) (proposaldto.ListOutput, error) {
		return port.Transition(ctx, verb, id)
	})
}

func (Model) fetch(seq int, action string, call func(context.Context) (proposaldto.ListOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := call(components.Context(Destination))
		return ListedMsg{seq: seq, List: out, Action: action, Err: err}
	}
}

func items(out proposaldto.ListOutput, lang string) []list.Item {
	buckets := []struct {
		title, empty i18n.Key
		rows         []proposaldto.RowOutput
	}{
		{i18n.IncomingTitle, i18n.IncomingEmpty, out.Incoming},
		{i18n.OutgoingTitle, i18n.OutgoingEmpty, out.Outgoing},
	}
	if out.ShowManager {
		buckets = append(buckets, struct {
			title, empty i18n.Key
			rows         []proposaldto.RowOutput
		}{i18n.ManagerTitle, i18n.ManagerEmpty, out.Manager})
	}
	var rows []list.Item
	for _, b := range buckets {
		title := i18n.Text(lang, b.title)
		if len(b.rows) == 0 {
			rows = append(rows, emptyItem{bucket: title, text: i18n.Text(lang, b.empty)})
			continue
		}
		for _, r := range b.rows {
			rows = append(rows, rowItem{bucket: title, row: r})
		}
	}
	return rows
}

func (m Model) renderDetail() string {
	var item rowItem
	switch selected := m.list.SelectedItem().(type) {
	case rowItem:
		item = selected
	case emptyItem:
		return theme.Title.Render(selected.bucket) + "\n\n" + theme.Muted.Render(selected.text)
	default:
		return theme.Muted.Render(i18n.Text(m.lang, i18n.NoData))
	}
	r := item.row
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Proposal #%d", r.ID)) + "\n\n")
	sb.WriteString(theme.Muted.Render("from:   ") + r.From + "\n")
	sb.WriteString(theme.Muted.Render("to:     ") + r.To + "\n")
	sb.WriteString(theme.Muted.Render("give:   ") + r.GiveDate + " " + r.GiveCode + "\n")
	sb.WriteString(theme.Muted.Render("get:    ") + r.GetDate + " " + r.GetCode + "\n")
	sb.WriteString(theme.Muted.Render("status: ") + r.Status + "\n")
	if r.Fallback {
		sb.WriteString(theme.Muted.Render("(dates recovered from the message)") + "\n")
	}
	if len(r.Actions) > 0 {
		var keys []string
		for _, k := range []string{"a", "d", "c", "o", "x"} {
			if slices.Contains(r.Actions, actionKeys[k]) {
				keys = append(keys, k+": "+actionKeys[k])
			}
		}
		sb.WriteString("\n" + theme.Hot.Render(strings.Join(keys, "  ")))
	}
	return sb.String()
}

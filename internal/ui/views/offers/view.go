package offers

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

const Destination = "/offers"

type OfferPort interface {
	Offers(ctx context.Context) (proposaldto.MarketOutput, error)
	CreateOffer(ctx context.Context, shiftID int64) (int64, error)
	OfferTransition(ctx context.Context, verb string, id int64) (proposaldto.MarketOutput, error)
	Takeover(ctx context.Context, targetUserID int64, date string) (proposaldto.OfferOutput, error)
}

type MarketMsg struct {
	seq    int
	Market proposaldto.MarketOutput
	Action string
	Err    error
}

// PostedMsg follows a new offer or takeover request.
type PostedMsg struct {
	Action string
	Err    error
}

var actionKeys = map[string]string{
	"enter": "claim",
	"c":     "cancel",
	"o":     "approve",
	"x":     "reject",
}

type offerItem struct {
	mine  bool
	offer proposaldto.OfferOutput
}

func (i offerItem) Title() string {
	return fmt.Sprintf("#%d %s %s  %s", i.offer.ID, i.offer.Date, i.offer.Code, i.offer.Owner.FullName)
}

func (i offerItem) Description() string {
	where := "market"
	if i.mine {
		where = "mine"
	}
	d := where + "  [" + i.offer.Status + "]"
	if i.offer.Candidate != nil {
		d += "  candidate " + i.offer.Candidate.FullName
	}
	return d
}

func (i offerItem) FilterValue() string { return i.offer.Date + " " + i.offer.Owner.FullName }

type emptyItem struct{ title, text string }

func (i emptyItem) Title() string       { return i.title }
func (i emptyItem) Description() string { return i.text }
func (i emptyItem) FilterValue() string { return "" }

type Model struct {
	port    OfferPort
	lang    string
	ticket  components.Ticket
	list    list.Model
	detail  viewport.Model
	loading bool
	width   int
	height  int
}

func New(port OfferPort, lang string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Shift market"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return Model{port: port, lang: lang, list: l, detail: viewport.New(0, 0), loading: true}
}

func (m Model) Init() tea.Cmd {
	port := m.port
	return market(m.ticket.Last(), "", func(ctx context.Context) (proposaldto.MarketOutput, error) {
		return port.Offers(ctx)
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

	case MarketMsg:
		if !m.ticket.Current(msg.seq) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		cmds = append(cmds, m.list.SetItems(m.items(msg.Market)))
		m.detail.SetContent(m.renderDetail())

	case PostedMsg:
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		cmd := m.Reload()
		return m, cmd

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		if msg.String() == "r" {
			cmd := m.Reload()
			return m, cmd
		}
		if verb, ok := actionKeys[msg.String()]; ok {
			if item, ok := m.list.SelectedItem().(offerItem); ok && slices.Contains(item.offer.Actions, verb) {
				cmd := m.transition(verb, item.offer.ID)
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
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Loading offers…")
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

func (m *Model) Reload() tea.Cmd {
	port := m.port
	return market(m.ticket.Next(), "", func(ctx context.Context) (proposaldto.MarketOutput, error) {
		return port.Offers(ctx)
	})
}

// Offer puts one of the viewer's shifts on the market.
func (m Model) Offer(shiftID int64) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		_, err := port.CreateOffer(components.Context(Destination), shiftID)
		return PostedMsg{Action: "offered", Err: err}
	}
}

// Takeover asks a colleague to hand over their shift on date.
func (m Model) Takeover(targetUserID int64, date string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		_, err := port.Takeover(components.Context(Destination), targetUserID, date)
		return PostedMsg{Action: "takeover requested", Err: err}
	}
}

func (m *Model) transition(verb string, id int64) tea.Cmd {
	port := m.port
	return market(m.ticket.Next(), verb, func(ctx context.Context) (proposaldto.MarketOutput, error) {
		return port.OfferTransition(ctx, verb, id)
	})
}

func market(seq int, action string, call func(context.Context) (proposaldto.MarketOutput, error)) tea.Cmd {
	return func() tea.Msg {
		out, err := call(components.Context(Destination))
		return MarketMsg{seq: seq, Market: out, Action: action, Err: err}
	}
}

func (m Model) items(out proposaldto.MarketOutput) []list.Item {
	var rows []list.Item
	if len(out.Open) == 0 {
		rows = append(rows, emptyItem{title: i18n.Text(m.lang, i18n.OpenOffers), text: i18n.Text(m.lang, i18n.OpenEmpty)})
	}
	for _, o := range out.Open {
		rows = append(rows, offerItem{offer: o})
	}
	if len(out.Mine) == 0 {
		rows = append(rows, emptyItem{title: i18n.Text(m.lang, i18n.MyOffers), text: i18n.Text(m.lang, i18n.MyOffersEmpty)})
	}
	for _, o := range out.Mine {
		rows = append(rows, offerItem{mine: true, offer: o})
	}
	return rows
}

func (m Model) renderDetail() string {
	var item offerItem
	switch selected := m.list.SelectedItem().(type) {
	case offerItem:
		item = selected
	case emptyItem:
		return theme.Title.Render(selected.title) + "\n\n" + theme.Muted.Render(selected.text)
	default:
		return theme.Muted.Render(i18n.Text(m.lang, i18n.NoData))
	}
	o := item.offer
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Offer #%d", o.ID)) + "\n\n")
	sb.WriteString(theme.Muted.Render("shift:   ") + o.Date + " " + o.Code + "\n")
	sb.WriteString(theme.Muted.Render("owner:   ") + o.Owner.FullName + "\n")
	if o.Candidate != nil {
		sb.WriteString(theme.Muted.Render("claimed: ") + o.Candidate.FullName + "\n")
	}
	sb.WriteString(theme.Muted.Render("status:  ") + o.Status + "\n")
	if o.CreatedAt != "" {
		sb.WriteString(theme.Muted.Render("posted:  ") + o.CreatedAt + "\n")
	}
	var keys []string
	for _, k := range []string{"enter", "c", "o", "x"} {
		if slices.Contains(o.Actions, actionKeys[k]) {
			keys = append(keys, k+": "+actionKeys[k])
		}
	}
	if len(keys) > 0 {
		sb.WriteString("\n" + theme.Hot.Render(strings.Join(keys, "  ")))
	}
	return sb.String()
}

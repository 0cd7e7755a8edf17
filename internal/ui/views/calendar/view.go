package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	notesdto "grafik/internal/modules/notes/dto"
	scheduledto "grafik/internal/modules/schedule/dto"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/i18n"
	"grafik/internal/ui/components"
	"grafik/internal/ui/theme"
)

// Destination is the route a re-login returns to.
const Destination = "/calendar"

// ─── ports ───────────────────────────────────────────────────────────────────

type SchedulePort interface {
	Month(ctx context.Context, year, month int, refresh bool) (scheduledto.MonthOutput, error)
	Ladder(ctx context.Context, year, month int, from string, refresh bool) (scheduledto.MonthOutput, error)
	Day(ctx context.Context, date string) (scheduledto.DayOutput, error)
	SwapCandidates(ctx context.Context, targetDate, targetCode string) ([]scheduledto.ShiftOutput, error)
	CheckTakeover(ctx context.Context, date string) error
}

type NotesPort interface {
	List(ctx context.Context, date string) ([]notesdto.NoteOutput, error)
	Add(ctx context.Context, date, text string) (notesdto.NoteOutput, error)
	Delete(ctx context.Context, id int64) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type MonthLoadedMsg struct {
	seq   int
	Month scheduledto.MonthOutput
	Err   error
}

type DayLoadedMsg struct {
	seq int
	Day scheduledto.DayOutput
	Err error
}

type NotesLoadedMsg struct {
	seq   int
	Date  string
	Notes []notesdto.NoteOutput
	Err   error
}

// NoteChangedMsg follows an add or delete; the notes of Date are reloaded.
type NoteChangedMsg struct {
	Date string
	Err  error
}

// CandidatesMsg lists the viewer's shifts that can be given for Target.
type CandidatesMsg struct {
	seq        int
	Date       string
	Target     scheduledto.AssignmentOutput
	Candidates []scheduledto.ShiftOutput
	Err        error
}

type TakeoverCheckedMsg struct {
	seq    int
	Date   string
	Target scheduledto.AssignmentOutput
	Err    error
}

// ProposeSwapMsg asks the root to send a swap proposal picked in the day
// panel.
type ProposeSwapMsg struct {
	TargetUserID int64
	MyDate       string
	TheirDate    string
	MyCode       string
	TheirCode    string
}

// TakeoverMsg asks the root to request a colleague's shift.
type TakeoverMsg struct {
	TargetUserID int64
	Date         string
}

// ─── list item ───────────────────────────────────────────────────────────────

type dayItem struct {
	day   scheduledto.DayOutput
	today string
}

func (i dayItem) Title() string {
	label := i.day.Date
	if t, err := time.Parse(time.DateOnly, i.day.Date); err == nil {
		label += " " + t.Weekday().String()[:3]
	}
	if i.day.Date == i.today {
		label += "  (today)"
	}
	return label
}

func (i dayItem) Description() string {
	return fmt.Sprintf("morning %d  evening %d", len(i.day.Morning), len(i.day.Evening))
}

func (i dayItem) FilterValue() string { return i.day.Date }

// ─── model ───────────────────────────────────────────────────────────────────

// panelMode says where the keys go: the day list, the people of the selected
// day, or the viewer's swap candidates for one of them.
type panelMode int

const (
	panelDays panelMode = iota
	panelEntries
	panelCandidates
)

type Model struct {
	schedule SchedulePort
	notes    NotesPort
	cal      clock.BusinessCalendar
	lang     string
	viewer   int64

	year, month int
	showPast    bool
	cached      bool
	days        map[string]scheduledto.DayOutput
	dayNotes    []notesdto.NoteOutput

	monthTicket components.Ticket
	dayTicket   components.Ticket
	notesTicket components.Ticket

	actionTicket components.Ticket
	panel        panelMode
	entry        int
	target       scheduledto.AssignmentOutput
	candidates   []scheduledto.ShiftOutput
	pick         int

	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(schedule SchedulePort, notes NotesPort, cal clock.BusinessCalendar, lang string) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	year, month, _ := clock.MonthOf(cal.CurrentMonth())
	m := Model{
		schedule: schedule,
		notes:    notes,
		cal:      cal,
		lang:     lang,
		year:     year,
		month:    month,
		days:     map[string]scheduledto.DayOutput{},
		list:     l,
		detail:   viewport.New(0, 0),
		spinner:  sp,
		loading:  true,
	}
	m.list.Title = m.title()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchMonth(m.monthTicket.Last(), false), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case MonthLoadedMsg:
		if !m.monthTicket.Current(msg.seq) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		m.panel = panelDays
		m.cached = msg.Month.Cached
		m.days = make(map[string]scheduledto.DayOutput, len(msg.Month.Days))
		items := make([]list.Item, len(msg.Month.Days))
		today := m.cal.Today()
		for i, d := range msg.Month.Days {
			m.days[d.Date] = d
			items[i] = dayItem{day: d, today: today}
		}
		m.list.Title = m.title()
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Month.Days) > 0 {
			m.list.Select(0)
			cmds = append(cmds, m.loadNotesCmd(msg.Month.Days[0].Date))
		} else {
			m.dayNotes = nil
		}
		m.detail.SetContent(m.renderDetail())

	case DayLoadedMsg:
		if !m.dayTicket.Current(msg.seq) {
			return m, nil
		}
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		m.days[msg.Day.Date] = msg.Day
		m.panel = panelDays
		m.selectDate(msg.Day.Date)
		m.detail.SetContent(m.renderDetail())
		cmds = append(cmds, m.loadNotesCmd(msg.Day.Date))

	case NotesLoadedMsg:
		if !m.notesTicket.Current(msg.seq) || msg.Date != m.SelectedDate() {
			return m, nil
		}
		if msg.Err != nil {
			m.dayNotes = nil
			m.detail.SetContent(m.renderDetail())
			return m, components.Fail(msg.Err, Destination)
		}
		m.dayNotes = msg.Notes
		m.detail.SetContent(m.renderDetail())

	case NoteChangedMsg:
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		if msg.Date == m.SelectedDate() {
			cmds = append(cmds, m.loadNotesCmd(msg.Date))
		}

	case CandidatesMsg:
		if !m.actionTicket.Current(msg.seq) || msg.Date != m.SelectedDate() {
			return m, nil
		}
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		m.target = msg.Target
		m.candidates = msg.Candidates
		m.pick = 0
		m.panel = panelCandidates
		m.detail.SetContent(m.renderDetail())
		return m, nil

	case TakeoverCheckedMsg:
		if !m.actionTicket.Current(msg.seq) || msg.Date != m.SelectedDate() {
			return m, nil
		}
		if msg.Err != nil {
			return m, components.Fail(msg.Err, Destination)
		}
		takeover := TakeoverMsg{TargetUserID: msg.Target.UserID, Date: msg.Date}
		return m, func() tea.Msg { return takeover }

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		if m.panel != panelDays {
			return m.updatePanel(msg)
		}
		switch msg.String() {
		case "e":
			if len(m.entries()) > 0 {
				m.panel = panelEntries
				m.entry = 0
				m.detail.SetContent(m.renderDetail())
			}
			return m, nil
		case "[":
			cmd := m.shiftMonth(-1)
			return m, cmd
		case "]":
			cmd := m.shiftMonth(1)
			return m, cmd
		case "r":
			cmd := m.Refresh()
			return m, cmd
		case "p":
			m.showPast = !m.showPast
			cmd := m.reload(false)
			return m, cmd
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prev := m.SelectedDate()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if date := m.SelectedDate(); date != prev && date != "" {
			m.dayNotes = nil
			m.panel = panelDays
			m.detail.SetContent(m.renderDetail())
			cmds = append(cmds, m.loadNotesCmd(date))
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading roster…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the day filter is active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SelectedDate returns the highlighted day, or "".
func (m Model) SelectedDate() string {
	if item, ok := m.list.SelectedItem().(dayItem); ok {
		return item.day.Date
	}
	return ""
}

// GoToMonth shows the given month in full.
func (m *Model) GoToMonth(year, month int) tea.Cmd {
	m.year, m.month = year, month
	m.showPast = true
	return m.reload(false)
}

// GoToDay fetches one day's roster and highlights it, switching month when
// needed.
func (m *Model) GoToDay(date string) tea.Cmd {
	year, month, err := clock.MonthOf(date)
	if err != nil {
		return components.Fail(err, Destination)
	}
	var cmds []tea.Cmd
	if year != m.year || month != m.month {
		m.year, m.month = year, month
		m.showPast = true
		cmds = append(cmds, m.reload(false))
	}
	return tea.Batch(append(cmds, m.loadDayCmd(date))...)
}

// SetViewer tells the panel whose entries are the viewer's own.
func (m *Model) SetViewer(userID int64) { m.viewer = userID }

// Refresh bypasses the month cache.
func (m *Model) Refresh() tea.Cmd { return m.reload(true) }

// AddNote attaches text to the highlighted day.
func (m Model) AddNote(text string) tea.Cmd {
	date := m.SelectedDate()
	return func() tea.Msg {
		_, err := m.notes.Add(components.Context(Destination), date, text)
		return NoteChangedMsg{Date: date, Err: err}
	}
}

// DeleteNote removes a note of the highlighted day.
func (m Model) DeleteNote(id int64) tea.Cmd {
	date := m.SelectedDate()
	return func() tea.Msg {
		err := m.notes.Delete(components.Context(Destination), id)
		return NoteChangedMsg{Date: date, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

// updatePanel handles keys while the day panel has focus.
func (m Model) updatePanel(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.panel {
	case panelEntries:
		entries := m.entries()
		switch msg.String() {
		case "up", "k":
			m.entry = max(m.entry-1, 0)
		case "down", "j":
			m.entry = min(m.entry+1, len(entries)-1)
		case "esc", "e":
			m.panel = panelDays
		case "s", "t":
			if m.entry >= len(entries) {
				return m, nil
			}
			target := entries[m.entry]
			if target.UserID == m.viewer {
				return m, components.Fail(fmt.Errorf("%w: that is your own shift", apperrors.ErrInvalidInput), Destination)
			}
			if msg.String() == "s" {
				cmd := m.loadCandidatesCmd(target)
				return m, cmd
			}
			cmd := m.checkTakeoverCmd(target)
			return m, cmd
		}

	case panelCandidates:
		switch msg.String() {
		case "up", "k":
			m.pick = max(m.pick-1, 0)
		case "down", "j":
			m.pick = min(m.pick+1, max(len(m.candidates)-1, 0))
		case "esc":
			m.panel = panelEntries
		case "enter":
			if m.pick >= len(m.candidates) {
				return m, nil
			}
			mine := m.candidates[m.pick]
			swap := ProposeSwapMsg{
				TargetUserID: m.target.UserID,
				MyDate:       mine.Date,
				TheirDate:    m.SelectedDate(),
				MyCode:       mine.Code,
				TheirCode:    m.target.Code,
			}
			m.panel = panelEntries
			m.detail.SetContent(m.renderDetail())
			return m, func() tea.Msg { return swap }
		}
	}
	m.detail.SetContent(m.renderDetail())
	return m, nil
}

// entries lists the selected day's people, morning first.
func (m Model) entries() []scheduledto.AssignmentOutput {
	day, ok := m.days[m.SelectedDate()]
	if !ok {
		return nil
	}
	return append(append([]scheduledto.AssignmentOutput(nil), day.Morning...), day.Evening...)
}

func (m *Model) shiftMonth(delta int) tea.Cmd {
	first := time.Date(m.year, time.Month(m.month)+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	m.year, m.month = first.Year(), int(first.Month())
	return m.reload(false)
}

func (m *Model) reload(refresh bool) tea.Cmd {
	m.loading = true
	return tea.Batch(m.loadMonthCmd(refresh), m.spinner.Tick)
}

func (m *Model) selectDate(date string) {
	for i, item := range m.list.Items() {
		if d, ok := item.(dayItem); ok && d.day.Date == date {
			m.list.Select(i)
			return
		}
	}
}

func (m Model) title() string {
	t := fmt.Sprintf("Roster %04d-%02d", m.year, m.month)
	if !m.showPast {
		t += " from today"
	}
	if m.cached {
		t += " (cached)"
	}
	return t
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	date := m.SelectedDate()
	day, ok := m.days[date]
	if !ok {
		return theme.Muted.Render("No shifts in this month")
	}
	cursor := -1
	if m.panel != panelDays {
		cursor = m.entry
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(date) + "\n\n")
	writeGroup(&sb, "Morning", day.Morning, 0, cursor)
	sb.WriteString("\n")
	writeGroup(&sb, "Evening", day.Evening, len(day.Morning), cursor)

	if m.panel == panelCandidates {
		sb.WriteString("\n" + theme.Title.Render("Swap with "+m.target.FullName+" "+m.target.Code) + "\n")
		if len(m.candidates) == 0 {
			sb.WriteString(theme.Muted.Render("  "+i18n.Text(m.lang, i18n.CandidatesNone)) + "\n")
		}
		for i, c := range m.candidates {
			marker := "  "
			if i == m.pick {
				marker = theme.Hot.Render("▸ ")
			}
			sb.WriteString(fmt.Sprintf("%s%s %-6s %s\n", marker, c.Date, c.Code, c.Group))
		}
		sb.WriteString("\n" + theme.Muted.Render("↑↓: pick  enter: propose  esc: back"))
		return sb.String()
	}

	sb.WriteString("\n" + theme.Title.Render("Notes") + "\n")
	if len(m.dayNotes) == 0 {
		sb.WriteString(theme.Muted.Render("  none") + "\n")
	}
	for _, n := range m.dayNotes {
		line := fmt.Sprintf("  #%d %s: %s", n.ID, n.Author, n.Text)
		if n.Deletable {
			line += theme.Muted.Render("  (note-delete " + fmt.Sprint(n.ID) + ")")
		}
		sb.WriteString(line + "\n")
	}
	if m.panel == panelEntries {
		sb.WriteString("\n" + theme.Muted.Render("↑↓: person  s: propose swap  t: take this shift  esc: back"))
	} else {
		sb.WriteString("\n" + theme.Muted.Render("[ ]: month  p: past days  r: refresh  e: people  :note <text>"))
	}
	return sb.String()
}

// writeGroup renders one half of the day. offset is the index of the first
// row among all the day's entries; cursor marks the selected one.
func writeGroup(sb *strings.Builder, label string, rows []scheduledto.AssignmentOutput, offset, cursor int) {
	sb.WriteString(theme.Hot.Render(fmt.Sprintf("%s (%d)", label, len(rows))) + "\n")
	for i, a := range rows {
		marker := "  "
		if offset+i == cursor {
			marker = theme.Hot.Render("▸ ")
		}
		sb.WriteString(fmt.Sprintf("%s%s %-26s %-6s %4.1fh\n", marker, chip(a), a.FullName, a.Code, a.Hours))
	}
}

func chip(a scheduledto.AssignmentOutput) string {
	switch a.Chip {
	case "coordinator":
		label := "KO"
		if a.ChipLounge != "" {
			label = "KO " + a.ChipLounge
		}
		return lipgloss.NewStyle().Foreground(theme.Mauve).Width(12).Render(label)
	case "bar":
		return lipgloss.NewStyle().Foreground(theme.Yellow).Width(12).Render("BAR")
	case "dishwasher":
		return lipgloss.NewStyle().Foreground(theme.Subtext0).Width(12).Render("ZM")
	default:
		return lipgloss.NewStyle().Width(12).Render("")
	}
}

func (m *Model) loadMonthCmd(refresh bool) tea.Cmd {
	return m.fetchMonth(m.monthTicket.Next(), refresh)
}

func (m Model) fetchMonth(seq int, refresh bool) tea.Cmd {
	year, month, showPast := m.year, m.month, m.showPast
	current := fmt.Sprintf("%04d-%02d", year, month) == m.cal.CurrentMonth()
	return func() tea.Msg {
		ctx := components.Context(Destination)
		var (
			out scheduledto.MonthOutput
			err error
		)
		if current && !showPast {
			out, err = m.schedule.Ladder(ctx, year, month, "", refresh)
		} else {
			out, err = m.schedule.Month(ctx, year, month, refresh)
		}
		return MonthLoadedMsg{seq: seq, Month: out, Err: err}
	}
}

func (m *Model) loadDayCmd(date string) tea.Cmd {
	seq := m.dayTicket.Next()
	return func() tea.Msg {
		day, err := m.schedule.Day(components.Context(Destination), date)
		return DayLoadedMsg{seq: seq, Day: day, Err: err}
	}
}

func (m *Model) loadNotesCmd(date string) tea.Cmd {
	seq := m.notesTicket.Next()
	return func() tea.Msg {
		notes, err := m.notes.List(components.Context(Destination), date)
		return NotesLoadedMsg{seq: seq, Date: date, Notes: notes, Err: err}
	}
}

func (m *Model) loadCandidatesCmd(target scheduledto.AssignmentOutput) tea.Cmd {
	seq := m.actionTicket.Next()
	date := m.SelectedDate()
	schedule := m.schedule
	return func() tea.Msg {
		shifts, err := schedule.SwapCandidates(components.Context(Destination), date, target.Code)
		return CandidatesMsg{seq: seq, Date: date, Target: target, Candidates: shifts, Err: err}
	}
}

func (m *Model) checkTakeoverCmd(target scheduledto.AssignmentOutput) tea.Cmd {
	seq := m.actionTicket.Next()
	date := m.SelectedDate()
	schedule := m.schedule
	return func() tea.Msg {
		err := schedule.CheckTakeover(components.Context(Destination), date)
		return TakeoverCheckedMsg{seq: seq, Date: date, Target: target, Err: err}
	}
}

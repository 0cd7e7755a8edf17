package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	admindto "grafik/internal/modules/admin/dto"
	scheduledto "grafik/internal/modules/schedule/dto"
	sessiondto "grafik/internal/modules/session/dto"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/ui/components"
	"grafik/internal/ui/theme"
	calendarview "grafik/internal/ui/views/calendar"
	controlview "grafik/internal/ui/views/control"
	loginview "grafik/internal/ui/views/login"
	offersview "grafik/internal/ui/views/offers"
	proposalsview "grafik/internal/ui/views/proposals"
	statsview "grafik/internal/ui/views/stats"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the slice of a module handler this layer needs. Sub-views
// declare their own, narrower ports.

type sessionPort interface {
	Login(ctx context.Context, email, password string, remember bool) (sessiondto.IdentityOutput, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (sessiondto.IdentityOutput, error)
}

type schedulePort interface {
	calendarview.SchedulePort
	statsview.SchedulePort
	CheckIn(ctx context.Context, shiftID int64) (scheduledto.ShiftOutput, error)
	CheckOut(ctx context.Context, shiftID int64) (scheduledto.ShiftOutput, error)
}

type proposalPort interface {
	proposalsview.ProposalPort
	offersview.OfferPort
}

type accountPort interface {
	statsview.AccountPort
	Preference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

type adminPort interface {
	Users(ctx context.Context) ([]admindto.UserOutput, error)
}

// Deps are the module handlers the terminal UI drives.
type Deps struct {
	Session  sessionPort
	Schedule schedulePort
	Proposal proposalPort
	Notes    calendarview.NotesPort
	Control  controlview.ControlPort
	Account  accountPort
	Admin    adminPort
	Calendar clock.BusinessCalendar
	Language string
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabCalendar tabID = iota
	tabProposals
	tabOffers
	tabControl
	tabStats
	tabCount
)

var tabLabels = [tabCount]string{
	"Calendar", "Proposals", "Offers", "Control", "Stats",
}

var tabRoutes = map[string]tabID{
	calendarview.Destination:  tabCalendar,
	proposalsview.Destination: tabProposals,
	offersview.Destination:    tabOffers,
	controlview.Destination:   tabControl,
	statsview.Destination:     tabStats,
}

// ─── async messages ──────────────────────────────────────────────────────────

type identityMsg struct {
	identity sessiondto.IdentityOutput
	err      error
}

type loggedInMsg struct {
	identity sessiondto.IdentityOutput
	err      error
}

type loggedOutMsg struct{ err error }

type themeMsg struct {
	name string
	err  error
}

type checkedMsg struct {
	verb  string
	shift scheduledto.ShiftOutput
	err   error
}

// colleagueMsg carries a resolved user id to the command that asked for it.
type colleagueMsg struct {
	verb   string
	userID int64
	args   []string
	err    error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Refresh key.Binding
	Month   key.Binding
	Past    key.Binding
	Accept  key.Binding
	Decline key.Binding
	Cancel  key.Binding
	Approve key.Binding
	Reject  key.Binding
	Claim   key.Binding
	Deleted key.Binding
	People  key.Binding
	Swap    key.Binding
	Take    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Month:   key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[ ]", "month")),
		Past:    key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "past days")),
		Accept:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Decline: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "decline")),
		Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
		Approve: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "approve")),
		Reject:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reject")),
		Claim:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "claim offer")),
		Deleted: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "deleted log")),
		People:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "people of the day")),
		Swap:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "propose swap")),
		Take:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "take shift")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Month, k.Past},
		{k.People, k.Swap, k.Take},
		{k.Accept, k.Decline, k.Cancel, k.Approve, k.Reject},
		{k.Claim, k.Deleted},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the login
// screen, the help overlay, the command palette and the status toast.
// Calls go through the module handlers; rendering is left to sub-views.
type Model struct {
	deps Deps
	lang string

	// visible is shared with the keep-alive loop through Visible.
	visible *atomic.Bool

	identity  sessiondto.IdentityOutput
	showLogin bool
	next      string

	loginView loginview.Model
	calView   calendarview.Model
	propView  proposalsview.Model
	offerView offersview.Model
	ctrlView  controlview.Model
	statsView statsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	statusBad bool
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(deps Deps) Model {
	visible := &atomic.Bool{}
	visible.Store(true)
	lang := deps.Language
	if lang == "" {
		lang = "pl"
	}
	return Model{
		deps:      deps,
		lang:      lang,
		visible:   visible,
		loginView: loginview.New(),
		calView:   calendarview.New(deps.Schedule, deps.Notes, deps.Calendar, lang),
		propView:  proposalsview.New(deps.Proposal, lang),
		offerView: offersview.New(deps.Proposal, lang),
		ctrlView:  controlview.New(deps.Control, deps.Calendar),
		statsView: statsview.New(deps.Account, deps.Schedule, deps.Calendar),
		activeTab: tabCalendar,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "connecting…",
	}
}

// Visible reports whether the terminal has focus. It is safe to call from
// any goroutine.
func (m Model) Visible() bool { return m.visible.Load() }

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.identityCmd(), m.themeCmd())
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case tea.FocusMsg:
		m.visible.Store(true)
		return m, nil

	case tea.BlurMsg:
		m.visible.Store(false)
		return m, nil

	case identityMsg:
		if msg.err != nil {
			cmd := m.requireLogin(msg.err, "")
			return m, cmd
		}
		cmd := m.signedIn(msg.identity)
		return m, cmd

	case loginview.SubmitMsg:
		m.loginView.SetBusy(true)
		cmd := m.loginCmd(msg)
		return m, cmd

	case loggedInMsg:
		if msg.err != nil {
			cmd := m.loginView.Reset(apperrors.UserMessage(msg.err, m.lang))
			return m, cmd
		}
		m.showLogin = false
		m.identity = msg.identity
		m.activeTab = m.tabFor(m.next)
		m.next = ""
		cmd := m.signedIn(msg.identity)
		return m, cmd

	case loggedOutMsg:
		if msg.err != nil {
			m.toast(msg.err)
			return m, nil
		}
		m.identity = sessiondto.IdentityOutput{}
		m.showLogin = true
		cmd := m.loginView.Reset("")
		return m, cmd

	case components.FailedMsg:
		if errors.Is(msg.Err, apperrors.ErrUnauthenticated) || errors.Is(msg.Err, apperrors.ErrNoToken) {
			cmd := m.requireLogin(msg.Err, msg.Destination)
			return m, cmd
		}
		m.toast(msg.Err)
		return m, nil

	case themeMsg:
		if msg.err != nil {
			m.toast(msg.err)
			return m, nil
		}
		theme.Use(msg.name)
		return m, nil

	case checkedMsg:
		if msg.err != nil {
			m.toast(msg.err)
			return m, nil
		}
		m.info(fmt.Sprintf("%s: shift %d on %s", msg.verb, msg.shift.ID, msg.shift.Date))
		return m, nil

	case colleagueMsg:
		if msg.err != nil {
			m.toast(msg.err)
			return m, nil
		}
		return m.withColleague(msg)

	case proposalsview.ListedMsg:
		if msg.Err == nil && msg.Action != "" {
			m.info("proposal " + msg.Action)
		}

	case offersview.MarketMsg:
		if msg.Err == nil && msg.Action != "" {
			m.info("offer " + msg.Action)
		}

	case offersview.PostedMsg:
		if msg.Err == nil {
			m.info(msg.Action)
		}

	case statsview.LoadedMsg:
		if msg.Err == nil && msg.Exported != "" {
			m.info("exported to " + msg.Exported)
		}

	case calendarview.NoteChangedMsg:
		if msg.Err == nil {
			m.info("notes updated for " + msg.Date)
		}

	case calendarview.ProposeSwapMsg:
		m.activeTab = tabProposals
		cmd := m.propView.Create(msg.TargetUserID, msg.MyDate, msg.TheirDate, msg.MyCode, msg.TheirCode)
		return m, cmd

	case calendarview.TakeoverMsg:
		m.activeTab = tabOffers
		cmd := m.offerView.Takeover(msg.TargetUserID, msg.Date)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showLogin {
			var cmd tea.Cmd
			m.loginView, cmd = m.loginView.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if !m.subViewFiltering() {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "tab":
				m.activeTab = m.step(1)
				return m, nil
			case "shift+tab":
				m.activeTab = m.step(-1)
				return m, nil
			case "?":
				m.showHelp = true
				return m, nil
			case ":":
				cmd := m.palette.Open()
				return m, cmd
			}
		}
		cmd := m.updateActive(msg)
		return m, cmd
	}

	// Everything else is a response or a tick; each view keeps only its own.
	cmd := m.broadcast(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	if m.showLogin {
		h := max(m.height-lipgloss.Height(statusBar), 1)
		return lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Width(m.width).Height(h).Render(m.loginView.View()),
			statusBar)
	}

	tabBar := m.renderTabBar()
	contentH := max(m.height-lipgloss.Height(tabBar)-lipgloss.Height(statusBar), 1)

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabCalendar:
		return m.calView.View()
	case tabProposals:
		return m.propView.View()
	case tabOffers:
		return m.offerView.View()
	case tabControl:
		return m.ctrlView.View()
	case tabStats:
		return m.statsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	var parts []string
	for i := tabID(0); i < tabCount; i++ {
		if !m.tabEnabled(i) {
			continue
		}
		label := " " + tabLabels[i] + " "
		if i == m.activeTab {
			parts = append(parts, theme.Hot.Render(label))
		} else {
			parts = append(parts, theme.Muted.Render(label))
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "grafik  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.statusBad {
		left = theme.Bad.Render(left)
	}
	if m.identity.FullName != "" {
		left = theme.Hot.Render("● "+m.identity.FullName) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  :::palette  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "month":
		year, month, err := clock.MonthOf(rest)
		if err != nil {
			m.usage("month <YYYY-MM>")
			return m, nil
		}
		m.activeTab = tabCalendar
		cmd := m.calView.GoToMonth(year, month)
		return m, cmd

	case "day":
		if len(parts) != 2 {
			m.usage("day <YYYY-MM-DD>")
			return m, nil
		}
		m.activeTab = tabCalendar
		cmd := m.calView.GoToDay(parts[1])
		return m, cmd

	case "refresh":
		cmd := m.refreshActive()
		return m, cmd

	case "note":
		if rest == "" || m.calView.SelectedDate() == "" {
			m.usage("note <text> (on a selected day)")
			return m, nil
		}
		cmd := m.calView.AddNote(rest)
		return m, cmd

	case "note-delete":
		id, ok := idArg(parts)
		if !ok {
			m.usage("note-delete <note-id>")
			return m, nil
		}
		cmd := m.calView.DeleteNote(id)
		return m, cmd

	case "propose":
		if len(parts) != 4 && len(parts) != 6 {
			m.usage("propose <user> <my-date> <their-date> [<my-code> <their-code>]")
			return m, nil
		}
		cmd := m.colleagueCmd("propose", parts[1], parts[2:])
		return m, cmd

	case "takeover":
		if len(parts) != 3 {
			m.usage("takeover <user> <date>")
			return m, nil
		}
		cmd := m.colleagueCmd("takeover", parts[1], parts[2:])
		return m, cmd

	case "offer":
		id, ok := idArg(parts)
		if !ok {
			m.usage("offer <shift-id>")
			return m, nil
		}
		m.activeTab = tabOffers
		cmd := m.offerView.Offer(id)
		return m, cmd

	case "check-in", "check-out":
		id, ok := idArg(parts)
		if !ok {
			m.usage(parts[0] + " <shift-id>")
			return m, nil
		}
		cmd := m.checkCmd(parts[0], id)
		return m, cmd

	case "stats":
		if _, _, err := clock.MonthOf(rest); err != nil {
			m.usage("stats <YYYY-MM>")
			return m, nil
		}
		m.activeTab = tabStats
		cmd := m.statsView.ShowMonth(rest)
		return m, cmd

	case "export":
		if rest == "" {
			m.usage("export <file.xlsx>")
			return m, nil
		}
		m.activeTab = tabStats
		cmd := m.statsView.Export(rest)
		return m, cmd

	case "theme":
		if len(parts) != 2 {
			m.usage("theme <mocha|latte>")
			return m, nil
		}
		cmd := m.setThemeCmd(parts[1])
		return m, cmd

	case "logout":
		cmd := m.logoutCmd()
		return m, cmd

	default:
		m.statusBad = true
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

func (m Model) withColleague(msg colleagueMsg) (tea.Model, tea.Cmd) {
	switch msg.verb {
	case "propose":
		m.activeTab = tabProposals
		var myCode, theirCode string
		if len(msg.args) == 4 {
			myCode, theirCode = msg.args[2], msg.args[3]
		}
		cmd := m.propView.Create(msg.userID, msg.args[0], msg.args[1], myCode, theirCode)
		return m, cmd
	case "takeover":
		m.activeTab = tabOffers
		cmd := m.offerView.Takeover(msg.userID, msg.args[0])
		return m, cmd
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) toast(err error) {
	m.statusBad = true
	m.status = apperrors.UserMessage(err, m.lang)
}

func (m *Model) info(text string) {
	m.statusBad = false
	m.status = text
}

func (m *Model) usage(text string) {
	m.statusBad = true
	m.status = "usage: " + text
}

// requireLogin shows the login form and remembers where to return to.
// The backend's redirect wins over the view's own route.
func (m *Model) requireLogin(err error, destination string) tea.Cmd {
	m.showLogin = true
	m.identity = sessiondto.IdentityOutput{}
	m.next = destination
	notice := ""
	if redirect, ok := apperrors.RedirectOf(err); ok {
		if u, perr := url.Parse(redirect); perr == nil && u.Query().Get("next") != "" {
			m.next = u.Query().Get("next")
		}
		notice = apperrors.UserMessage(err, m.lang)
	} else if !errors.Is(err, apperrors.ErrUnauthenticated) && !errors.Is(err, apperrors.ErrNoToken) {
		notice = apperrors.UserMessage(err, m.lang)
	}
	m.status = "not signed in"
	m.statusBad = false
	return m.loginView.Reset(notice)
}

// signedIn records the identity and loads every tab.
func (m *Model) signedIn(identity sessiondto.IdentityOutput) tea.Cmd {
	m.identity = identity
	if id, err := strconv.ParseInt(identity.SubjectID, 10, 64); err == nil {
		m.calView.SetViewer(id)
	}
	m.info("signed in as " + identity.FullName)
	if !m.tabEnabled(m.activeTab) {
		m.activeTab = tabCalendar
	}
	cmds := []tea.Cmd{m.calView.Init(), m.propView.Init(), m.offerView.Init(), m.statsView.Init()}
	if identity.Privileged {
		cmds = append(cmds, m.ctrlView.Load())
	}
	return tea.Batch(cmds...)
}

// tabFor maps a remembered destination to a tab. Query strings and unknown
// routes fall back to the calendar.
func (m Model) tabFor(destination string) tabID {
	path, _, _ := strings.Cut(destination, "?")
	if tab, ok := tabRoutes[path]; ok && m.tabEnabled(tab) {
		return tab
	}
	return tabCalendar
}

func (m Model) tabEnabled(tab tabID) bool {
	return tab != tabControl || m.identity.Privileged
}

func (m Model) step(delta int) tabID {
	tab := m.activeTab
	for i := 0; i < int(tabCount); i++ {
		tab = (tab + tabID(delta) + tabCount) % tabCount
		if m.tabEnabled(tab) {
			return tab
		}
	}
	return m.activeTab
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabCalendar:
		return m.calView.Filtering()
	case tabProposals:
		return m.propView.Filtering()
	case tabOffers:
		return m.offerView.Filtering()
	}
	return false
}

func (m *Model) updateActive(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabCalendar:
		m.calView, cmd = m.calView.Update(msg)
	case tabProposals:
		m.propView, cmd = m.propView.Update(msg)
	case tabOffers:
		m.offerView, cmd = m.offerView.Update(msg)
	case tabControl:
		m.ctrlView, cmd = m.ctrlView.Update(msg)
	case tabStats:
		m.statsView, cmd = m.statsView.Update(msg)
	}
	return cmd
}

// broadcast hands a non-key message to every view. A response that lands
// on a tab the user has left still refreshes that tab, and nothing else.
// Cursor blinks reach the login form and the palette the same way.
func (m *Model) broadcast(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 7)
	m.calView, cmds[0] = m.calView.Update(msg)
	m.propView, cmds[1] = m.propView.Update(msg)
	m.offerView, cmds[2] = m.offerView.Update(msg)
	m.ctrlView, cmds[3] = m.ctrlView.Update(msg)
	m.statsView, cmds[4] = m.statsView.Update(msg)
	m.loginView, cmds[5] = m.loginView.Update(msg)
	m.palette, cmds[6] = m.palette.Update(msg)
	return tea.Batch(cmds...)
}

func (m *Model) refreshActive() tea.Cmd {
	switch m.activeTab {
	case tabCalendar:
		return m.calView.Refresh()
	case tabProposals:
		return m.propView.Reload()
	case tabOffers:
		return m.offerView.Reload()
	case tabControl:
		return m.ctrlView.Load()
	case tabStats:
		return m.statsView.ShowMonth(m.deps.Calendar.CurrentMonth())
	}
	return nil
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.loginView, _ = m.loginView.Update(sz)
	m.calView, _ = m.calView.Update(sz)
	m.propView, _ = m.propView.Update(sz)
	m.offerView, _ = m.offerView.Update(sz)
	m.ctrlView, _ = m.ctrlView.Update(sz)
	m.statsView, _ = m.statsView.Update(sz)
}

func idArg(parts []string) (int64, bool) {
	if len(parts) != 2 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	return id, err == nil && id > 0
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) identityCmd() tea.Cmd {
	session := m.deps.Session
	return func() tea.Msg {
		identity, err := session.Current(context.Background())
		return identityMsg{identity: identity, err: err}
	}
}

func (m Model) loginCmd(in loginview.SubmitMsg) tea.Cmd {
	session := m.deps.Session
	return func() tea.Msg {
		identity, err := session.Login(context.Background(), in.Email, in.Password, in.Remember)
		return loggedInMsg{identity: identity, err: err}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	session := m.deps.Session
	return func() tea.Msg {
		return loggedOutMsg{err: session.Logout(context.Background())}
	}
}

func (m Model) themeCmd() tea.Cmd {
	account := m.deps.Account
	return func() tea.Msg {
		name, err := account.Preference(context.Background(), "theme")
		return themeMsg{name: name, err: err}
	}
}

func (m Model) setThemeCmd(name string) tea.Cmd {
	account := m.deps.Account
	return func() tea.Msg {
		if err := account.SetPreference(context.Background(), "theme", name); err != nil {
			return themeMsg{err: err}
		}
		return themeMsg{name: name}
	}
}

func (m Model) checkCmd(verb string, shiftID int64) tea.Cmd {
	schedule := m.deps.Schedule
	return func() tea.Msg {
		ctx := components.Context(calendarview.Destination)
		var (
			shift scheduledto.ShiftOutput
			err   error
		)
		if verb == "check-in" {
			shift, err = schedule.CheckIn(ctx, shiftID)
		} else {
			shift, err = schedule.CheckOut(ctx, shiftID)
		}
		return checkedMsg{verb: verb, shift: shift, err: err}
	}
}

// colleagueCmd accepts a numeric id or the start of a colleague's name.
func (m Model) colleagueCmd(verb, who string, args []string) tea.Cmd {
	if id, err := strconv.ParseInt(who, 10, 64); err == nil {
		return func() tea.Msg { return colleagueMsg{verb: verb, userID: id, args: args} }
	}
	admin := m.deps.Admin
	return func() tea.Msg {
		users, err := admin.Users(context.Background())
		if err != nil {
			return colleagueMsg{err: err}
		}
		var found []admindto.UserOutput
		for _, u := range users {
			if strings.HasPrefix(strings.ToLower(u.FullName), strings.ToLower(who)) {
				found = append(found, u)
			}
		}
		switch len(found) {
		case 1:
			return colleagueMsg{verb: verb, userID: found[0].ID, args: args}
		case 0:
			return colleagueMsg{err: fmt.Errorf("%w: nobody named %q", apperrors.ErrNotFound, who)}
		default:
			return colleagueMsg{err: fmt.Errorf("%w: %q matches %d people", apperrors.ErrInvalidInput, who, len(found))}
		}
	}
}

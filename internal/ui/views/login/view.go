package login

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grafik/internal/ui/theme"
)

// SubmitMsg is emitted when the form is confirmed with both fields filled.
type SubmitMsg struct {
	Email    string
	Password string
	Remember bool
}

const (
	fieldEmail = iota
	fieldPassword
	fieldCount
)

type Model struct {
	inputs   [fieldCount]textinput.Model
	focus    int
	remember bool
	busy     bool
	notice   string
	width    int
	height   int
}

func New() Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return Model{inputs: [fieldCount]textinput.Model{email, password}}
}

// Reset clears the password, keeps the email and shows notice above the
// form.
func (m *Model) Reset(notice string) tea.Cmd {
	m.busy = false
	m.notice = notice
	m.inputs[fieldPassword].SetValue("")
	m.focus = fieldEmail
	if m.inputs[fieldEmail].Value() != "" {
		m.focus = fieldPassword
	}
	return m.focusCurrent()
}

// SetBusy marks a submitted form as in flight.
func (m *Model) SetBusy(busy bool) { m.busy = busy }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % fieldCount
			cmd := m.focusCurrent()
			return m, cmd
		case "shift+tab", "up":
			m.focus = (m.focus + fieldCount - 1) % fieldCount
			cmd := m.focusCurrent()
			return m, cmd
		case "ctrl+r":
			m.remember = !m.remember
			return m, nil
		case "enter":
			email := strings.TrimSpace(m.inputs[fieldEmail].Value())
			password := m.inputs[fieldPassword].Value()
			if email == "" || password == "" {
				m.notice = "email and password are required"
				return m, nil
			}
			remember := m.remember
			return m, func() tea.Msg {
				return SubmitMsg{Email: email, Password: password, Remember: remember}
			}
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("grafik: sign in") + "\n\n")
	if m.notice != "" {
		sb.WriteString(theme.Bad.Render(m.notice) + "\n\n")
	}
	sb.WriteString(m.inputs[fieldEmail].View() + "\n")
	sb.WriteString(m.inputs[fieldPassword].View() + "\n\n")
	box := "[ ]"
	if m.remember {
		box = "[x]"
	}
	sb.WriteString(theme.Muted.Render(box+" remember me (ctrl+r)") + "\n\n")
	if m.busy {
		sb.WriteString(theme.Muted.Render("signing in…"))
	} else {
		sb.WriteString(theme.Muted.Render("enter: sign in  tab: next field  ctrl+c: quit"))
	}
	form := theme.PaneActive.Width(48).Render(sb.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, form)
}

func (m *Model) focusCurrent() tea.Cmd {
	for i := range m.inputs {
		if i == m.focus {
			continue
		}
		m.inputs[i].Blur()
	}
	return m.inputs[m.focus].Focus()
}

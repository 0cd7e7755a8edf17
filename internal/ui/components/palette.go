package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"grafik/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

type paletteCommand struct {
	name  string
	args  string
	about string
}

// paletteCommands must stay in sync with the switch in app/model.go executePalette.
var paletteCommands = []paletteCommand{
	{"month", "<YYYY-MM>", "jump to a month"},
	{"day", "<YYYY-MM-DD>", "open a day"},
	{"refresh", "", "reload the current tab"},
	{"note", "<text>", "add a note to the selected day"},
	{"note-delete", "<note-id>", "delete one of my notes"},
	{"propose", "<user> <my-date> <their-date> [<my-code> <their-code>]", "propose a swap"},
	{"takeover", "<user> <date>", "ask for a colleague's shift"},
	{"offer", "<shift-id>", "put my shift on the market"},
	{"check-in", "<shift-id>", "start a shift"},
	{"check-out", "<shift-id>", "finish a shift"},
	{"stats", "<YYYY-MM>", "hours and pay of a month"},
	{"export", "<file.xlsx>", "export the shown stats"},
	{"theme", "<mocha|latte>", "switch colours"},
	{"logout", "", "sign out"},
}

const (
	paletteMatches = 5
	paletteHistory = 20
)

// Palette is the ':' command line. It completes command names with tab and
// recalls earlier commands with up and down.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
	history []string
	recall  int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "type a command…"
	ti.CharLimit = 256
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty line and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.recall = len(p.history)
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			p.remember(val)
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		case "tab":
			if matches := p.matches(); len(matches) > 0 && !strings.Contains(p.input.Value(), " ") {
				p.input.SetValue(matches[0].name + " ")
				p.input.CursorEnd()
			}
			return p, nil
		case "up":
			p.step(-1)
			return p, nil
		case "down":
			p.step(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p *Palette) remember(line string) {
	if line == "" || (len(p.history) > 0 && p.history[len(p.history)-1] == line) {
		return
	}
	p.history = append(p.history, line)
	if len(p.history) > paletteHistory {
		p.history = p.history[len(p.history)-paletteHistory:]
	}
}

func (p *Palette) step(delta int) {
	next := p.recall + delta
	if next < 0 || next > len(p.history) {
		return
	}
	p.recall = next
	if next == len(p.history) {
		p.input.SetValue("")
		return
	}
	p.input.SetValue(p.history[next])
	p.input.CursorEnd()
}

// matches returns the commands whose name starts with the typed word, or
// the whole word once arguments follow.
func (p Palette) matches() []paletteCommand {
	typed := strings.ToLower(strings.TrimLeft(p.input.Value(), " "))
	word, _, hasArgs := strings.Cut(typed, " ")
	var out []paletteCommand
	for _, c := range paletteCommands {
		if hasArgs && c.name != word {
			continue
		}
		if strings.HasPrefix(c.name, word) {
			out = append(out, c)
			if len(out) == paletteMatches {
				break
			}
		}
	}
	return out
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	nameStyle := lipgloss.NewStyle().Foreground(theme.Peach)
	hintStyle := lipgloss.NewStyle().Foreground(theme.Subtext0)

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matches := p.matches(); len(matches) > 0 {
		sb.WriteString("\n")
		for _, c := range matches {
			usage := strings.TrimSpace(c.name + " " + c.args)
			sb.WriteString("  " + nameStyle.Render(usage) + hintStyle.Render("  "+c.about) + "\n")
		}
	}
	sb.WriteString(hintStyle.Render("tab: complete  ↑↓: history  esc: close"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(w - 2).
		Render(sb.String())
}

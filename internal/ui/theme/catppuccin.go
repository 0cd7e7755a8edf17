package theme

import "github.com/charmbracelet/lipgloss"

const (
	Mocha = "mocha"
	Latte = "latte"
)

type palette struct {
	base, mantle, surface0, surface1   lipgloss.Color
	text, subtext0, lavender, sapphire lipgloss.Color
	green, peach, red, yellow, mauve   lipgloss.Color
}

var flavours = map[string]palette{
	Mocha: {
		base: "#1e1e2e", mantle: "#181825", surface0: "#313244", surface1: "#45475a",
		text: "#cdd6f4", subtext0: "#a6adc8", lavender: "#b4befe", sapphire: "#74c7ec",
		green: "#a6e3a1", peach: "#fab387", red: "#f38ba8", yellow: "#f9e2af", mauve: "#cba6f7",
	},
	Latte: {
		base: "#eff1f5", mantle: "#e6e9ef", surface0: "#ccd0da", surface1: "#bcc0cc",
		text: "#4c4f69", subtext0: "#6c6f85", lavender: "#7287fd", sapphire: "#209fb5",
		green: "#40a02b", peach: "#fe640b", red: "#d20f39", yellow: "#df8e1d", mauve: "#8839ef",
	},
}

var (
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
	Yellow   lipgloss.Color
	Mauve    lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
)

func init() { Use(Mocha) }

// Use switches every exported color and style to the named flavour.
// Unknown names fall back to Mocha. Styles are read at render time, so a
// switch takes effect on the next frame.
func Use(name string) {
	p, ok := flavours[name]
	if !ok {
		p = flavours[Mocha]
	}
	Base, Mantle, Surface0, Surface1 = p.base, p.mantle, p.surface0, p.surface1
	Text, Subtext0, Lavender, Sapphire = p.text, p.subtext0, p.lavender, p.sapphire
	Green, Peach, Red, Yellow, Mauve = p.green, p.peach, p.red, p.yellow, p.mauve

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Green)
	Bad = lipgloss.NewStyle().Foreground(Red).Bold(true)
}

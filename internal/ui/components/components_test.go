package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typeInto(p Palette, text string) Palette {
	for _, r := range text {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return p
}

func submit(t *testing.T, p Palette) (Palette, string) {
	t.Helper()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("enter must emit a submit command")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok {
		t.Fatalf("expected PaletteSubmitMsg")
	}
	return p, msg.Input
}

func TestPaletteCompletesCommandName(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	_ = p.Open()
	p = typeInto(p, "tak")
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := p.input.Value(); got != "takeover " {
		t.Fatalf("completion = %q", got)
	}
	if !strings.Contains(p.View(), "ask for a colleague's shift") {
		t.Fatalf("expected the takeover hint in the view")
	}
}

func TestPaletteArgumentsNarrowHints(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	_ = p.Open()
	p = typeInto(p, "note 2")
	matches := p.matches()
	if len(matches) != 1 || matches[0].name != "note" {
		t.Fatalf("expected only the note command, got %+v", matches)
	}
}

func TestPaletteHistoryRecall(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	for _, line := range []string{"month 2026-05", "refresh"} {
		_ = p.Open()
		p = typeInto(p, line)
		var got string
		p, got = submit(t, p)
		if got != line {
			t.Fatalf("submitted %q, want %q", got, line)
		}
	}
	if p.Visible() {
		t.Fatalf("submit must close the palette")
	}

	_ = p.Open()
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := p.input.Value(); got != "month 2026-05" {
		t.Fatalf("history recall = %q", got)
	}
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := p.input.Value(); got != "" {
		t.Fatalf("stepping past the newest entry must clear the line, got %q", got)
	}
}

func TestPaletteEscCancels(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	_ = p.Open()
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if p.Visible() || cmd == nil {
		t.Fatalf("esc must close with a cancel command")
	}
	if _, ok := cmd().(PaletteCancelMsg); !ok {
		t.Fatalf("expected PaletteCancelMsg")
	}
}

func TestTicketKeepsNewest(t *testing.T) {
	t.Parallel()
	var ticket Ticket
	first := ticket.Next()
	second := ticket.Next()
	if ticket.Current(first) || !ticket.Current(second) || ticket.Last() != second {
		t.Fatalf("only the newest request may be current")
	}
}

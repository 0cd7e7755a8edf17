package login

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func typed(m Model, s string) Model {
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestSubmitCarriesFieldsAndRemember(t *testing.T) {
	t.Parallel()
	m := New()
	m = typed(m, " ola@grafik.pl ")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typed(m, "hunter2")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected a submit command")
	}
	got, ok := cmd().(SubmitMsg)
	want := SubmitMsg{Email: "ola@grafik.pl", Password: "hunter2", Remember: true}
	if !ok || got != want {
		t.Fatalf("submit = %+v, want %+v", got, want)
	}
}

func TestEmptyFieldsShowNotice(t *testing.T) {
	t.Parallel()
	m := typed(New(), "ola@grafik.pl")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil || !strings.Contains(m.View(), "email and password are required") {
		t.Fatalf("a missing password must not submit")
	}
}

func TestBusyFormIgnoresKeysAndResetKeepsEmail(t *testing.T) {
	t.Parallel()
	m := typed(New(), "ola@grafik.pl")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = typed(m, "secret")
	m.SetBusy(true)
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatalf("a busy form must not submit twice")
	}

	_ = m.Reset("Invalid credentials")
	if m.busy || m.inputs[fieldPassword].Value() != "" || m.inputs[fieldEmail].Value() != "ola@grafik.pl" || m.focus != fieldPassword {
		t.Fatalf("reset must clear the password and focus it, got focus=%d", m.focus)
	}
	if !strings.Contains(m.View(), "Invalid credentials") {
		t.Fatalf("expected the notice in the form")
	}
}

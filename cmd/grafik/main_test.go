package main

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	controldto "grafik/internal/modules/control/dto"
	proposaldto "grafik/internal/modules/proposal/dto"
	apperrors "grafik/internal/platform/errors"
)

func TestCommandTree(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	for _, path := range [][]string{
		{"login"}, {"whoami"}, {"password", "reset"}, {"health"},
		{"shifts", "month"}, {"shifts", "worklog"}, {"shifts", "candidates"},
		{"proposals", "approve"}, {"takeover"}, {"offers", "claim"},
		{"notes", "add"}, {"control", "late"}, {"control", "deleted"},
		{"control", "report", "get"}, {"control", "report", "save"},
		{"stats"}, {"prefs", "set"}, {"import", "pdf"}, {"users", "create"}, {"tui"},
	} {
		cmd, rest, err := root.Find(path)
		if err != nil || len(rest) != 0 || cmd.Name() != path[len(path)-1] {
			t.Fatalf("missing command %v: %v", path, err)
		}
	}
}

func TestSecretReadsFirstLine(t *testing.T) {
	t.Parallel()
	got, err := secret("", strings.NewReader("hunter2\r\nrest\n"))
	if err != nil || got != "hunter2" {
		t.Fatalf("secret = %q, %v", got, err)
	}
	if got, _ := secret("flag", strings.NewReader("ignored")); got != "flag" {
		t.Fatalf("flag value must win, got %q", got)
	}
	if _, err := secret("", strings.NewReader("")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("empty password must be rejected, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	t.Parallel()
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Fatalf("parseID = %d, %v", id, err)
	}
	for _, raw := range []string{"", "0", "-3", "x"} {
		if _, err := parseID(raw); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("parseID(%q) must fail", raw)
		}
	}
}

func TestLocalizeKeepsLocalErrors(t *testing.T) {
	t.Parallel()
	if localize(nil, "pl") != nil {
		t.Fatalf("nil must stay nil")
	}
	local := errors.New("read config: boom")
	if got := localize(local, "pl").Error(); got != "read config: boom" {
		t.Fatalf("local error = %q", got)
	}
	apiErr := &apperrors.APIError{Status: http.StatusConflict, Message: "Shift already offered"}
	if got := localize(apiErr, "en").Error(); got != "Shift already offered" {
		t.Fatalf("server message = %q", got)
	}
}

func TestLocalizeUsesGivenLanguage(t *testing.T) {
	t.Parallel()
	down := &apperrors.APIError{Status: http.StatusBadGateway}
	if got := localize(down, "pl").Error(); got != "Serwer chwilowo niedostępny" {
		t.Fatalf("pl = %q", got)
	}
	err := localize(down, "en")
	if got := err.Error(); got != "Server temporarily unavailable" {
		t.Fatalf("en = %q", got)
	}
	if !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("localized errors must still unwrap")
	}
}

func TestPrintProposalsPlaceholderPerBucket(t *testing.T) {
	t.Parallel()
	list := proposaldto.ListOutput{
		Outgoing:    []proposaldto.RowOutput{{ID: 3, From: "Ja", To: "Ola", GiveDate: "2026-05-11", GetDate: "2026-05-12", Status: "pending"}},
		ShowManager: true,
	}
	cases := map[string][]string{
		"pl": {"Przychodzące (0)\n  Brak propozycji\n", "Wychodzące (1)\n  3\t", "Do zatwierdzenia (0)\n  Brak propozycji do zatwierdzenia\n"},
		"en": {"Incoming (0)\n  No proposals\n", "Outgoing (1)\n  3\t", "To approve (0)\n  No proposals to approve\n"},
	}
	for lang, want := range cases {
		var out bytes.Buffer
		printProposals(&out, list, lang)
		for _, w := range want {
			if !strings.Contains(out.String(), w) {
				t.Fatalf("%s output lacks %q:\n%s", lang, w, out.String())
			}
		}
	}
}

func TestPrintMarketPlaceholders(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printMarket(&out, proposaldto.MarketOutput{}, "en")
	if got := out.String(); got != "Offers (0)\n  No offers\nMy offers (0)\n  You are not offering any shift\n" {
		t.Fatalf("market output = %q", got)
	}
}

func TestOverlayKeepsUntouchedReportFields(t *testing.T) {
	t.Parallel()
	current := []controldto.ReportField{{Name: "bar0", Value: "ok"}, {Name: "bar1", Value: "short"}}
	got := overlay(current, map[string]string{"bar1": "fixed"})
	if len(got) != 2 || got["bar0"] != "ok" || got["bar1"] != "fixed" {
		t.Fatalf("overlay = %v", got)
	}
}

func TestPrintReportMarksUnsaved(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	printReport(&out, controldto.ReportOutput{
		Lounge:    "mazurek",
		ShiftType: "morning",
		Date:      "2026-05-10",
		Times:     []controldto.ReportField{{Name: "arrived", Value: "05:50"}, {Name: "left"}},
	})
	want := "report mazurek morning 2026-05-10\n  not saved yet\ntimes\n  arrived    05:50\n  left       -\nbars\nnotes\n"
	if got := out.String(); got != want {
		t.Fatalf("report output = %q", got)
	}
}

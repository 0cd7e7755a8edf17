package domain_test

import (
	"errors"
	"testing"

	"grafik/internal/modules/control/domain"
	apperrors "grafik/internal/platform/errors"
)

func TestReportNormalizeFillsEveryField(t *testing.T) {
	t.Parallel()
	in := domain.Report{
		ReportKey: domain.ReportKey{Lounge: " Polonez ", ShiftType: "EVENING", Date: "11/05/2026"},
		Times:     map[string]string{"left": " 22:10 "},
	}
	got, err := in.Normalize()
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Lounge != "polonez" || got.ShiftType != "evening" || got.Date != "2026-05-11" {
		t.Fatalf("key not normalised: %+v", got.ReportKey)
	}
	if got.Times["left"] != "22:10" || len(got.Bars) != len(domain.ReportBars) || len(got.Notes) != len(domain.ReportNotes) {
		t.Fatalf("unexpected fields %+v", got)
	}
	if _, ok := in.Times["arrived"]; ok {
		t.Fatalf("normalize must not touch the caller's map")
	}
}

func TestReportNormalizeRejects(t *testing.T) {
	t.Parallel()
	key := domain.ReportKey{Lounge: "mazurek", ShiftType: "morning", Date: "2026-05-10"}
	cases := map[string]domain.Report{
		"lounge":     {ReportKey: domain.ReportKey{Lounge: "lobby", ShiftType: "morning", Date: "2026-05-10"}},
		"shift":      {ReportKey: domain.ReportKey{Lounge: "mazurek", ShiftType: "night", Date: "2026-05-10"}},
		"date":       {ReportKey: domain.ReportKey{Lounge: "mazurek", ShiftType: "morning", Date: "soon"}},
		"clock":      {ReportKey: key, Times: map[string]string{"arrived": "25:00"}},
		"unknown":    {ReportKey: key, Notes: map[string]string{"weather": "rain"}},
		"time field": {ReportKey: key, Times: map[string]string{"break": "12:00"}},
	}
	for name, rep := range cases {
		if _, err := rep.Normalize(); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", name, err)
		}
	}
}

func TestReportCompleteKeepsUnknownServerFields(t *testing.T) {
	t.Parallel()
	got := domain.Report{Bars: map[string]string{"bar0": "ok", "legacy": "x"}}.Complete()
	if got.Bars["legacy"] != "x" || got.Bars["bar0"] != "ok" || len(got.Times) != 2 {
		t.Fatalf("unexpected completion %+v", got)
	}
	if !got.Empty() {
		t.Fatalf("a report without an id is empty")
	}
}

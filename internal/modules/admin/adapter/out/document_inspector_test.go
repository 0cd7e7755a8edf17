package out_test

import (
	"context"
	"errors"
	"testing"

	adminout "grafik/internal/modules/admin/adapter/out"
	"grafik/internal/modules/admin/domain"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/testutil/fixtures"
)

func TestInspectPDFCountsPages(t *testing.T) {
	t.Parallel()
	path := fixtures.Write(t, "maj.pdf", fixtures.PDF(2))
	file, err := adminout.NewLocalDocumentInspector().Inspect(context.Background(), domain.KindPDF, path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if file.Name != "maj.pdf" || file.Units != 2 || len(file.Content) == 0 {
		t.Fatalf("unexpected file %+v", file)
	}
}

func TestInspectRejectsBrokenDocuments(t *testing.T) {
	t.Parallel()
	inspector := adminout.NewLocalDocumentInspector()
	cases := []struct {
		name string
		kind domain.FileKind
		body []byte
	}{
		{name: "not a pdf", kind: domain.KindPDF, body: []byte("hello, this is plain text and not a roster")},
		{name: "pdf without pages", kind: domain.KindPDF, body: fixtures.PDF(0)},
		{name: "not a workbook", kind: domain.KindXLSX, body: fixtures.PDF(1)},
		{name: "empty workbook", kind: domain.KindXLSX, body: fixtures.XLSX(t, nil)},
	}
	for _, tc := range cases {
		path := fixtures.Write(t, "roster", tc.body)
		if _, err := inspector.Inspect(context.Background(), tc.kind, path); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("%s: expected invalid input, got %v", tc.name, err)
		}
	}
}

func TestInspectXLSXCountsNonBlankRows(t *testing.T) {
	t.Parallel()
	body := fixtures.XLSX(t, [][]string{{"", "1", "2"}, {"", "", ""}, {"Anna", "1", "2/B"}})
	path := fixtures.Write(t, "maj.xlsx", body)
	file, err := adminout.NewLocalDocumentInspector().Inspect(context.Background(), domain.KindXLSX, path)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if file.Units != 2 {
		t.Fatalf("expected 2 non-blank rows, got %d", file.Units)
	}
}

package out

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"rsc.io/pdf"

	"grafik/internal/modules/admin/domain"
	adminout "grafik/internal/modules/admin/port/out"
	apperrors "grafik/internal/platform/errors"
)

type LocalDocumentInspector struct{}

func NewLocalDocumentInspector() adminout.DocumentInspector {
	return &LocalDocumentInspector{}
}

func (i *LocalDocumentInspector) Inspect(_ context.Context, kind domain.FileKind, path string) (domain.ImportFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ImportFile{}, fmt.Errorf("read %s: %w", path, err)
	}
	file := domain.ImportFile{Kind: kind, Name: filepath.Base(path), Content: content}
	switch kind {
	case domain.KindPDF:
		file.Units, err = pdfPages(content)
	case domain.KindXLSX:
		file.Units, err = xlsxRows(content)
	default:
		err = fmt.Errorf("%w: unsupported file kind %q", apperrors.ErrInvalidInput, kind)
	}
	if err != nil {
		return domain.ImportFile{}, err
	}
	return file, nil
}

func pdfPages(content []byte) (int, error) {
	doc, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return 0, fmt.Errorf("%w: open pdf: %w", apperrors.ErrInvalidInput, err)
	}
	total := doc.NumPage()
	if total == 0 {
		return 0, fmt.Errorf("%w: pdf has no pages", apperrors.ErrInvalidInput)
	}
	if doc.Page(1).V.IsNull() {
		return 0, fmt.Errorf("%w: pdf page 1 is null", apperrors.ErrInvalidInput)
	}
	return total, nil
}

// xlsxRows counts rows with at least one non-blank cell across all sheets.
func xlsxRows(content []byte) (int, error) {
	book, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return 0, fmt.Errorf("%w: open xlsx: %w", apperrors.ErrInvalidInput, err)
	}
	defer func() { _ = book.Close() }()
	count := 0
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return 0, fmt.Errorf("%w: read sheet %s: %w", apperrors.ErrInvalidInput, sheet, err)
		}
		for _, row := range rows {
			if strings.TrimSpace(strings.Join(row, "")) != "" {
				count++
			}
		}
	}
	if count == 0 {
		return 0, fmt.Errorf("%w: workbook has no rows", apperrors.ErrInvalidInput)
	}
	return count, nil
}

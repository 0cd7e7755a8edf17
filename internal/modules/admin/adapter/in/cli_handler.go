package in

import (
	"context"
	"fmt"
	"strings"

	"grafik/internal/modules/admin/dto"
	adminin "grafik/internal/modules/admin/port/in"
	apperrors "grafik/internal/platform/errors"
)

type CLIHandler struct {
	usecase adminin.Usecase
}

func NewCLIHandler(usecase adminin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Import dispatches on kind: pdf, xlsx or text. For text, source is the
// roster itself rather than a path.
func (h CLIHandler) Import(ctx context.Context, kind, source string, year, month int, advanced bool) (dto.ImportOutput, error) {
	switch strings.ToLower(kind) {
	case "pdf":
		return h.usecase.ImportPDF(ctx, dto.FileImportInput{Path: source, Year: year, Month: month, Advanced: advanced})
	case "xlsx":
		return h.usecase.ImportXLSX(ctx, dto.FileImportInput{Path: source, Year: year, Month: month})
	case "text":
		return h.usecase.ImportText(ctx, dto.TextImportInput{Text: source, Year: year, Month: month})
	default:
		return dto.ImportOutput{}, fmt.Errorf("%w: unknown import kind %q", apperrors.ErrInvalidInput, kind)
	}
}

func (h CLIHandler) Users(ctx context.Context) ([]dto.UserOutput, error) {
	return h.usecase.Users(ctx)
}

func (h CLIHandler) CreateUser(ctx context.Context, email, fullName, password, role string) (dto.UserOutput, error) {
	return h.usecase.CreateUser(ctx, dto.CreateUserInput{Email: email, FullName: fullName, Password: password, Role: role})
}

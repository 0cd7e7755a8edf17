package service

import (
	"context"
	"fmt"
	"strings"

	"grafik/internal/modules/admin/domain"
	adminout "grafik/internal/modules/admin/port/out"
	apperrors "grafik/internal/platform/errors"
)

type AdminService struct {
	inspector adminout.DocumentInspector
	imports   adminout.ImportGateway
	users     adminout.UserGateway
}

func NewAdminService(inspector adminout.DocumentInspector, imports adminout.ImportGateway, users adminout.UserGateway) *AdminService {
	return &AdminService{inspector: inspector, imports: imports, users: users}
}

// ImportFile inspects the document locally and uploads it only when it
// would parse.
func (s *AdminService) ImportFile(ctx context.Context, kind domain.FileKind, path string, period domain.Period, advanced bool) (domain.ImportFile, domain.ImportResult, error) {
	if err := period.Validate(); err != nil {
		return domain.ImportFile{}, domain.ImportResult{}, fmt.Errorf("import %s: %w", kind, err)
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.ImportFile{}, domain.ImportResult{}, fmt.Errorf("import %s: %w: path is required", kind, apperrors.ErrInvalidInput)
	}
	file, err := s.inspector.Inspect(ctx, kind, path)
	if err != nil {
		return domain.ImportFile{}, domain.ImportResult{}, fmt.Errorf("import %s: %w", kind, err)
	}
	result, err := s.imports.UploadFile(ctx, domain.UploadPath(kind, advanced), file, period)
	if err != nil {
		return file, domain.ImportResult{}, err
	}
	return file, result, nil
}

func (s *AdminService) ImportText(ctx context.Context, text string, period domain.Period) (domain.ImportResult, error) {
	if err := period.Validate(); err != nil {
		return domain.ImportResult{}, fmt.Errorf("import text: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ImportResult{}, fmt.Errorf("import text: %w: text is empty", apperrors.ErrInvalidInput)
	}
	return s.imports.UploadText(ctx, text, period)
}

func (s *AdminService) Users(ctx context.Context) ([]domain.User, error) {
	return s.users.Users(ctx)
}

func (s *AdminService) CreateUser(ctx context.Context, user domain.NewUser) (domain.User, error) {
	user, err := user.Normalize()
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return s.users.Create(ctx, user)
}

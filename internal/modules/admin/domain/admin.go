package domain

import (
	"fmt"
	"strings"

	apperrors "grafik/internal/platform/errors"
)

type FileKind string

const (
	KindPDF  FileKind = "pdf"
	KindXLSX FileKind = "xlsx"
)

// ImportFile is a roster document that passed local inspection.
type ImportFile struct {
	Kind    FileKind
	Name    string
	Content []byte
	// Pages for PDF, non-empty rows for XLSX.
	Units int
}

type ImportResult struct {
	Imported     int
	CreatedUsers []string
}

// Period is the roster month an import replaces on the server.
type Period struct {
	Year  int
	Month int
}

func (p Period) Validate() error {
	if p.Year < 2000 || p.Year > 2100 || p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: year must be 2000-2100 and month 1-12, got %d-%d", apperrors.ErrInvalidInput, p.Year, p.Month)
	}
	return nil
}

// FirstDay is the ISO date of the period's first day.
func (p Period) FirstDay() string {
	return fmt.Sprintf("%04d-%02d-01", p.Year, p.Month)
}

// UploadPath picks the server endpoint for a file import.
func UploadPath(kind FileKind, advanced bool) string {
	switch {
	case kind == KindXLSX:
		return "/upload-xlsx"
	case advanced:
		return "/upload-pdf-adv"
	default:
		return "/upload-pdf"
	}
}

type User struct {
	ID       int64
	FullName string
	Email    string
	Role     string
}

type NewUser struct {
	Email    string
	FullName string
	Password string
	Role     string
}

var roles = map[string]bool{"user": true, "coordinator": true, "admin": true}

// Normalize trims the fields, lower-cases email and role, and defaults the
// role to user.
func (u NewUser) Normalize() (NewUser, error) {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.FullName = strings.TrimSpace(u.FullName)
	u.Role = strings.ToLower(strings.TrimSpace(u.Role))
	if u.Role == "" {
		u.Role = "user"
	}
	switch {
	case !strings.Contains(u.Email, "@"):
		return u, fmt.Errorf("%w: invalid email %q", apperrors.ErrInvalidInput, u.Email)
	case u.FullName == "":
		return u, fmt.Errorf("%w: full name is required", apperrors.ErrInvalidInput)
	case u.Password == "":
		return u, fmt.Errorf("%w: password is required", apperrors.ErrInvalidInput)
	case !roles[u.Role]:
		return u, fmt.Errorf("%w: unknown role %q", apperrors.ErrInvalidInput, u.Role)
	}
	return u, nil
}

package usecase

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"grafik/internal/modules/admin/domain"
	"grafik/internal/modules/admin/dto"
	adminin "grafik/internal/modules/admin/port/in"
	"grafik/internal/modules/admin/service"
	schedulein "grafik/internal/modules/schedule/port/in"
	sessionin "grafik/internal/modules/session/port/in"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/logging"
)

type Interactor struct {
	svc      *service.AdminService
	schedule schedulein.Usecase
	session  sessionin.Usecase
	log      hclog.Logger
}

func NewInteractor(svc *service.AdminService, schedule schedulein.Usecase, session sessionin.Usecase, logger hclog.Logger) adminin.Usecase {
	return &Interactor{svc: svc, schedule: schedule, session: session, log: logging.OrNull(logger).Named("admin")}
}

func (i *Interactor) requireManager(ctx context.Context, op string) error {
	identity, err := i.session.Current(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !identity.Privileged {
		return fmt.Errorf("%s: %w: coordinator or admin role required", op, apperrors.ErrForbidden)
	}
	return nil
}

func (i *Interactor) ImportPDF(ctx context.Context, input dto.FileImportInput) (dto.ImportOutput, error) {
	return i.importFile(ctx, domain.KindPDF, input)
}

func (i *Interactor) ImportXLSX(ctx context.Context, input dto.FileImportInput) (dto.ImportOutput, error) {
	input.Advanced = false
	return i.importFile(ctx, domain.KindXLSX, input)
}

func (i *Interactor) importFile(ctx context.Context, kind domain.FileKind, input dto.FileImportInput) (dto.ImportOutput, error) {
	if err := i.requireManager(ctx, "import "+string(kind)); err != nil {
		return dto.ImportOutput{}, err
	}
	period := domain.Period{Year: input.Year, Month: input.Month}
	file, result, err := i.svc.ImportFile(ctx, kind, input.Path, period, input.Advanced)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	i.invalidate(ctx, period)
	i.log.Info("roster imported", "kind", kind, "file", file.Name, "units", file.Units, "imported", result.Imported)
	return toImport(file.Name, file.Units, result), nil
}

func (i *Interactor) ImportText(ctx context.Context, input dto.TextImportInput) (dto.ImportOutput, error) {
	if err := i.requireManager(ctx, "import text"); err != nil {
		return dto.ImportOutput{}, err
	}
	period := domain.Period{Year: input.Year, Month: input.Month}
	result, err := i.svc.ImportText(ctx, input.Text, period)
	if err != nil {
		return dto.ImportOutput{}, err
	}
	i.invalidate(ctx, period)
	return toImport("", 0, result), nil
}

// invalidate drops the imported month. A failure leaves the old roster
// visible until the TTL passes.
func (i *Interactor) invalidate(ctx context.Context, period domain.Period) {
	if err := i.schedule.InvalidateMonth(ctx, period.FirstDay()); err != nil {
		i.log.Warn("invalidate month cache", "month", period.FirstDay(), "error", err)
	}
}

func (i *Interactor) Users(ctx context.Context) ([]dto.UserOutput, error) {
	users, err := i.svc.Users(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserOutput, 0, len(users))
	for _, u := range users {
		out = append(out, toUser(u))
	}
	return out, nil
}

func (i *Interactor) CreateUser(ctx context.Context, input dto.CreateUserInput) (dto.UserOutput, error) {
	if err := i.requireManager(ctx, "create user"); err != nil {
		return dto.UserOutput{}, err
	}
	u, err := i.svc.CreateUser(ctx, domain.NewUser{Email: input.Email, FullName: input.FullName, Password: input.Password, Role: input.Role})
	if err != nil {
		return dto.UserOutput{}, err
	}
	return toUser(u), nil
}

func toImport(name string, units int, r domain.ImportResult) dto.ImportOutput {
	created := r.CreatedUsers
	if created == nil {
		created = []string{}
	}
	return dto.ImportOutput{FileName: name, Units: units, Imported: r.Imported, CreatedUsers: created}
}

func toUser(u domain.User) dto.UserOutput {
	return dto.UserOutput{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}

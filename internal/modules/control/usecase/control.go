package usecase

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"grafik/internal/modules/control/domain"
	"grafik/internal/modules/control/dto"
	controlin "grafik/internal/modules/control/port/in"
	"grafik/internal/modules/control/service"
	schedulein "grafik/internal/modules/schedule/port/in"
	sessionin "grafik/internal/modules/session/port/in"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/logging"
)

const roleCoordinator = "coordinator"

type Interactor struct {
	svc      *service.ControlService
	schedule schedulein.Usecase
	session  sessionin.Usecase
	log      hclog.Logger
}

func NewInteractor(svc *service.ControlService, schedule schedulein.Usecase, session sessionin.Usecase, logger hclog.Logger) controlin.Usecase {
	return &Interactor{svc: svc, schedule: schedule, session: session, log: logging.OrNull(logger).Named("control")}
}

// requireManager is an advisory gate; the backend enforces roles itself.
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

// requireCoordinator admits only the coordinator role; the backend refuses
// admins on the report endpoints as well.
func (i *Interactor) requireCoordinator(ctx context.Context, op string) (string, error) {
	identity, err := i.session.Current(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if identity.Role != roleCoordinator {
		return "", fmt.Errorf("%s: %w: coordinator role required", op, apperrors.ErrForbidden)
	}
	return identity.FullName, nil
}

func (i *Interactor) Summary(ctx context.Context, month string) (dto.SummaryOutput, error) {
	summary, err := i.svc.Summary(ctx, month)
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	out := dto.SummaryOutput{
		Month:     summary.Month,
		Events:    make([]dto.EventOutput, 0, len(summary.Events)),
		Staffing:  make([]dto.StaffingOutput, 0, len(summary.Staffing)),
		ShortDays: summary.ShortDays(),
	}
	for _, e := range summary.Events {
		out.Events = append(out.Events, toEvent(e))
	}
	for _, d := range summary.Staffing {
		out.Staffing = append(out.Staffing, dto.StaffingOutput{
			Date:         d.Date,
			Morning:      d.Morning,
			Evening:      d.Evening,
			MorningDelta: d.MorningDelta,
			EveningDelta: d.EveningDelta,
			Short:        d.Short(),
		})
	}
	return out, nil
}

func (i *Interactor) RecordLate(ctx context.Context, input dto.LateInput) (dto.EventOutput, error) {
	return i.record(ctx, domain.Record{
		Kind:         domain.KindLate,
		UserID:       input.UserID,
		Date:         input.Date,
		Reason:       input.Reason,
		DelayMinutes: input.DelayMinutes,
		From:         input.From,
		To:           input.To,
	})
}

func (i *Interactor) RecordExtra(ctx context.Context, input dto.ExtraInput) (dto.EventOutput, error) {
	return i.record(ctx, domain.Record{Kind: domain.KindExtra, UserID: input.UserID, Date: input.Date, Reason: input.Reason, Hours: input.Hours})
}

func (i *Interactor) RecordAbsence(ctx context.Context, input dto.AbsenceInput) (dto.EventOutput, error) {
	return i.record(ctx, domain.Record{Kind: domain.KindAbsence, UserID: input.UserID, Date: input.Date, Reason: input.Reason})
}

func (i *Interactor) record(ctx context.Context, rec domain.Record) (dto.EventOutput, error) {
	if err := i.requireManager(ctx, "record "+string(rec.Kind)); err != nil {
		return dto.EventOutput{}, err
	}
	event, err := i.svc.Record(ctx, rec)
	if err != nil {
		return dto.EventOutput{}, err
	}
	return toEvent(event), nil
}

func (i *Interactor) AddShift(ctx context.Context, input dto.AddShiftInput) (dto.AddShiftOutput, error) {
	if err := i.requireManager(ctx, "add shift"); err != nil {
		return dto.AddShiftOutput{}, err
	}
	event, shiftID, err := i.svc.AddShift(ctx, domain.Record{UserID: input.UserID, Date: input.Date, Reason: input.Reason, From: input.From, To: input.To})
	if err != nil {
		return dto.AddShiftOutput{}, err
	}
	if err := i.schedule.InvalidateMonth(ctx, event.Date); err != nil {
		i.log.Warn("invalidate month cache", "date", event.Date, "error", err)
	}
	return dto.AddShiftOutput{Event: toEvent(event), ShiftID: shiftID}, nil
}

func (i *Interactor) DeleteEvent(ctx context.Context, id int64, reason string) error {
	if err := i.requireManager(ctx, "delete event"); err != nil {
		return err
	}
	if err := i.svc.Delete(ctx, id, reason); err != nil {
		return err
	}
	if err := i.schedule.InvalidateAll(ctx); err != nil {
		i.log.Warn("invalidate month cache", "error", err)
	}
	return nil
}

func (i *Interactor) DeletedLog(ctx context.Context) ([]dto.DeletedOutput, error) {
	entries, err := i.svc.Deleted(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DeletedOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.DeletedOutput{EventID: e.EventID, DeletedDate: e.DeletedDate, UserName: e.UserName, Reason: e.Reason})
	}
	return out, nil
}

func (i *Interactor) DeletedDetail(ctx context.Context, id int64) (dto.DeletedDetailOutput, error) {
	d, err := i.svc.DeletedDetail(ctx, id)
	if err != nil {
		return dto.DeletedDetailOutput{}, err
	}
	return dto.DeletedDetailOutput{
		EventID:     d.EventID,
		Kind:        string(d.Kind),
		EventDate:   d.EventDate,
		From:        d.From,
		To:          d.To,
		Hours:       d.Hours,
		UserName:    d.UserName,
		DeletedBy:   d.DeletedBy,
		DeletedDate: d.DeletedDate,
		Reason:      d.Reason,
	}, nil
}

func (i *Interactor) Report(ctx context.Context, key dto.ReportKeyInput) (dto.ReportOutput, error) {
	if _, err := i.requireCoordinator(ctx, "shift report"); err != nil {
		return dto.ReportOutput{}, err
	}
	report, err := i.svc.Report(ctx, domain.ReportKey{Lounge: key.Lounge, ShiftType: key.ShiftType, Date: key.Date})
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return toReport(report), nil
}

func (i *Interactor) SaveReport(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	name, err := i.requireCoordinator(ctx, "save shift report")
	if err != nil {
		return dto.ReportOutput{}, err
	}
	report, err := i.svc.SaveReport(ctx, domain.Report{
		ReportKey: domain.ReportKey{Lounge: input.Lounge, ShiftType: input.ShiftType, Date: input.Date},
		Bars:      input.Bars,
		Times:     input.Times,
		Notes:     input.Notes,
	})
	if err != nil {
		return dto.ReportOutput{}, err
	}
	i.log.Debug("shift report saved", "lounge", report.Lounge, "shift", report.ShiftType, "date", report.Date)
	out := toReport(report)
	out.Saved = true
	out.CoordName = name
	return out, nil
}

func toReport(r domain.Report) dto.ReportOutput {
	return dto.ReportOutput{
		Lounge:    r.Lounge,
		ShiftType: r.ShiftType,
		Date:      r.Date,
		Saved:     !r.Empty(),
		CoordName: r.CoordName,
		Bars:      reportFields(domain.ReportBars, r.Bars),
		Times:     reportFields(domain.ReportTimes, r.Times),
		Notes:     reportFields(domain.ReportNotes, r.Notes),
		CreatedAt: r.CreatedAt,
	}
}

func reportFields(names []string, values map[string]string) []dto.ReportField {
	out := make([]dto.ReportField, 0, len(names))
	for _, n := range names {
		out = append(out, dto.ReportField{Name: n, Value: values[n]})
	}
	return out
}

func toEvent(e domain.Event) dto.EventOutput {
	return dto.EventOutput{
		ID:        e.ID,
		Kind:      string(e.Kind),
		UserID:    e.UserID,
		User:      e.User,
		Date:      e.Date,
		Reason:    e.Reason,
		Hours:     e.Hours,
		From:      e.From,
		To:        e.To,
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}

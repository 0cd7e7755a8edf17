package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grafik/internal/modules/control/domain"
	controlout "grafik/internal/modules/control/port/out"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
)

type ControlService struct {
	cal     clock.BusinessCalendar
	gateway controlout.ControlGateway
}

func NewControlService(cal clock.BusinessCalendar, gateway controlout.ControlGateway) *ControlService {
	return &ControlService{cal: cal, gateway: gateway}
}

func (s *ControlService) Summary(ctx context.Context, month string) (domain.Summary, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		month = s.cal.CurrentMonth()
	}
	if _, err := time.Parse(clock.MonthLayout, month); err != nil {
		return domain.Summary{}, fmt.Errorf("control summary: %w: month must be YYYY-MM, got %q", apperrors.ErrInvalidInput, month)
	}
	summary, err := s.gateway.Summary(ctx, month)
	if err != nil {
		return domain.Summary{}, err
	}
	summary.Month = month
	return summary, nil
}

func (s *ControlService) Record(ctx context.Context, rec domain.Record) (domain.Event, error) {
	if rec.Kind == domain.KindManualShift {
		return domain.Event{}, fmt.Errorf("record %s: %w: use AddShift", rec.Kind, apperrors.ErrInvalidInput)
	}
	rec, err := rec.Normalize()
	if err != nil {
		return domain.Event{}, fmt.Errorf("record %s: %w", rec.Kind, err)
	}
	return s.gateway.Record(ctx, rec)
}

func (s *ControlService) AddShift(ctx context.Context, rec domain.Record) (domain.Event, int64, error) {
	rec.Kind = domain.KindManualShift
	rec, err := rec.Normalize()
	if err != nil {
		return domain.Event{}, 0, fmt.Errorf("add shift: %w", err)
	}
	return s.gateway.AddShift(ctx, rec)
}

func (s *ControlService) Delete(ctx context.Context, id int64, reason string) error {
	if id <= 0 {
		return fmt.Errorf("delete event: %w: id is required", apperrors.ErrInvalidInput)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("delete event: %w: reason is required", apperrors.ErrInvalidInput)
	}
	return s.gateway.Delete(ctx, id, reason)
}

func (s *ControlService) Deleted(ctx context.Context) ([]domain.DeletedEntry, error) {
	return s.gateway.Deleted(ctx)
}

func (s *ControlService) DeletedDetail(ctx context.Context, id int64) (domain.DeletedDetail, error) {
	if id <= 0 {
		return domain.DeletedDetail{}, fmt.Errorf("deleted event: %w: id is required", apperrors.ErrInvalidInput)
	}
	return s.gateway.DeletedDetail(ctx, id)
}

// Report reads the shift report for a key; an empty date means today.
func (s *ControlService) Report(ctx context.Context, key domain.ReportKey) (domain.Report, error) {
	if strings.TrimSpace(key.Date) == "" {
		key.Date = s.cal.Today()
	}
	key, err := key.Normalize()
	if err != nil {
		return domain.Report{}, fmt.Errorf("shift report: %w", err)
	}
	report, err := s.gateway.Report(ctx, key)
	if err != nil {
		return domain.Report{}, err
	}
	return report.Complete(), nil
}

func (s *ControlService) SaveReport(ctx context.Context, report domain.Report) (domain.Report, error) {
	if strings.TrimSpace(report.Date) == "" {
		report.Date = s.cal.Today()
	}
	report, err := report.Normalize()
	if err != nil {
		return domain.Report{}, fmt.Errorf("save shift report: %w", err)
	}
	if err := s.gateway.SaveReport(ctx, report); err != nil {
		return domain.Report{}, err
	}
	return report, nil
}

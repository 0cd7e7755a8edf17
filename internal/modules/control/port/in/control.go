package in

import (
	"context"

	"grafik/internal/modules/control/dto"
)

type Usecase interface {
	// Summary takes YYYY-MM; empty means the current month.
	Summary(ctx context.Context, month string) (dto.SummaryOutput, error)
	RecordLate(ctx context.Context, input dto.LateInput) (dto.EventOutput, error)
	RecordExtra(ctx context.Context, input dto.ExtraInput) (dto.EventOutput, error)
	RecordAbsence(ctx context.Context, input dto.AbsenceInput) (dto.EventOutput, error)
	AddShift(ctx context.Context, input dto.AddShiftInput) (dto.AddShiftOutput, error)
	DeleteEvent(ctx context.Context, id int64, reason string) error
	DeletedLog(ctx context.Context) ([]dto.DeletedOutput, error)
	DeletedDetail(ctx context.Context, id int64) (dto.DeletedDetailOutput, error)
	// Report and SaveReport are limited to coordinators.
	Report(ctx context.Context, key dto.ReportKeyInput) (dto.ReportOutput, error)
	SaveReport(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
}

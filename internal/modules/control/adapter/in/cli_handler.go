package in

import (
	"context"
	"fmt"
	"strings"

	"grafik/internal/modules/control/dto"
	controlin "grafik/internal/modules/control/port/in"
	apperrors "grafik/internal/platform/errors"
)

type CLIHandler struct {
	usecase controlin.Usecase
}

func NewCLIHandler(usecase controlin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Summary(ctx context.Context, month string) (dto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, month)
}

// Record writes a late, extra or absence event. delay and hours apply to
// late and extra respectively; a negative delay means none was given.
func (h CLIHandler) Record(ctx context.Context, kind string, userID int64, date, reason string, delay int, hours float64, from, to string) (dto.EventOutput, error) {
	switch strings.ToLower(kind) {
	case "late":
		input := dto.LateInput{UserID: userID, Date: date, Reason: reason, From: from, To: to}
		if delay >= 0 {
			input.DelayMinutes = &delay
		}
		return h.usecase.RecordLate(ctx, input)
	case "extra":
		return h.usecase.RecordExtra(ctx, dto.ExtraInput{UserID: userID, Date: date, Reason: reason, Hours: hours})
	case "absence":
		return h.usecase.RecordAbsence(ctx, dto.AbsenceInput{UserID: userID, Date: date, Reason: reason})
	default:
		return dto.EventOutput{}, fmt.Errorf("%w: unknown event kind %q", apperrors.ErrInvalidInput, kind)
	}
}

func (h CLIHandler) AddShift(ctx context.Context, userID int64, date, from, to, reason string) (dto.AddShiftOutput, error) {
	return h.usecase.AddShift(ctx, dto.AddShiftInput{UserID: userID, Date: date, From: from, To: to, Reason: reason})
}

func (h CLIHandler) Delete(ctx context.Context, id int64, reason string) error {
	return h.usecase.DeleteEvent(ctx, id, reason)
}

func (h CLIHandler) Deleted(ctx context.Context) ([]dto.DeletedOutput, error) {
	return h.usecase.DeletedLog(ctx)
}

func (h CLIHandler) DeletedDetail(ctx context.Context, id int64) (dto.DeletedDetailOutput, error) {
	return h.usecase.DeletedDetail(ctx, id)
}

func (h CLIHandler) Report(ctx context.Context, lounge, shiftType, date string) (dto.ReportOutput, error) {
	return h.usecase.Report(ctx, dto.ReportKeyInput{Lounge: lounge, ShiftType: shiftType, Date: date})
}

// SaveReport replaces the stored report; callers overlay edits on Report
// first to keep untouched fields.
func (h CLIHandler) SaveReport(ctx context.Context, lounge, shiftType, date string, bars, times, notes map[string]string) (dto.ReportOutput, error) {
	return h.usecase.SaveReport(ctx, dto.ReportInput{
		ReportKeyInput: dto.ReportKeyInput{Lounge: lounge, ShiftType: shiftType, Date: date},
		Bars:           bars,
		Times:          times,
		Notes:          notes,
	})
}

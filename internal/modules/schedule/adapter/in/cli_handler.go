package in

import (
	"context"

	"grafik/internal/modules/schedule/dto"
	schedulein "grafik/internal/modules/schedule/port/in"
)

type CLIHandler struct {
	usecase schedulein.Usecase
}

func NewCLIHandler(usecase schedulein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Month(ctx context.Context, year, month int, refresh bool) (dto.MonthOutput, error) {
	return h.usecase.Month(ctx, dto.MonthInput{Year: year, Month: month, Refresh: refresh})
}

func (h CLIHandler) Ladder(ctx context.Context, year, month int, from string, refresh bool) (dto.MonthOutput, error) {
	return h.usecase.Ladder(ctx, dto.LadderInput{Year: year, Month: month, From: from, Refresh: refresh})
}

func (h CLIHandler) Day(ctx context.Context, date string) (dto.DayOutput, error) {
	return h.usecase.Day(ctx, date)
}

func (h CLIHandler) MyShifts(ctx context.Context) ([]dto.ShiftOutput, error) {
	return h.usecase.MyShifts(ctx)
}

func (h CLIHandler) NextShift(ctx context.Context) (dto.NextShiftOutput, error) {
	return h.usecase.NextShift(ctx)
}

func (h CLIHandler) SwapCandidates(ctx context.Context, targetDate, targetCode string) ([]dto.ShiftOutput, error) {
	return h.usecase.SwapCandidates(ctx, dto.SwapCandidatesInput{TargetDate: targetDate, TargetCode: targetCode})
}

func (h CLIHandler) CheckTakeover(ctx context.Context, date string) error {
	return h.usecase.CheckTakeover(ctx, date)
}

func (h CLIHandler) CheckIn(ctx context.Context, shiftID int64) (dto.ShiftOutput, error) {
	return h.usecase.CheckIn(ctx, shiftID)
}

func (h CLIHandler) CheckOut(ctx context.Context, shiftID int64) (dto.ShiftOutput, error) {
	return h.usecase.CheckOut(ctx, shiftID)
}

func (h CLIHandler) SaveWorklog(ctx context.Context, shiftID int64, workedHours *float64, start, end, note string) (dto.WorklogOutput, error) {
	return h.usecase.SaveWorklog(ctx, dto.WorklogInput{ShiftID: shiftID, WorkedHours: workedHours, Start: start, End: end, Note: note})
}

func (h CLIHandler) InvalidateAll(ctx context.Context) error {
	return h.usecase.InvalidateAll(ctx)
}

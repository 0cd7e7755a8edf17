package in

import (
	"context"

	"grafik/internal/modules/schedule/dto"
)

type Usecase interface {
	Month(ctx context.Context, input dto.MonthInput) (dto.MonthOutput, error)
	Ladder(ctx context.Context, input dto.LadderInput) (dto.MonthOutput, error)
	Day(ctx context.Context, date string) (dto.DayOutput, error)
	MyShifts(ctx context.Context) ([]dto.ShiftOutput, error)
	NextShift(ctx context.Context) (dto.NextShiftOutput, error)
	SwapCandidates(ctx context.Context, input dto.SwapCandidatesInput) ([]dto.ShiftOutput, error)
	CheckTakeover(ctx context.Context, date string) error
	CheckIn(ctx context.Context, shiftID int64) (dto.ShiftOutput, error)
	CheckOut(ctx context.Context, shiftID int64) (dto.ShiftOutput, error)
	SaveWorklog(ctx context.Context, input dto.WorklogInput) (dto.WorklogOutput, error)
	InvalidateMonth(ctx context.Context, date string) error
	InvalidateAll(ctx context.Context) error
}

package usecase

import (
	"context"

	"grafik/internal/modules/schedule/domain"
	"grafik/internal/modules/schedule/dto"
	schedulein "grafik/internal/modules/schedule/port/in"
	"grafik/internal/modules/schedule/service"
)

type Interactor struct {
	svc *service.ScheduleService
}

func NewInteractor(svc *service.ScheduleService) schedulein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Month(ctx context.Context, input dto.MonthInput) (dto.MonthOutput, error) {
	m, cached, err := i.svc.Month(ctx, input.Year, input.Month, input.Refresh)
	if err != nil {
		return dto.MonthOutput{}, err
	}
	return toMonth(m, domain.Ladder(m, ""), cached), nil
}

func (i *Interactor) Ladder(ctx context.Context, input dto.LadderInput) (dto.MonthOutput, error) {
	m, cached, err := i.svc.Month(ctx, input.Year, input.Month, input.Refresh)
	if err != nil {
		return dto.MonthOutput{}, err
	}
	from := input.From
	if from == "" {
		from = i.svc.Calendar().Today()
	}
	return toMonth(m, domain.Ladder(m, from), cached), nil
}

func (i *Interactor) Day(ctx context.Context, date string) (dto.DayOutput, error) {
	day, err := i.svc.Day(ctx, date)
	if err != nil {
		return dto.DayOutput{}, err
	}
	return toDay(day), nil
}

func (i *Interactor) MyShifts(ctx context.Context) ([]dto.ShiftOutput, error) {
	shifts, err := i.svc.MyShifts(ctx)
	if err != nil {
		return nil, err
	}
	return toShifts(shifts), nil
}

func (i *Interactor) NextShift(ctx context.Context) (dto.NextShiftOutput, error) {
	next, err := i.svc.NextShift(ctx)
	if err != nil {
		return dto.NextShiftOutput{}, err
	}
	return dto.NextShiftOutput{
		Empty:      next.Empty,
		Date:       next.Date,
		Code:       next.Code,
		Hours:      next.Hours,
		MonthTotal: next.MonthTotal,
		MonthDone:  next.MonthDone,
	}, nil
}

func (i *Interactor) SwapCandidates(ctx context.Context, input dto.SwapCandidatesInput) ([]dto.ShiftOutput, error) {
	shifts, err := i.svc.SwapCandidates(ctx, input.TargetDate, input.TargetCode)
	if err != nil {
		return nil, err
	}
	return toShifts(shifts), nil
}

func (i *Interactor) CheckTakeover(ctx context.Context, date string) error {
	return i.svc.CheckTakeover(ctx, date)
}

func (i *Interactor) CheckIn(ctx context.Context, shiftID int64) (dto.ShiftOutput, error) {
	shift, err := i.svc.CheckIn(ctx, shiftID)
	if err != nil {
		return dto.ShiftOutput{}, err
	}
	return toShift(shift), nil
}

func (i *Interactor) CheckOut(ctx context.Context, shiftID int64) (dto.ShiftOutput, error) {
	shift, err := i.svc.CheckOut(ctx, shiftID)
	if err != nil {
		return dto.ShiftOutput{}, err
	}
	return toShift(shift), nil
}

func (i *Interactor) SaveWorklog(ctx context.Context, input dto.WorklogInput) (dto.WorklogOutput, error) {
	hours, err := i.svc.SaveWorklog(ctx, input.ShiftID, domain.Worklog{
		WorkedHours: input.WorkedHours,
		Start:       input.Start,
		End:         input.End,
		Note:        input.Note,
	})
	if err != nil {
		return dto.WorklogOutput{}, err
	}
	return dto.WorklogOutput{WorkedHours: hours}, nil
}

func (i *Interactor) InvalidateMonth(ctx context.Context, date string) error {
	return i.svc.InvalidateMonth(ctx, date)
}

func (i *Interactor) InvalidateAll(ctx context.Context) error {
	return i.svc.InvalidateAll(ctx)
}

func toMonth(m domain.Month, days []domain.Day, cached bool) dto.MonthOutput {
	out := dto.MonthOutput{Year: m.Year, Month: m.Month, Cached: cached, Days: make([]dto.DayOutput, 0, len(days))}
	for _, day := range days {
		out.Days = append(out.Days, toDay(day))
	}
	return out
}

func toDay(day domain.Day) dto.DayOutput {
	return dto.DayOutput{Date: day.Date, Morning: toAssignments(day.Morning), Evening: toAssignments(day.Evening)}
}

func toAssignments(rows []domain.Assignment) []dto.AssignmentOutput {
	out := make([]dto.AssignmentOutput, 0, len(rows))
	for _, a := range rows {
		chip := domain.Classify(a)
		out = append(out, dto.AssignmentOutput{
			UserID:      a.UserID,
			FullName:    a.FullName,
			Code:        a.Code,
			Hours:       a.Hours,
			Chip:        string(chip.Kind),
			ChipLounge:  chip.Lounge,
			Lounge:      a.Lounge,
			CoordLounge: a.CoordLounge,
		})
	}
	return out
}

func toShifts(shifts []domain.Shift) []dto.ShiftOutput {
	out := make([]dto.ShiftOutput, 0, len(shifts))
	for _, s := range shifts {
		out = append(out, toShift(s))
	}
	return out
}

func toShift(s domain.Shift) dto.ShiftOutput {
	return dto.ShiftOutput{
		ID:          s.ID,
		Date:        s.Date,
		Code:        s.Code,
		Group:       string(s.Group()),
		Hours:       s.Hours,
		WorkedHours: s.WorkedHours,
		Lounge:      s.Lounge,
		CoordLounge: s.CoordLounge,
		CheckedIn:   s.CheckedIn(),
		CheckedOut:  s.CheckedOut(),
	}
}

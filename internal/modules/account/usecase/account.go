package usecase

import (
	"context"

	"grafik/internal/modules/account/domain"
	"grafik/internal/modules/account/dto"
	accountin "grafik/internal/modules/account/port/in"
	"grafik/internal/modules/account/service"
)

type Interactor struct {
	svc *service.AccountService
}

func NewInteractor(svc *service.AccountService) accountin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	p, err := i.svc.Profile(ctx)
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfile(p), nil
}

func (i *Interactor) UpdateProfile(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error) {
	p, err := i.svc.UpdateProfile(ctx, domain.ProfileUpdate{FullName: input.FullName, Email: input.Email})
	if err != nil {
		return dto.ProfileOutput{}, err
	}
	return toProfile(p), nil
}

func (i *Interactor) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	s, err := i.svc.Settings(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return dto.SettingsOutput{Rate: s.Rate, Tax: s.Tax}, nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsInput) error {
	return i.svc.UpdateSettings(ctx, domain.PaySettings{Rate: input.Rate, Tax: input.Tax})
}

func (i *Interactor) Stats(ctx context.Context, month string) (dto.StatsOutput, error) {
	stats, err := i.svc.Stats(ctx, month)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return toStats(stats), nil
}

func (i *Interactor) ExportStats(ctx context.Context, month, path string) (dto.StatsOutput, error) {
	stats, err := i.svc.ExportStats(ctx, month, path)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return toStats(stats), nil
}

func (i *Interactor) Preference(ctx context.Context, key string) (string, error) {
	return i.svc.Preference(ctx, key)
}

func (i *Interactor) SetPreference(ctx context.Context, key, value string) error {
	return i.svc.SetPreference(ctx, key, value)
}

func toProfile(p domain.Profile) dto.ProfileOutput {
	return dto.ProfileOutput{ID: p.ID, Email: p.Email, FullName: p.FullName, Role: p.Role, Rate: p.Rate, Tax: p.Tax}
}

func toStats(s domain.Stats) dto.StatsOutput {
	out := dto.StatsOutput{
		Month:         s.Month,
		From:          s.From,
		To:            s.To,
		Rate:          s.Rate,
		Tax:           s.Tax,
		HoursTotal:    s.HoursTotal,
		HoursDone:     s.HoursDone,
		HoursLeft:     s.HoursLeft,
		GrossDone:     s.GrossDone,
		NetDone:       s.NetDone,
		GrossAll:      s.GrossAll,
		NetAll:        s.NetAll,
		TargetHours:   domain.MonthlyTargetHours,
		TargetLeft:    s.TargetLeft(),
		TargetPercent: s.TargetPercent(),
		Daily:         make([]dto.StatsDayOutput, 0, len(s.Daily)),
	}
	for _, d := range s.Daily {
		out.Daily = append(out.Daily, dto.StatsDayOutput{Date: d.Date, Code: d.Code, Hours: d.Hours, Done: d.Done, Gross: d.Gross, Net: d.Net})
	}
	return out
}

package in

import (
	"context"

	"grafik/internal/modules/account/dto"
	accountin "grafik/internal/modules/account/port/in"
)

type CLIHandler struct {
	usecase accountin.Usecase
}

func NewCLIHandler(usecase accountin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Profile(ctx context.Context) (dto.ProfileOutput, error) {
	return h.usecase.Profile(ctx)
}

func (h CLIHandler) UpdateProfile(ctx context.Context, fullName, email string) (dto.ProfileOutput, error) {
	return h.usecase.UpdateProfile(ctx, dto.ProfileInput{FullName: fullName, Email: email})
}

func (h CLIHandler) Settings(ctx context.Context) (dto.SettingsOutput, error) {
	return h.usecase.Settings(ctx)
}

// SetSettings sends rate as unset when hasRate is false.
func (h CLIHandler) SetSettings(ctx context.Context, rate float64, hasRate bool, tax float64) error {
	input := dto.SettingsInput{Tax: tax}
	if hasRate {
		input.Rate = &rate
	}
	return h.usecase.UpdateSettings(ctx, input)
}

// Stats exports to path when it is non-empty.
func (h CLIHandler) Stats(ctx context.Context, month, path string) (dto.StatsOutput, error) {
	if path != "" {
		return h.usecase.ExportStats(ctx, month, path)
	}
	return h.usecase.Stats(ctx, month)
}

func (h CLIHandler) Preference(ctx context.Context, key string) (string, error) {
	return h.usecase.Preference(ctx, key)
}

func (h CLIHandler) SetPreference(ctx context.Context, key, value string) error {
	return h.usecase.SetPreference(ctx, key, value)
}

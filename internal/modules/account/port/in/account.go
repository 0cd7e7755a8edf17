package in

import (
	"context"

	"grafik/internal/modules/account/dto"
)

type Usecase interface {
	Profile(ctx context.Context) (dto.ProfileOutput, error)
	UpdateProfile(ctx context.Context, input dto.ProfileInput) (dto.ProfileOutput, error)
	Settings(ctx context.Context) (dto.SettingsOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsInput) error
	// Stats takes YYYY-MM; empty means the current month.
	Stats(ctx context.Context, month string) (dto.StatsOutput, error)
	ExportStats(ctx context.Context, month, path string) (dto.StatsOutput, error)
	Preference(ctx context.Context, key string) (string, error)
	SetPreference(ctx context.Context, key, value string) error
}

package out

import (
	"context"

	"grafik/internal/modules/account/domain"
)

type AccountGateway interface {
	Profile(ctx context.Context) (domain.Profile, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Profile, error)
	Settings(ctx context.Context) (domain.PaySettings, error)
	UpdateSettings(ctx context.Context, settings domain.PaySettings) error
	Stats(ctx context.Context, month string) (domain.Stats, error)
}

// PreferenceStore returns apperrors.ErrNotFound for keys never written.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

type StatsExporter interface {
	Export(stats domain.Stats, path string) error
}

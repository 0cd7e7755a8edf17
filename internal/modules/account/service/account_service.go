package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"grafik/internal/modules/account/domain"
	accountout "grafik/internal/modules/account/port/out"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
)

type AccountService struct {
	cal      clock.BusinessCalendar
	gateway  accountout.AccountGateway
	prefs    accountout.PreferenceStore
	exporter accountout.StatsExporter
}

func NewAccountService(cal clock.BusinessCalendar, gateway accountout.AccountGateway, prefs accountout.PreferenceStore, exporter accountout.StatsExporter) *AccountService {
	return &AccountService{cal: cal, gateway: gateway, prefs: prefs, exporter: exporter}
}

func (s *AccountService) Profile(ctx context.Context) (domain.Profile, error) {
	return s.gateway.Profile(ctx)
}

func (s *AccountService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (domain.Profile, error) {
	update, err := update.Normalize()
	if err != nil {
		return domain.Profile{}, fmt.Errorf("update profile: %w", err)
	}
	return s.gateway.UpdateProfile(ctx, update)
}

func (s *AccountService) Settings(ctx context.Context) (domain.PaySettings, error) {
	return s.gateway.Settings(ctx)
}

func (s *AccountService) UpdateSettings(ctx context.Context, settings domain.PaySettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	return s.gateway.UpdateSettings(ctx, settings)
}

func (s *AccountService) Stats(ctx context.Context, month string) (domain.Stats, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		month = s.cal.CurrentMonth()
	}
	if _, err := time.Parse(clock.MonthLayout, month); err != nil {
		return domain.Stats{}, fmt.Errorf("stats: %w: month must be YYYY-MM, got %q", apperrors.ErrInvalidInput, month)
	}
	stats, err := s.gateway.Stats(ctx, month)
	if err != nil {
		return domain.Stats{}, err
	}
	stats.Month = month
	return stats, nil
}

func (s *AccountService) ExportStats(ctx context.Context, month, path string) (domain.Stats, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return domain.Stats{}, fmt.Errorf("export stats: %w: path is required", apperrors.ErrInvalidInput)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".xlsx" {
		return domain.Stats{}, fmt.Errorf("export stats: %w: %q is not an .xlsx path", apperrors.ErrInvalidInput, path)
	}
	stats, err := s.Stats(ctx, month)
	if err != nil {
		return domain.Stats{}, err
	}
	if err := s.exporter.Export(stats, path); err != nil {
		return domain.Stats{}, fmt.Errorf("export stats: %w", err)
	}
	return stats, nil
}

// Preference falls back to the key's default when nothing is stored.
func (s *AccountService) Preference(ctx context.Context, key string) (string, error) {
	key, err := domain.PreferenceKey(key)
	if err != nil {
		return "", err
	}
	value, err := s.prefs.Get(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		return domain.DefaultPreference(key), nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *AccountService) SetPreference(ctx context.Context, key, value string) error {
	key, value, err := domain.ValidatePreference(key, value)
	if err != nil {
		return fmt.Errorf("set preference: %w", err)
	}
	return s.prefs.Set(ctx, key, value)
}

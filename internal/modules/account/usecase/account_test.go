package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	accountout "grafik/internal/modules/account/adapter/out"
	"grafik/internal/modules/account/dto"
	accountin "grafik/internal/modules/account/port/in"
	"grafik/internal/modules/account/service"
	"grafik/internal/modules/account/usecase"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/httpapi"
	"grafik/internal/platform/sqlitedb"
	"grafik/internal/testutil/fakeapi"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type staticToken string

func (s staticToken) Token() string     { return string(s) }
func (s staticToken) ClearToken() error { return nil }

func newAccount(t *testing.T, backend *fakeapi.Backend, user fakeapi.User) accountin.Usecase {
	t.Helper()
	ctx := context.Background()
	cal, err := clock.NewBusinessCalendar(fixedClock{now: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}, clock.DefaultZone)
	if err != nil {
		t.Fatal(err)
	}
	db, err := sqlitedb.Open(ctx, filepath.Join(t.TempDir(), "grafik.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	prefs, err := accountout.NewSQLitePreferenceStore(ctx, db)
	if err != nil {
		t.Fatal(err)
	}
	client := httpapi.New(staticToken(backend.Token(user.ID)), httpapi.Options{BaseURL: backend.URL(), RetryDelay: 10 * time.Millisecond})
	svc := service.NewAccountService(cal, accountout.NewHTTPAccountGateway(client), prefs, accountout.NewXLSXStatsExporter())
	return usecase.NewInteractor(svc)
}

func TestProfileAndSettings(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	account := newAccount(t, backend, anna)
	ctx := context.Background()

	profile, err := account.UpdateProfile(ctx, dto.ProfileInput{FullName: " Anna Nowak "})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if profile.FullName != "Anna Nowak" || profile.Email != "anna@example.com" || profile.Role != "user" {
		t.Fatalf("unexpected profile %+v", profile)
	}

	if err := account.UpdateSettings(ctx, dto.SettingsInput{Tax: 101}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected tax above 100 rejected, got %v", err)
	}
	if backend.Hits("/me/settings") != 0 {
		t.Fatalf("invalid settings must not be sent")
	}
	rate := 31.5
	if err := account.UpdateSettings(ctx, dto.SettingsInput{Rate: &rate, Tax: 12}); err != nil {
		t.Fatalf("update settings: %v", err)
	}
	settings, err := account.Settings(ctx)
	if err != nil {
		t.Fatalf("settings: %v", err)
	}
	if settings.Rate == nil || *settings.Rate != 31.5 || settings.Tax != 12 {
		t.Fatalf("unexpected settings %+v", settings)
	}
}

func TestStatsProgressAndExport(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	backend.UpdateUser(anna.ID, func(u *fakeapi.User) {
		rate := 30.0
		u.Rate = &rate
		u.Tax = 10
	})
	backend.AddShift(fakeapi.Shift{UserID: anna.ID, Date: "2026-05-04", Code: "1", Hours: 8})
	backend.AddShift(fakeapi.Shift{UserID: anna.ID, Date: "2026-05-20", Code: "2", Hours: 8})
	backend.AddShift(fakeapi.Shift{UserID: anna.ID, Date: "2026-06-01", Code: "1", Hours: 8})
	account := newAccount(t, backend, anna)
	ctx := context.Background()

	stats, err := account.Stats(ctx, "")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Month != "2026-05" || stats.HoursTotal != 16 || stats.HoursDone != 8 || len(stats.Daily) != 2 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if stats.GrossAll != 480 || stats.NetAll != 432 || stats.NetDone != 216 {
		t.Fatalf("unexpected pay %+v", stats)
	}
	if stats.TargetLeft != 144 || stats.TargetPercent != 10 {
		t.Fatalf("unexpected target progress left=%v pct=%v", stats.TargetLeft, stats.TargetPercent)
	}

	if _, err := account.ExportStats(ctx, "2026-05", filepath.Join(t.TempDir(), "stats.csv")); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected non-xlsx path rejected, got %v", err)
	}
	path := filepath.Join(t.TempDir(), "stats.xlsx")
	if _, err := account.ExportStats(ctx, "2026-05", path); err != nil {
		t.Fatalf("export: %v", err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("expected workbook on disk, got %v", err)
	}
}

func TestPreferencesDefaultAndPersist(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	account := newAccount(t, backend, anna)
	ctx := context.Background()

	theme, err := account.Preference(ctx, "theme")
	if err != nil || theme != "mocha" {
		t.Fatalf("expected default theme, got %q %v", theme, err)
	}
	if err := account.SetPreference(ctx, "theme", "Latte"); err != nil {
		t.Fatalf("set theme: %v", err)
	}
	if theme, _ := account.Preference(ctx, "THEME"); theme != "latte" {
		t.Fatalf("expected stored theme, got %q", theme)
	}
	if err := account.SetPreference(ctx, "language", "de"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unsupported language rejected, got %v", err)
	}
	if _, err := account.Preference(ctx, "font"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unknown key rejected, got %v", err)
	}
}

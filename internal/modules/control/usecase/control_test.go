package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	controlout "grafik/internal/modules/control/adapter/out"
	"grafik/internal/modules/control/dto"
	controlin "grafik/internal/modules/control/port/in"
	controlservice "grafik/internal/modules/control/service"
	"grafik/internal/modules/control/usecase"
	scheduleadapter "grafik/internal/modules/schedule/adapter/out"
	scheduledomain "grafik/internal/modules/schedule/domain"
	scheduleservice "grafik/internal/modules/schedule/service"
	scheduleusecase "grafik/internal/modules/schedule/usecase"
	sessionadapter "grafik/internal/modules/session/adapter/out"
	sessionservice "grafik/internal/modules/session/service"
	sessionusecase "grafik/internal/modules/session/usecase"
	"grafik/internal/platform/clock"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/httpapi"
	"grafik/internal/testutil/fakeapi"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// trackingCache never hits and records which keys were dropped.
type trackingCache struct {
	mu      sync.Mutex
	deleted []string
	cleared int
}

func (c *trackingCache) Get(context.Context, string) (scheduledomain.CachedMonth, error) {
	return scheduledomain.CachedMonth{}, apperrors.ErrCacheMiss
}

func (c *trackingCache) Put(context.Context, string, scheduledomain.CachedMonth, time.Duration) error {
	return nil
}

func (c *trackingCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *trackingCache) Clear(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared++
	return nil
}

func (c *trackingCache) snapshot() ([]string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...), c.cleared
}

func controlFor(t *testing.T, backend *fakeapi.Backend, user fakeapi.User) (controlin.Usecase, *trackingCache) {
	t.Helper()
	cal, err := clock.NewBusinessCalendar(fixedClock{now: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}, clock.DefaultZone)
	if err != nil {
		t.Fatal(err)
	}
	sessions := sessionservice.NewSessionService(nil, sessionadapter.NewMemoryTokenStore(), sessionadapter.NewMemoryTokenStore(), nil)
	if err := sessions.SetToken(backend.Token(user.ID), false); err != nil {
		t.Fatal(err)
	}
	client := httpapi.New(sessions, httpapi.Options{BaseURL: backend.URL(), RetryDelay: 10 * time.Millisecond})
	session := sessionusecase.NewInteractor(sessions, sessionadapter.NewHTTPAuthGateway(client))
	cache := &trackingCache{}
	schedule := scheduleusecase.NewInteractor(scheduleservice.NewScheduleService(cal, scheduleadapter.NewHTTPScheduleGateway(client), cache, time.Minute, nil))
	svc := controlservice.NewControlService(cal, controlout.NewHTTPControlGateway(client))
	return usecase.NewInteractor(svc, schedule, session, nil), cache
}

func TestEmployeeWritesNeverReachBackend(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	control, _ := controlFor(t, backend, anna)
	ctx := context.Background()

	_, err := control.RecordAbsence(ctx, dto.AbsenceInput{UserID: anna.ID, Date: "2026-05-11", Reason: "L4"})
	if !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := control.DeleteEvent(ctx, 1, "mistake"); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	if backend.Hits("/control/absence") != 0 || backend.Hits("/control/delete") != 0 {
		t.Fatalf("forbidden writes must stay local")
	}
}

func TestCoordinatorRecordsEvents(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	kasia := backend.AddUser("kasia@example.com", "Kasia", "pw", fakeapi.RoleCoordinator)
	control, _ := controlFor(t, backend, kasia)
	ctx := context.Background()

	delay := 15
	late, err := control.RecordLate(ctx, dto.LateInput{UserID: anna.ID, Date: "12.05.2026", Reason: " tram ", DelayMinutes: &delay, From: "06:15"})
	if err != nil {
		t.Fatalf("late: %v", err)
	}
	if late.Kind != "late" || late.Date != "2026-05-12" || late.Reason != "tram" || late.User != "Anna" || late.CreatedBy != "Kasia" {
		t.Fatalf("unexpected late event %+v", late)
	}

	if _, err := control.RecordExtra(ctx, dto.ExtraInput{UserID: anna.ID, Date: "2026-05-12", Hours: 0}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected zero hours rejected, got %v", err)
	}
	if backend.Hits("/control/extra") != 0 {
		t.Fatalf("invalid extra must not be sent")
	}
	extra, err := control.RecordExtra(ctx, dto.ExtraInput{UserID: anna.ID, Date: "2026-05-13", Reason: "inventory", Hours: 2.5})
	if err != nil {
		t.Fatalf("extra: %v", err)
	}
	if extra.Hours == nil || *extra.Hours != 2.5 {
		t.Fatalf("expected 2.5 extra hours, got %+v", extra.Hours)
	}

	summary, err := control.Summary(ctx, "")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Month != "2026-05" || len(summary.Events) != 2 || summary.Events[0].ID != late.ID {
		t.Fatalf("unexpected summary events %+v", summary)
	}
	if _, err := control.Summary(ctx, "May"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected bad month rejected, got %v", err)
	}
}

func TestSummaryFlagsShortDays(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	kasia := backend.AddUser("kasia@example.com", "Kasia", "pw", fakeapi.RoleCoordinator)
	backend.AddShift(fakeapi.Shift{UserID: anna.ID, Date: "2026-05-04", Code: "2", Hours: 8})
	control, _ := controlFor(t, backend, kasia)

	summary, err := control.Summary(context.Background(), "2026-05")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.Staffing) != 31 || len(summary.ShortDays) != 31 {
		t.Fatalf("expected every May day below the norm, got %d rows %d short", len(summary.Staffing), len(summary.ShortDays))
	}
	day := summary.Staffing[3]
	if day.Date != "2026-05-04" || day.Evening != 1 || day.EveningDelta != 1-fakeapi.StaffingNorm || !day.Short {
		t.Fatalf("unexpected staffing row %+v", day)
	}
}

func TestAddShiftInvalidatesItsMonth(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	kasia := backend.AddUser("kasia@example.com", "Kasia", "pw", fakeapi.RoleCoordinator)
	control, cache := controlFor(t, backend, kasia)
	ctx := context.Background()

	if _, err := control.AddShift(ctx, dto.AddShiftInput{UserID: anna.ID, Date: "2026-05-20", From: "22:00", To: "06:00"}); err != nil {
		t.Fatalf("add shift: %v", err)
	}
	if _, err := control.AddShift(ctx, dto.AddShiftInput{UserID: anna.ID, Date: "2026-05-21", From: "25:00", To: "06:00"}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected bad clock rejected, got %v", err)
	}
	if backend.Hits("/control/add-shift") != 1 {
		t.Fatalf("expected only the valid add-shift to be sent")
	}

	out, err := control.AddShift(ctx, dto.AddShiftInput{UserID: anna.ID, Date: "2026-06-02", From: "06:00", To: "14:30", Reason: "cover"})
	if err != nil {
		t.Fatalf("add shift: %v", err)
	}
	shift, ok := backend.Shift(out.ShiftID)
	if !ok || shift.Worked == nil || *shift.Worked != 8.5 {
		t.Fatalf("expected an 8.5h shift on the backend, got %+v", shift)
	}
	if out.Event.Kind != "manual_shift" || out.Event.Hours == nil || *out.Event.Hours != 8.5 {
		t.Fatalf("unexpected event %+v", out.Event)
	}
	deleted, cleared := cache.snapshot()
	if len(deleted) != 2 || deleted[0] == deleted[1] || cleared != 0 {
		t.Fatalf("expected one month key per add-shift, got %v cleared=%d", deleted, cleared)
	}
}

func TestDeleteEventKeepsAuditTrail(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	kasia := backend.AddUser("kasia@example.com", "Kasia", "pw", fakeapi.RoleCoordinator)
	id := backend.AddEvent(fakeapi.Event{Kind: "absence", UserID: anna.ID, Date: "2026-05-08", Reason: "L4", CreatedBy: kasia.ID})
	control, cache := controlFor(t, backend, kasia)
	ctx := context.Background()

	if err := control.DeleteEvent(ctx, id, "   "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected blank reason rejected, got %v", err)
	}
	if err := control.DeleteEvent(ctx, id, "entered twice"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, cleared := cache.snapshot(); cleared != 1 {
		t.Fatalf("expected the month cache cleared once, got %d", cleared)
	}

	log, err := control.DeletedLog(ctx)
	if err != nil {
		t.Fatalf("deleted log: %v", err)
	}
	if len(log) != 1 || log[0].EventID != id || log[0].UserName != "Kasia" || log[0].Reason != "entered twice" {
		t.Fatalf("unexpected deleted log %+v", log)
	}
	detail, err := control.DeletedDetail(ctx, id)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Kind != "absence" || detail.EventDate != "2026-05-08" || detail.UserName != "Anna" || detail.DeletedBy != "Kasia" {
		t.Fatalf("unexpected detail %+v", detail)
	}
	if _, err := control.DeletedDetail(ctx, id+100); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := control.DeleteEvent(ctx, id, "again"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected second delete to miss, got %v", err)
	}
}

func fieldValue(fields []dto.ReportField, name string) (string, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

func TestCoordinatorSavesShiftReport(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	kasia := backend.AddUser("kasia@example.com", "Kasia", "pw", fakeapi.RoleCoordinator)
	control, _ := controlFor(t, backend, kasia)
	ctx := context.Background()

	empty, err := control.Report(ctx, dto.ReportKeyInput{Lounge: "Mazurek", ShiftType: "morning"})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if empty.Saved || empty.Date != "2026-05-10" || empty.Lounge != "mazurek" || len(empty.Bars) != 6 || len(empty.Times) != 2 || len(empty.Notes) != 3 {
		t.Fatalf("expected a blank report for today, got %+v", empty)
	}

	saved, err := control.SaveReport(ctx, dto.ReportInput{
		ReportKeyInput: dto.ReportKeyInput{Lounge: "polonez", ShiftType: "evening", Date: "11.05.2026"},
		Bars:           map[string]string{"bar0": " ok "},
		Times:          map[string]string{"arrived": "13:55"},
		Notes:          map[string]string{"passengers": "210"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !saved.Saved || saved.CoordName != "Kasia" || saved.Date != "2026-05-11" {
		t.Fatalf("unexpected save result %+v", saved)
	}
	stored, ok := backend.Report("polonez", "evening", "2026-05-11")
	if !ok || stored.CoordName != "Kasia" || stored.Bars["bar0"] != "ok" || stored.Times["left"] != "" {
		t.Fatalf("unexpected stored report %+v", stored)
	}

	got, err := control.Report(ctx, dto.ReportKeyInput{Lounge: "polonez", ShiftType: "evening", Date: "2026-05-11"})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if !got.Saved || got.CoordName != "Kasia" {
		t.Fatalf("expected the saved report back, got %+v", got)
	}
	if v, _ := fieldValue(got.Times, "arrived"); v != "13:55" {
		t.Fatalf("arrived = %q", v)
	}
	if v, ok := fieldValue(got.Bars, "barman"); !ok || v != "" {
		t.Fatalf("expected a blank barman field, got %q %v", v, ok)
	}
	if got.Bars[0].Name != "bar0" || got.Notes[2].Name != "passengers" {
		t.Fatalf("fields must keep form order, got %+v %+v", got.Bars, got.Notes)
	}
}

func TestShiftReportIsCoordinatorOnly(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	root := backend.AddUser("root@example.com", "Root", "pw", fakeapi.RoleAdmin)
	ctx := context.Background()
	key := dto.ReportKeyInput{Lounge: "mazurek", ShiftType: "morning", Date: "2026-05-10"}

	for _, user := range []fakeapi.User{anna, root} {
		control, _ := controlFor(t, backend, user)
		if _, err := control.Report(ctx, key); !errors.Is(err, apperrors.ErrForbidden) {
			t.Fatalf("%s: expected forbidden read, got %v", user.FullName, err)
		}
		if _, err := control.SaveReport(ctx, dto.ReportInput{ReportKeyInput: key}); !errors.Is(err, apperrors.ErrForbidden) {
			t.Fatalf("%s: expected forbidden save, got %v", user.FullName, err)
		}
	}
	if backend.Hits("/coord-panel/report") != 0 {
		t.Fatalf("forbidden report calls must stay local")
	}
}

func TestShiftReportRejectsBadFields(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	kasia := backend.AddUser("kasia@example.com", "Kasia", "pw", fakeapi.RoleCoordinator)
	control, _ := controlFor(t, backend, kasia)
	ctx := context.Background()
	key := dto.ReportKeyInput{Lounge: "mazurek", ShiftType: "morning", Date: "2026-05-10"}

	cases := []dto.ReportInput{
		{ReportKeyInput: dto.ReportKeyInput{Lounge: "lobby", ShiftType: "morning"}},
		{ReportKeyInput: dto.ReportKeyInput{Lounge: "mazurek", ShiftType: "night"}},
		{ReportKeyInput: dto.ReportKeyInput{Lounge: "mazurek", ShiftType: "morning", Date: "jutro"}},
		{ReportKeyInput: key, Times: map[string]string{"arrived": "7.30"}},
		{ReportKeyInput: key, Bars: map[string]string{"bar9": "ok"}},
	}
	for _, in := range cases {
		if _, err := control.SaveReport(ctx, in); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected %+v rejected, got %v", in, err)
		}
	}
	if backend.Hits("/coord-panel/report") != 0 {
		t.Fatalf("invalid reports must not be sent")
	}
}

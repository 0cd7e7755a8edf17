package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	adminout "grafik/internal/modules/admin/adapter/out"
	"grafik/internal/modules/admin/dto"
	adminin "grafik/internal/modules/admin/port/in"
	adminservice "grafik/internal/modules/admin/service"
	"grafik/internal/modules/admin/usecase"
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
	"grafik/internal/testutil/fixtures"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type keyCache struct {
	mu      sync.Mutex
	deleted []string
}

func (c *keyCache) Get(context.Context, string) (scheduledomain.CachedMonth, error) {
	return scheduledomain.CachedMonth{}, apperrors.ErrCacheMiss
}

func (c *keyCache) Put(context.Context, string, scheduledomain.CachedMonth, time.Duration) error {
	return nil
}

func (c *keyCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *keyCache) Clear(context.Context) error { return nil }

func (c *keyCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.deleted...)
}

func adminFor(t *testing.T, backend *fakeapi.Backend, user fakeapi.User) (adminin.Usecase, *keyCache) {
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
	cache := &keyCache{}
	schedule := scheduleusecase.NewInteractor(scheduleservice.NewScheduleService(cal, scheduleadapter.NewHTTPScheduleGateway(client), cache, time.Minute, nil))
	svc := adminservice.NewAdminService(adminout.NewLocalDocumentInspector(), adminout.NewHTTPImportGateway(client), adminout.NewHTTPUserGateway(client))
	return usecase.NewInteractor(svc, schedule, session, nil), cache
}

func TestImportPDFUploadsAndInvalidates(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	admin := backend.AddUser("admin@example.com", "Admin", "pw", fakeapi.RoleAdmin)
	uc, cache := adminFor(t, backend, admin)
	path := fixtures.Write(t, "czerwiec.pdf", fixtures.PDF(1))

	out, err := uc.ImportPDF(context.Background(), dto.FileImportInput{Path: path, Year: 2026, Month: 6, Advanced: true})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Imported != 1 || out.Units != 1 || out.FileName != "czerwiec.pdf" || out.CreatedUsers == nil {
		t.Fatalf("unexpected import result %+v", out)
	}
	uploads := backend.Uploads()
	if len(uploads) != 1 {
		t.Fatalf("expected one upload, got %d", len(uploads))
	}
	up := uploads[0]
	if up.Path != "/upload-pdf-adv" || up.FileName != "czerwiec.pdf" || up.Year != "2026" || up.Month != "6" {
		t.Fatalf("unexpected upload %+v", up)
	}
	if keys := cache.keys(); len(keys) != 1 || keys[0] != scheduledomain.MonthKey(2026, 6) {
		t.Fatalf("expected June invalidated, got %v", keys)
	}
}

func TestImportRejectsLocallyBeforeUpload(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	admin := backend.AddUser("admin@example.com", "Admin", "pw", fakeapi.RoleAdmin)
	uc, cache := adminFor(t, backend, admin)
	ctx := context.Background()

	broken := fixtures.Write(t, "maj.xlsx", []byte("not a zip"))
	if _, err := uc.ImportXLSX(ctx, dto.FileImportInput{Path: broken, Year: 2026, Month: 5}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected broken workbook rejected, got %v", err)
	}
	good := fixtures.Write(t, "maj.pdf", fixtures.PDF(1))
	if _, err := uc.ImportPDF(ctx, dto.FileImportInput{Path: good, Year: 2026, Month: 13}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected bad month rejected, got %v", err)
	}
	if _, err := uc.ImportText(ctx, dto.TextImportInput{Text: "  \n ", Year: 2026, Month: 5}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected empty text rejected, got %v", err)
	}
	if len(backend.Uploads()) != 0 || len(cache.keys()) != 0 {
		t.Fatalf("rejected imports must not reach the backend or the cache")
	}
}

func TestImportXLSXAndText(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	kasia := backend.AddUser("kasia@example.com", "Kasia", "pw", fakeapi.RoleCoordinator)
	uc, _ := adminFor(t, backend, kasia)
	ctx := context.Background()

	path := fixtures.Write(t, "maj.xlsx", fixtures.XLSX(t, [][]string{{"", "1", "2"}, {"Anna", "1", "2"}}))
	out, err := uc.ImportXLSX(ctx, dto.FileImportInput{Path: path, Year: 2026, Month: 5, Advanced: true})
	if err != nil {
		t.Fatalf("xlsx: %v", err)
	}
	if out.Units != 2 {
		t.Fatalf("expected two workbook rows, got %d", out.Units)
	}
	text, err := uc.ImportText(ctx, dto.TextImportInput{Text: "Anna 1 2\nJan 2 1\n", Year: 2026, Month: 5})
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if text.Imported != 2 {
		t.Fatalf("expected two text rows, got %d", text.Imported)
	}
	uploads := backend.Uploads()
	if len(uploads) != 2 || uploads[0].Path != "/upload-xlsx" || uploads[1].Path != "/upload-text" || uploads[1].Text != "Anna 1 2\nJan 2 1" {
		t.Fatalf("unexpected uploads %+v", uploads)
	}
}

func TestEmployeeMayListButNotManageUsers(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	admin := backend.AddUser("admin@example.com", "Admin", "pw", fakeapi.RoleAdmin)
	employee, _ := adminFor(t, backend, anna)
	manager, _ := adminFor(t, backend, admin)
	ctx := context.Background()

	users, err := employee.Users(ctx)
	if err != nil || len(users) != 2 || users[0].FullName != "Admin" {
		t.Fatalf("unexpected users %+v %v", users, err)
	}
	if _, err := employee.CreateUser(ctx, dto.CreateUserInput{Email: "ola@example.com", FullName: "Ola", Password: "pw"}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	path := fixtures.Write(t, "maj.pdf", fixtures.PDF(1))
	if _, err := employee.ImportPDF(ctx, dto.FileImportInput{Path: path, Year: 2026, Month: 5}); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden import, got %v", err)
	}

	created, err := manager.CreateUser(ctx, dto.CreateUserInput{Email: " Ola@Example.com", FullName: "Ola", Password: "pw", Role: "Coordinator"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Email != "ola@example.com" || created.Role != "coordinator" {
		t.Fatalf("unexpected created user %+v", created)
	}
}

package usecase_test

import (
	"context"
	"errors"
	"testing"

	notesout "grafik/internal/modules/notes/adapter/out"
	notesin "grafik/internal/modules/notes/port/in"
	"grafik/internal/modules/notes/service"
	"grafik/internal/modules/notes/usecase"
	sessionadapter "grafik/internal/modules/session/adapter/out"
	sessionservice "grafik/internal/modules/session/service"
	sessionusecase "grafik/internal/modules/session/usecase"
	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/httpapi"
	"grafik/internal/testutil/fakeapi"
)

func notesFor(t *testing.T, backend *fakeapi.Backend, user fakeapi.User) notesin.Usecase {
	t.Helper()
	sessions := sessionservice.NewSessionService(nil, sessionadapter.NewMemoryTokenStore(), sessionadapter.NewMemoryTokenStore(), nil)
	if err := sessions.SetToken(backend.Token(user.ID), true); err != nil {
		t.Fatal(err)
	}
	client := httpapi.New(sessions, httpapi.Options{BaseURL: backend.URL()})
	session := sessionusecase.NewInteractor(sessions, sessionadapter.NewHTTPAuthGateway(client))
	return usecase.NewInteractor(service.NewNotesService(notesout.NewHTTPNoteGateway(client)), session)
}

func TestDeleteOfferedOnlyToAuthorAndEnforcedByServer(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	jan := backend.AddUser("jan@example.com", "Jan", "pw", fakeapi.RoleUser)
	asAnna, asJan := notesFor(t, backend, anna), notesFor(t, backend, jan)
	ctx := context.Background()

	added, err := asAnna.Add(ctx, "12.05.2026", "  Dostawa o 7:00  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.Text != "Dostawa o 7:00" || added.Date != "2026-05-12" || !added.Deletable {
		t.Fatalf("unexpected note %+v", added)
	}

	seen, err := asJan.List(ctx, "2026-05-12")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(seen) != 1 || seen[0].Deletable || seen[0].Author != "Anna" {
		t.Fatalf("other viewers must not be offered delete: %+v", seen)
	}
	if err := asJan.Delete(ctx, added.ID); !errors.Is(err, apperrors.ErrForbidden) {
		t.Fatalf("expected forbidden from the server, got %v", err)
	}
	if msg := apperrors.UserMessage(asJan.Delete(ctx, added.ID), "pl"); msg != "Tylko autor może usunąć notatkę." {
		t.Fatalf("expected server message in toast, got %q", msg)
	}

	if err := asAnna.Delete(ctx, added.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	left, _ := asAnna.List(ctx, "2026-05-12")
	if len(left) != 0 {
		t.Fatalf("note must be gone, got %+v", left)
	}
}

func TestAddRejectsBlankText(t *testing.T) {
	t.Parallel()
	backend := fakeapi.New(t, "2026-05-10")
	anna := backend.AddUser("anna@example.com", "Anna", "pw", fakeapi.RoleUser)
	notes := notesFor(t, backend, anna)
	if _, err := notes.Add(context.Background(), "2026-05-12", "   "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if backend.Hits("/day-notes") != 0 {
		t.Fatalf("blank note must not reach the backend")
	}
}

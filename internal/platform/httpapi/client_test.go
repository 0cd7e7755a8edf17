package httpapi_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "grafik/internal/platform/errors"
	"grafik/internal/platform/httpapi"
)

type fakeTokens struct {
	mu      sync.Mutex
	token   string
	cleared int
}

func (f *fakeTokens) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeTokens) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = ""
	f.cleared++
	return nil
}

func newClient(t *testing.T, srv *httptest.Server, tokens httpapi.TokenSource) *httpapi.Client {
	t.Helper()
	return httpapi.New(tokens, httpapi.Options{BaseURL: srv.URL + "/api", RetryDelay: 20 * time.Millisecond})
}

func TestDoSendsAuthAndParsesJSON(t *testing.T) {
	t.Parallel()
	headers := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers <- r.Header.Clone()
		if r.URL.Path != "/api/day-shifts" || r.URL.Query().Get("date") != "2026-05-01" {
			http.Error(w, "bad path", http.StatusTeapot)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"date":"2026-05-01","morning":[],"evening":[]}`)
	}))
	defer srv.Close()

	client := newClient(t, srv, &fakeTokens{token: "abc.def.ghi"})
	var out struct {
		Date string `json:"date"`
	}
	if err := client.Get(context.Background(), "/day-shifts", url.Values{"date": {"2026-05-01"}}, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.Date != "2026-05-01" {
		t.Fatalf("expected decoded date, got %q", out.Date)
	}
	seen := <-headers
	if got := seen.Get("Authorization"); got != "Bearer abc.def.ghi" {
		t.Fatalf("expected bearer header, got %q", got)
	}
	if seen.Get("Content-Type") != "application/json" || seen.Get("Cache-Control") != "no-store" {
		t.Fatalf("expected json content type and no-store, got %v", seen)
	}
	if seen.Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestDoReturnsTextForNonJSON(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, "ok")
	}))
	defer srv.Close()

	resp, err := newClient(t, srv, nil).Do(context.Background(), httpapi.Request{Path: "/health"})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if resp.IsJSON() || resp.Text() != "ok" {
		t.Fatalf("expected raw text body, got json=%v text=%q", resp.IsJSON(), resp.Text())
	}
	if err := resp.Decode(&struct{}{}); err == nil {
		t.Fatalf("decoding text as json must fail")
	}
}

func TestUnauthorizedClearsSessionAndBuildsRedirect(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"msg":"Token has expired"}`)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "stale"}
	var hooked string
	client := httpapi.New(tokens, httpapi.Options{
		BaseURL:        srv.URL,
		LoginPath:      "/login",
		OnUnauthorized: func(redirect string) { hooked = redirect },
	})

	ctx := httpapi.WithDestination(context.Background(), "/proposals")
	err := client.Get(ctx, "/proposals", nil, nil)
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if tokens.Token() != "" || tokens.cleared != 1 {
		t.Fatalf("expected session cleared once, token=%q cleared=%d", tokens.Token(), tokens.cleared)
	}
	redirect, ok := apperrors.RedirectOf(err)
	if !ok || redirect != "/login?next=%2Fproposals" {
		t.Fatalf("unexpected redirect %q", redirect)
	}
	if hooked != redirect {
		t.Fatalf("expected hook to receive redirect, got %q", hooked)
	}
	if got := err.Error(); !strings.Contains(got, "Token has expired") {
		t.Fatalf("expected server message in error, got %q", got)
	}

	// Without an explicit destination the request path is preserved.
	err = client.Get(context.Background(), "/day-notes", url.Values{"date": {"2026-05-02"}}, nil)
	redirect, _ = apperrors.RedirectOf(err)
	next, perr := url.Parse(redirect)
	if perr != nil || next.Query().Get("next") != "/day-notes?date=2026-05-02" {
		t.Fatalf("expected path fallback in redirect, got %q", redirect)
	}
}

func TestAnonymousUnauthorizedKeepsSession(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"Nieprawidłowe dane logowania"}`)
	}))
	defer srv.Close()

	tokens := &fakeTokens{token: "keep"}
	_, err := newClient(t, srv, tokens).Do(context.Background(), httpapi.Request{Method: http.MethodPost, Path: "/login", Body: map[string]string{}, Anonymous: true})
	if !errors.Is(err, apperrors.ErrUnauthenticated) {
		t.Fatalf("expected unauthenticated, got %v", err)
	}
	if tokens.cleared != 0 {
		t.Fatalf("anonymous call must not clear the session")
	}
	if _, ok := apperrors.RedirectOf(err); ok {
		t.Fatalf("anonymous call must not carry a redirect")
	}
}

func TestColdStartRetriesExactlyOnce(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	started := time.Now()
	var out struct {
		OK bool `json:"ok"`
	}
	if err := newClient(t, srv, nil).Get(context.Background(), "/me", nil, &out); err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if !out.OK {
		t.Fatalf("expected body from the retried call")
	}
	if hits.Load() != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", hits.Load())
	}
	if time.Since(started) < 20*time.Millisecond {
		t.Fatalf("retry happened before the fixed delay")
	}
}

func TestColdStartGivesUpAfterSecondFailure(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newClient(t, srv, nil).Get(context.Background(), "/me", nil, nil)
	if !errors.Is(err, apperrors.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected one retry only, got %d attempts", hits.Load())
	}
	if apperrors.StatusOf(err) != http.StatusInternalServerError {
		t.Fatalf("expected status 500 on error")
	}
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	t.Parallel()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Zła data"}`)
	}))
	defer srv.Close()

	err := newClient(t, srv, nil).Post(context.Background(), "/day-notes", map[string]string{"date": "x"}, nil)
	if !errors.Is(err, apperrors.ErrInvalidInput) || !strings.Contains(err.Error(), "Zła data") {
		t.Fatalf("expected invalid input with server message, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("400 must not be retried, got %d attempts", hits.Load())
	}
}

func TestMultipartFormSkipsJSONContentType(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			http.Error(w, "not multipart", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		if header.Filename != "grafik.pdf" || string(body) != "%PDF-1.4" || r.FormValue("month") != "5" {
			http.Error(w, "unexpected form", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"imported":3}`)
	}))
	defer srv.Close()

	var out struct {
		Imported int `json:"imported"`
	}
	err := newClient(t, srv, nil).Call(context.Background(), httpapi.Request{
		Method: http.MethodPost,
		Path:   "/upload-pdf",
		Form: &httpapi.Form{
			Fields: map[string]string{"year": "2026", "month": "5"},
			Files:  []httpapi.FormFile{{Field: "file", Name: "grafik.pdf", Content: []byte("%PDF-1.4")}},
		},
	}, &out)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if out.Imported != 3 {
		t.Fatalf("expected imported=3, got %d", out.Imported)
	}
}

func TestNetworkFailureMarksOffline(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := httpapi.New(nil, httpapi.Options{BaseURL: srv.URL})
	err := client.Get(context.Background(), "/me", nil, nil)
	if !errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("expected network error, got %v", err)
	}
	if client.Online() {
		t.Fatalf("client should be offline after transport failure")
	}
}

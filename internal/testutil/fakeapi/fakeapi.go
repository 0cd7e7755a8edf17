// Package fakeapi is an in-memory roster backend for tests. It speaks the
// same JSON contract as the real server and enforces the rules the client
// relies on: author-only note deletion, proposal transitions, role checks.
package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser        = "user"
	RoleCoordinator = "coordinator"
	RoleAdmin       = "admin"

	// StaffingNorm is the head count per slot the summary measures against.
	StaffingNorm = 12
)

type User struct {
	ID         int64
	Email      string
	FullName   string
	Role       string
	OrderIndex *int
	Zmiwaka    bool
	Rate       *float64
	Tax        float64
	hash       []byte
	resetToken string
}

type Shift struct {
	ID          int64
	UserID      int64
	Date        string
	Code        string
	Hours       float64
	Worked      *float64
	Lounge      string
	CoordLounge string
	Note        string
	ActualStart string
	ActualEnd   string
}

type Proposal struct {
	ID          int64
	RequesterID int64
	TargetID    int64
	MyDate      string
	TheirDate   string
	Status      string
	CreatedAt   time.Time
}

type Offer struct {
	ID          int64
	ShiftID     int64
	OwnerID     int64
	CandidateID int64
	Status      string
	CreatedAt   time.Time
}

type Note struct {
	ID        int64
	Date      string
	Text      string
	AuthorID  int64
	CreatedAt time.Time
}

type Event struct {
	ID        int64
	Kind      string
	UserID    int64
	Date      string
	Reason    string
	Hours     *float64
	From      string
	To        string
	CreatedBy int64
	CreatedAt time.Time
}

type deletedEvent struct {
	event     Event
	deletedBy int64
	reason    string
	deletedAt string
}

// Upload records one import request as the backend received it.
type Upload struct {
	Path     string
	FileName string
	Content  []byte
	Year     string
	Month    string
	Text     string
}

type Backend struct {
	t   testing.TB
	srv *httptest.Server
	ta  *jwtauth.JWTAuth

	mu        sync.Mutex
	seq       int64
	today     string
	revoked   bool
	users     map[int64]*User
	shifts    map[int64]*Shift
	proposals map[int64]*Proposal
	offers    map[int64]*Offer
	notes     map[int64]*Note
	events    map[int64]*Event
	reports   map[string]*ShiftReport
	deleted   []deletedEvent
	uploads   []Upload
	failures  map[string][]int
	hits      map[string]int
}

// New starts the backend on a loopback listener; it is closed on test
// cleanup. today anchors every "tomorrow or later" rule.
func New(t testing.TB, today string) *Backend {
	t.Helper()
	b := &Backend{
		t:         t,
		ta:        jwtauth.New("HS256", []byte("fakeapi-secret"), nil),
		today:     today,
		users:     map[int64]*User{},
		shifts:    map[int64]*Shift{},
		proposals: map[int64]*Proposal{},
		offers:    map[int64]*Offer{},
		notes:     map[int64]*Note{},
		events:    map[int64]*Event{},
		reports:   map[string]*ShiftReport{},
		failures:  map[string][]int{},
		hits:      map[string]int{},
	}
	b.srv = httptest.NewServer(b.routes())
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the API base, including the /api prefix.
func (b *Backend) URL() string { return b.srv.URL + "/api" }

func (b *Backend) nextID() int64 {
	b.seq++
	return b.seq
}

func (b *Backend) AddUser(email, fullName, password, role string) User {
	b.t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		b.t.Fatalf("hash password: %v", err)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := &User{ID: b.nextID(), Email: strings.ToLower(email), FullName: fullName, Role: role, hash: hash}
	b.users[u.ID] = u
	return *u
}

// UpdateUser applies fn to the stored user, for flags like order index.
func (b *Backend) UpdateUser(id int64, fn func(*User)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u, ok := b.users[id]; ok {
		fn(u)
	}
}

func (b *Backend) AddShift(s Shift) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	s.ID = b.nextID()
	b.shifts[s.ID] = &s
	return s.ID
}

func (b *Backend) AddNote(date, text string, authorID int64) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := &Note{ID: b.nextID(), Date: date, Text: text, AuthorID: authorID, CreatedAt: time.Now().UTC()}
	b.notes[n.ID] = n
	return n.ID
}

func (b *Backend) AddEvent(e Event) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	e.ID = b.nextID()
	e.CreatedAt = time.Now().UTC()
	b.events[e.ID] = &e
	return e.ID
}

// Token issues a valid bearer token for the user without a login call.
func (b *Backend) Token(userID int64) string {
	b.t.Helper()
	b.mu.Lock()
	u, ok := b.users[userID]
	b.mu.Unlock()
	if !ok {
		b.t.Fatalf("unknown user %d", userID)
	}
	return b.issue(u)
}

func (b *Backend) issue(u *User) string {
	claims := map[string]interface{}{
		"sub":       strconv.FormatInt(u.ID, 10),
		"role":      u.Role,
		"full_name": u.FullName,
	}
	jwtauth.SetExpiry(claims, time.Now().Add(time.Hour))
	_, token, err := b.ta.Encode(claims)
	if err != nil {
		b.t.Fatalf("encode token: %v", err)
	}
	return token
}

// RevokeTokens makes every authenticated route answer 401 as if the
// token had expired.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked = true
}

// FailNext answers the next n requests to path (without the /api prefix)
// with status.
func (b *Backend) FailNext(path string, status, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := 0; i < n; i++ {
		b.failures[path] = append(b.failures[path], status)
	}
}

// Hits counts requests that reached path, failed ones included.
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

func (b *Backend) Proposal(id int64) (Proposal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.proposals[id]
	if !ok {
		return Proposal{}, false
	}
	return *p, true
}

func (b *Backend) Shift(id int64) (Shift, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.shifts[id]
	if !ok {
		return Shift{}, false
	}
	return *s, true
}

func (b *Backend) Uploads() []Upload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Upload(nil), b.uploads...)
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.countAndFail)
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		})
		r.Post("/login", b.login)
		r.Post("/register", b.register)
		r.Post("/password/request", b.passwordRequest)
		r.Post("/password/reset", b.passwordReset)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(b.ta))
			r.Use(b.authenticated)

			r.Get("/me", b.me)
			r.Get("/profile", b.me)
			r.Put("/profile", b.updateProfile)
			r.Get("/me/settings", b.settings)
			r.Post("/me/settings", b.updateSettings)
			r.Get("/my-stats", b.stats)
			r.Get("/users", b.listUsers)
			r.Post("/users", b.createUser)

			r.Get("/my-shifts", b.myShifts)
			r.Get("/next-shift", b.nextShift)
			r.Get("/day-shifts", b.dayShifts)
			r.Get("/month-shifts", b.monthShifts)
			r.Post("/shifts/{id}/check-in", b.checkIn)
			r.Post("/shifts/{id}/check-out", b.checkOut)
			r.Post("/my-shift/{id}/worklog", b.worklog)

			r.Get("/day-notes", b.listNotes)
			r.Post("/day-notes", b.addNote)
			r.Delete("/day-notes/{id}", b.deleteNote)

			r.Get("/proposals", b.listProposals)
			r.Post("/proposals", b.createProposal)
			r.Post("/proposals/{id}/{verb}", b.transitionProposal)
			r.Post("/takeovers", b.takeover)
			r.Get("/market/offers", b.listOffers)
			r.Post("/market/offers/{id}", b.createOffer)
			r.Post("/market/offers/{id}/{verb}", b.transitionOffer)

			r.Get("/control/summary", b.controlSummary)
			r.Post("/control/late", b.controlRecord("late"))
			r.Post("/control/extra", b.controlRecord("extra"))
			r.Post("/control/absence", b.controlRecord("absence"))
			r.Post("/control/add-shift", b.controlAddShift)
			r.Post("/control/delete", b.controlDelete)
			r.Get("/control/deleted", b.controlDeleted)
			r.Get("/control/deleted/{id}", b.controlDeletedDetail)
			r.Get("/coord-panel/report", b.coordReportGet)
			r.Post("/coord-panel/report", b.coordReportSave)

			r.Post("/upload-pdf", b.uploadFile)
			r.Post("/upload-pdf-adv", b.uploadFile)
			r.Post("/upload-xlsx", b.uploadFile)
			r.Post("/upload-text", b.uploadText)
		})
	})
	return r
}

func (b *Backend) countAndFail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/api")
		b.mu.Lock()
		b.hits[path]++
		var status int
		if queue := b.failures[path]; len(queue) > 0 {
			status = queue[0]
			b.failures[path] = queue[1:]
		}
		b.mu.Unlock()
		if status != 0 {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type viewerKey struct{}

func (b *Backend) authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		b.mu.Lock()
		revoked := b.revoked
		b.mu.Unlock()
		if err != nil || revoked {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Token has expired"})
			return
		}
		sub, _ := claims["sub"].(string)
		uid, convErr := strconv.ParseInt(sub, 10, 64)
		b.mu.Lock()
		_, known := b.users[uid]
		b.mu.Unlock()
		if convErr != nil || !known {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"msg": "Unknown subject"})
			return
		}
		next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), uid)))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

func (b *Backend) tomorrow() string {
	day, err := time.Parse("2006-01-02", b.today)
	if err != nil {
		return b.today
	}
	return day.AddDate(0, 0, 1).Format("2006-01-02")
}

func isManager(u *User) bool {
	return u != nil && (u.Role == RoleAdmin || u.Role == RoleCoordinator)
}

func codeGroup(code string) string {
	if strings.HasPrefix(strings.TrimSpace(code), "2") {
		return "evening"
	}
	return "morning"
}

// shiftOf assumes b.mu is held.
func (b *Backend) shiftOf(userID int64, date string) *Shift {
	for _, s := range b.shifts {
		if s.UserID == userID && s.Date == date {
			return s
		}
	}
	return nil
}

func (b *Backend) userDict(id int64) map[string]any {
	u, ok := b.users[id]
	if !ok {
		return nil
	}
	return map[string]any{
		"id":              u.ID,
		"email":           u.Email,
		"full_name":       u.FullName,
		"role":            u.Role,
		"order_index":     u.OrderIndex,
		"is_zmiwaka":      u.Zmiwaka,
		"hourly_rate_pln": u.Rate,
		"tax_percent":     u.Tax,
	}
}

func sortedShifts(in []*Shift) []*Shift {
	sort.Slice(in, func(i, j int) bool {
		if in[i].Date != in[j].Date {
			return in[i].Date < in[j].Date
		}
		return in[i].ID < in[j].ID
	})
	return in
}

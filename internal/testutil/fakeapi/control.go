package fakeapi

import (
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

type controlInput struct {
	UserID int64   `json:"user_id"`
	Date   string  `json:"date"`
	Reason string  `json:"reason"`
	Hours  float64 `json:"hours"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Delay  int     `json:"delay_minutes"`
}

func (b *Backend) eventDict(e *Event) map[string]any {
	out := map[string]any{
		"id":         e.ID,
		"kind":       e.Kind,
		"user_id":    e.UserID,
		"date":       e.Date,
		"reason":     e.Reason,
		"hours":      e.Hours,
		"time_from":  nullable(e.From),
		"time_to":    nullable(e.To),
		"created_at": e.CreatedAt.Format(time.RFC3339),
	}
	if u, ok := b.users[e.UserID]; ok {
		out["user"] = u.FullName
	}
	if u, ok := b.users[e.CreatedBy]; ok {
		out["created_by"] = u.FullName
	}
	return out
}

// coordinator assumes b.mu is held and writes the 403 itself.
func (b *Backend) coordinator(w http.ResponseWriter, r *http.Request) (*User, bool) {
	me := b.viewer(r)
	if !isManager(me) {
		writeError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return me, true
}

func validDate(v string) bool {
	_, err := time.Parse("2006-01-02", v)
	return err == nil
}

func (b *Backend) controlRecord(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in controlInput
		if err := decodeBody(r, &in); err != nil {
			writeError(w, http.StatusBadRequest, "Brak danych")
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		me, ok := b.coordinator(w, r)
		if !ok {
			return
		}
		if kind == "extra" && in.Hours <= 0 {
			writeError(w, http.StatusBadRequest, "Podaj poprawną liczbę godzin")
			return
		}
		if !validDate(in.Date) {
			writeError(w, http.StatusBadRequest, "Bad date")
			return
		}
		e := &Event{ID: b.nextID(), Kind: kind, UserID: in.UserID, Date: in.Date, Reason: strings.TrimSpace(in.Reason), From: in.From, To: in.To, CreatedBy: me.ID, CreatedAt: time.Now().UTC()}
		if kind == "extra" {
			h := in.Hours
			e.Hours = &h
		}
		b.events[e.ID] = e
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "event": b.eventDict(e)})
	}
}

func (b *Backend) controlAddShift(w http.ResponseWriter, r *http.Request) {
	var in controlInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	me, ok := b.coordinator(w, r)
	if !ok {
		return
	}
	if !validDate(in.Date) {
		writeError(w, http.StatusBadRequest, "Bad date")
		return
	}
	if b.shiftOf(in.UserID, in.Date) != nil {
		writeError(w, http.StatusBadRequest, "Ten pracownik ma już zmianę w tym dniu.")
		return
	}
	start, okS := parseHHMM(in.From)
	end, okE := parseHHMM(in.To)
	if !okS || !okE {
		writeError(w, http.StatusBadRequest, "Podaj godziny HH:MM")
		return
	}
	if end < start {
		end += 24 * 60
	}
	hours := round2(float64(end-start) / 60)
	s := &Shift{ID: b.nextID(), UserID: in.UserID, Date: in.Date, Code: "X", Worked: &hours, Note: in.Reason}
	b.shifts[s.ID] = s
	e := &Event{ID: b.nextID(), Kind: "manual_shift", UserID: in.UserID, Date: in.Date, Reason: in.Reason, Hours: &hours, From: in.From, To: in.To, CreatedBy: me.ID, CreatedAt: time.Now().UTC()}
	b.events[e.ID] = e
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "event": b.eventDict(e), "shift_id": s.ID})
}

func (b *Backend) controlSummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	start, err := time.Parse("2006-01", month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Bad month")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var rows []*Event
	for _, e := range b.events {
		if strings.HasPrefix(e.Date, month+"-") {
			rows = append(rows, e)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].ID < rows[j].ID
	})
	events := make([]map[string]any, 0, len(rows))
	for _, e := range rows {
		events = append(events, b.eventDict(e))
	}
	counts := map[string][2]int{}
	for _, s := range b.shifts {
		if !strings.HasPrefix(s.Date, month+"-") {
			continue
		}
		c := counts[s.Date]
		if codeGroup(s.Code) == "evening" {
			c[1]++
		} else {
			c[0]++
		}
		counts[s.Date] = c
	}
	staffing := []map[string]any{}
	for day := start; day.Month() == start.Month(); day = day.AddDate(0, 0, 1) {
		iso := day.Format("2006-01-02")
		c := counts[iso]
		staffing = append(staffing, map[string]any{
			"date": iso, "morning": c[0], "evening": c[1],
			"morning_delta": c[0] - StaffingNorm, "evening_delta": c[1] - StaffingNorm,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events, "staffing": staffing})
}

func (b *Backend) controlDelete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ID     int64  `json:"id"`
		Reason string `json:"reason"`
	}
	if err := decodeBody(r, &in); err != nil || in.ID == 0 || strings.TrimSpace(in.Reason) == "" {
		writeError(w, http.StatusBadRequest, "Missing id or reason")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	me, ok := b.coordinator(w, r)
	if !ok {
		return
	}
	e := b.events[in.ID]
	if e == nil {
		writeError(w, http.StatusNotFound, "Event not found")
		return
	}
	b.deleted = append(b.deleted, deletedEvent{event: *e, deletedBy: me.ID, reason: strings.TrimSpace(in.Reason), deletedAt: b.today})
	delete(b.events, in.ID)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (b *Backend) controlDeleted(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, 0, len(b.deleted))
	for i := len(b.deleted) - 1; i >= 0; i-- {
		d := b.deleted[i]
		name := ""
		if u, ok := b.users[d.deletedBy]; ok {
			name = u.FullName
		}
		out = append(out, map[string]any{
			"event_id":     d.event.ID,
			"deleted_date": d.deletedAt + "T00:00:00",
			"user_name":    name,
			"reason":       d.reason,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) controlDeletedDetail(w http.ResponseWriter, r *http.Request) {
	id, _ := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, d := range b.deleted {
		if d.event.ID != id {
			continue
		}
		var userName, deletedBy string
		if u, ok := b.users[d.event.UserID]; ok {
			userName = u.FullName
		}
		if u, ok := b.users[d.deletedBy]; ok {
			deletedBy = u.FullName
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"event_id":        d.event.ID,
			"kind":            d.event.Kind,
			"event_date":      d.event.Date,
			"time_from":       nullable(d.event.From),
			"time_to":         nullable(d.event.To),
			"hours":           d.event.Hours,
			"user_name":       userName,
			"deleted_by_name": deletedBy,
			"deleted_date":    d.deletedAt,
			"reason":          d.event.Reason,
		})
		return
	}
	writeError(w, http.StatusNotFound, "Not found")
}

func (b *Backend) uploadFile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	_, ok := b.coordinator(w, r)
	b.mu.Unlock()
	if !ok {
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Nie znaleziono pliku (file).")
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b.mu.Lock()
	b.uploads = append(b.uploads, Upload{
		Path:     strings.TrimPrefix(r.URL.Path, "/api"),
		FileName: header.Filename,
		Content:  content,
		Year:     r.FormValue("year"),
		Month:    r.FormValue("month"),
	})
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"imported": 1, "created_users": []string{}})
}

func (b *Backend) uploadText(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text  string `json:"text"`
		Year  int    `json:"year"`
		Month int    `json:"month"`
	}
	if err := decodeBody(r, &in); err != nil || strings.TrimSpace(in.Text) == "" {
		writeError(w, http.StatusBadRequest, "Pusty tekst.")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.coordinator(w, r); !ok {
		return
	}
	lines := 0
	for _, line := range strings.Split(in.Text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines++
		}
	}
	b.uploads = append(b.uploads, Upload{Path: "/upload-text", Text: in.Text})
	writeJSON(w, http.StatusOK, map[string]any{"imported": lines, "created_users": []string{}})
}

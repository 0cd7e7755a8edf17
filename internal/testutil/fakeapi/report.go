package fakeapi

import (
	"net/http"
	"time"
)

// ShiftReport is a coordinator's end-of-shift report, one per lounge,
// shift type and date.
type ShiftReport struct {
	ID        int64
	Lounge    string
	ShiftType string
	Date      string
	CoordName string
	Bars      map[string]string
	Times     map[string]string
	Notes     map[string]string
	CreatedAt time.Time
}

type reportInput struct {
	Lounge    string            `json:"lounge"`
	ShiftType string            `json:"shift_type"`
	ShiftDate string            `json:"shift_date"`
	Bars      map[string]string `json:"bars"`
	Times     map[string]string `json:"times"`
	Notes     map[string]string `json:"notes"`
}

func reportKey(lounge, shiftType, date string) string {
	return lounge + "|" + shiftType + "|" + date
}

func (rep *ShiftReport) dict() map[string]any {
	return map[string]any{
		"id":         rep.ID,
		"lounge":     rep.Lounge,
		"shift_type": rep.ShiftType,
		"shift_date": rep.Date,
		"coord_name": rep.CoordName,
		"times":      rep.Times,
		"bars":       rep.Bars,
		"notes":      rep.Notes,
		"created_at": rep.CreatedAt.Format(time.RFC3339),
	}
}

// shiftCoordinator admits the coordinator role only; admins get a 403 too.
func (b *Backend) shiftCoordinator(w http.ResponseWriter, r *http.Request) (*User, bool) {
	me := b.viewer(r)
	if me == nil || me.Role != RoleCoordinator {
		writeError(w, http.StatusForbidden, "Forbidden")
		return nil, false
	}
	return me, true
}

func (b *Backend) coordReportGet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lounge, shiftType, date := q.Get("lounge"), q.Get("shift_type"), q.Get("date")
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.shiftCoordinator(w, r); !ok {
		return
	}
	if lounge == "" || shiftType == "" || date == "" {
		writeError(w, http.StatusBadRequest, "Missing params")
		return
	}
	if !validDate(date) {
		writeError(w, http.StatusBadRequest, "Bad date")
		return
	}
	rep, ok := b.reports[reportKey(lounge, shiftType, date)]
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{})
		return
	}
	writeJSON(w, http.StatusOK, rep.dict())
}

func (b *Backend) coordReportSave(w http.ResponseWriter, r *http.Request) {
	var in reportInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	me, ok := b.shiftCoordinator(w, r)
	if !ok {
		return
	}
	if in.Lounge == "" || in.ShiftType == "" || !validDate(in.ShiftDate) {
		writeError(w, http.StatusBadRequest, "Missing params")
		return
	}
	key := reportKey(in.Lounge, in.ShiftType, in.ShiftDate)
	rep, ok := b.reports[key]
	if !ok {
		rep = &ShiftReport{ID: b.nextID(), Lounge: in.Lounge, ShiftType: in.ShiftType, Date: in.ShiftDate, CreatedAt: time.Now().UTC()}
		b.reports[key] = rep
	}
	rep.CoordName = me.FullName
	rep.Bars, rep.Times, rep.Notes = in.Bars, in.Times, in.Notes
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Report returns the stored report for a key.
func (b *Backend) Report(lounge, shiftType, date string) (ShiftReport, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rep, ok := b.reports[reportKey(lounge, shiftType, date)]
	if !ok {
		return ShiftReport{}, false
	}
	return *rep, true
}

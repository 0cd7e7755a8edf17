package fakeapi

import (
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

func sortByName(rows []map[string]any) {
	sort.Slice(rows, func(i, j int) bool {
		a, _ := rows[i]["full_name"].(string)
		c, _ := rows[j]["full_name"].(string)
		return a < c
	})
}

func (b *Backend) shiftDict(s *Shift) map[string]any {
	name := ""
	if u, ok := b.users[s.UserID]; ok {
		name = u.FullName
	}
	return map[string]any{
		"id":           s.ID,
		"user_id":      s.UserID,
		"full_name":    name,
		"shift_date":   s.Date,
		"shift_code":   s.Code,
		"hours":        s.Hours,
		"worked_hours": s.Worked,
		"lounge":       nullable(s.Lounge),
		"coord_lounge": nullable(s.CoordLounge),
		"actual_start": nullable(s.ActualStart),
		"actual_end":   nullable(s.ActualEnd),
	}
}

func (b *Backend) rosterEntry(s *Shift) map[string]any {
	u := b.users[s.UserID]
	entry := map[string]any{
		"user_id":        s.UserID,
		"shift_code":     s.Code,
		"hours":          s.Hours,
		"is_coordinator": s.CoordLounge != "",
		"is_bar_today":   strings.Contains(strings.ToUpper(s.Code), "B"),
		"lounge":         nullable(s.Lounge),
		"coord_lounge":   nullable(s.CoordLounge),
	}
	if u != nil {
		entry["full_name"] = u.FullName
		entry["order_index"] = u.OrderIndex
		entry["is_zmiwaka"] = u.Zmiwaka
	}
	return entry
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func (b *Backend) myShifts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid := b.viewer(r).ID
	var mine []*Shift
	for _, s := range b.shifts {
		if s.UserID == uid {
			mine = append(mine, s)
		}
	}
	out := make([]map[string]any, 0, len(mine))
	for _, s := range sortedShifts(mine) {
		out = append(out, b.shiftDict(s))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) nextShift(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	uid := b.viewer(r).ID
	var mine []*Shift
	for _, s := range b.shifts {
		if s.UserID == uid {
			mine = append(mine, s)
		}
	}
	mine = sortedShifts(mine)
	var next *Shift
	for _, s := range mine {
		if s.Date >= b.today {
			next = s
			break
		}
	}
	if next == nil && len(mine) > 0 {
		next = mine[len(mine)-1]
	}
	if next == nil {
		writeJSON(w, http.StatusOK, map[string]any{"empty": true})
		return
	}
	total, done := 0, 0
	for _, s := range mine {
		if s.Date[:7] == next.Date[:7] {
			total++
			if s.Date <= b.today {
				done++
			}
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date": next.Date, "code": next.Code, "hours": resolveHours(next),
		"month_total": total, "month_done": done,
	})
}

func resolveHours(s *Shift) float64 {
	if s.Worked != nil {
		return *s.Worked
	}
	return s.Hours
}

// orderRoster mirrors the server ordering: order index with missing last,
// then name.
func (b *Backend) orderRoster(rows []*Shift) {
	sort.Slice(rows, func(i, j int) bool {
		ui, uj := b.users[rows[i].UserID], b.users[rows[j].UserID]
		oi, oj := math.MaxInt, math.MaxInt
		if ui != nil && ui.OrderIndex != nil {
			oi = *ui.OrderIndex
		}
		if uj != nil && uj.OrderIndex != nil {
			oj = *uj.OrderIndex
		}
		if oi != oj {
			return oi < oj
		}
		var ni, nj string
		if ui != nil {
			ni = ui.FullName
		}
		if uj != nil {
			nj = uj.FullName
		}
		return ni < nj
	})
}

func (b *Backend) dayShifts(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, http.StatusBadRequest, "Nieprawidłowa data.")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var rows []*Shift
	for _, s := range b.shifts {
		if s.Date == date {
			rows = append(rows, s)
		}
	}
	b.orderRoster(rows)
	morning, evening := []map[string]any{}, []map[string]any{}
	for _, s := range rows {
		if codeGroup(s.Code) == "evening" {
			evening = append(evening, b.rosterEntry(s))
		} else {
			morning = append(morning, b.rosterEntry(s))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"date": date, "morning": morning, "evening": evening})
}

func (b *Backend) monthShifts(w http.ResponseWriter, r *http.Request) {
	year, errY := strconv.Atoi(r.URL.Query().Get("year"))
	month, errM := strconv.Atoi(r.URL.Query().Get("month"))
	if errY != nil || errM != nil || year < 2000 || year > 2100 || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "Bad year/month")
		return
	}
	prefix := fmt.Sprintf("%04d-%02d-", year, month)
	b.mu.Lock()
	defer b.mu.Unlock()
	byDay := map[string][]*Shift{}
	for _, s := range b.shifts {
		if strings.HasPrefix(s.Date, prefix) {
			byDay[s.Date] = append(byDay[s.Date], s)
		}
	}
	out := map[string]map[string][]map[string]any{}
	for day, rows := range byDay {
		b.orderRoster(rows)
		slot := map[string][]map[string]any{"morning": {}, "evening": {}}
		for _, s := range rows {
			g := codeGroup(s.Code)
			slot[g] = append(slot[g], b.rosterEntry(s))
		}
		out[day] = slot
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) ownShift(w http.ResponseWriter, r *http.Request) (*Shift, bool) {
	id, ok := pathID(r)
	s := b.shifts[id]
	if !ok || s == nil || s.UserID != b.viewer(r).ID {
		writeError(w, http.StatusNotFound, "Nie znaleziono zmiany.")
		return nil, false
	}
	return s, true
}

func (b *Backend) checkIn(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.ownShift(w, r)
	if !ok {
		return
	}
	if s.ActualStart != "" {
		writeError(w, http.StatusConflict, "Już rozpoczęto zmianę.")
		return
	}
	s.ActualStart = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "shift": b.shiftDict(s)})
}

func (b *Backend) checkOut(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.ownShift(w, r)
	if !ok {
		return
	}
	if s.ActualStart == "" {
		writeError(w, http.StatusConflict, "Zmiana nie została rozpoczęta.")
		return
	}
	s.ActualEnd = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "shift": b.shiftDict(s)})
}

func parseHHMM(v string) (int, bool) {
	parts := strings.Split(v, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func (b *Backend) worklog(w http.ResponseWriter, r *http.Request) {
	var in struct {
		WorkedHours *float64 `json:"worked_hours"`
		Start       string   `json:"start_time"`
		End         string   `json:"end_time"`
		Note        string   `json:"note"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s, ok := b.ownShift(w, r)
	if !ok {
		return
	}
	if in.WorkedHours != nil {
		v := *in.WorkedHours
		s.Worked = &v
	} else if in.Start != "" && in.End != "" {
		start, okS := parseHHMM(in.Start)
		end, okE := parseHHMM(in.End)
		if !okS || !okE {
			writeError(w, http.StatusBadRequest, "Zły format czasu (HH:MM).")
			return
		}
		if end < start {
			end += 24 * 60
		}
		v := math.Round(float64(end-start)/60*100) / 100
		s.Worked = &v
	}
	s.Note = strings.TrimSpace(in.Note)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "worked_hours": s.Worked})
}

func (b *Backend) stats(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	start, err := time.Parse("2006-01", month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Zły zakres dat.")
		return
	}
	end := start.AddDate(0, 1, -1)
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.viewer(r)
	rate := 0.0
	if u.Rate != nil {
		rate = *u.Rate
	}
	var mine []*Shift
	for _, s := range b.shifts {
		if s.UserID == u.ID && strings.HasPrefix(s.Date, month+"-") {
			mine = append(mine, s)
		}
	}
	daily := []map[string]any{}
	total, done := 0.0, 0.0
	for _, s := range sortedShifts(mine) {
		h := resolveHours(s)
		total += h
		isDone := s.Date <= b.today
		if isDone {
			done += h
		}
		gross := h * rate
		daily = append(daily, map[string]any{
			"date": s.Date, "code": s.Code, "hours": h, "done": isDone,
			"gross": round2(gross), "net": round2(gross * (1 - u.Tax/100)),
		})
	}
	grossDone := round2(done * rate)
	grossAll := round2(total * rate)
	writeJSON(w, http.StatusOK, map[string]any{
		"range":       map[string]string{"from": start.Format("2006-01-02"), "to": end.Format("2006-01-02")},
		"rate_pln":    rate,
		"tax_percent": u.Tax,
		"hours_total": total,
		"hours_done":  done,
		"hours_left":  math.Max(total-done, 0),
		"gross_done":  grossDone,
		"net_done":    round2(grossDone * (1 - u.Tax/100)),
		"gross_all":   grossAll,
		"net_all":     round2(grossAll * (1 - u.Tax/100)),
		"daily":       daily,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

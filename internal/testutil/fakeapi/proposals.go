package fakeapi

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func (b *Backend) proposalDict(p *Proposal) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"requester":   b.userDict(p.RequesterID),
		"target_user": b.userDict(p.TargetID),
		"my_date":     p.MyDate,
		"their_date":  p.TheirDate,
		"status":      p.Status,
		"created_at":  p.CreatedAt.Format(time.RFC3339),
	}
}

func (b *Backend) proposalList(filter func(*Proposal) bool) []map[string]any {
	var rows []*Proposal
	for _, p := range b.proposals {
		if filter(p) {
			rows = append(rows, p)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
	out := make([]map[string]any, 0, len(rows))
	for _, p := range rows {
		out = append(out, b.proposalDict(p))
	}
	return out
}

func (b *Backend) listProposals(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	me := b.viewer(r)
	resp := map[string]any{
		"incoming": b.proposalList(func(p *Proposal) bool { return p.TargetID == me.ID }),
		"outgoing": b.proposalList(func(p *Proposal) bool { return p.RequesterID == me.ID }),
	}
	if isManager(me) {
		queue := b.proposalList(func(p *Proposal) bool { return p.Status == "accepted" })
		resp["for_approval"] = queue
		resp["to_approve"] = queue
	} else {
		resp["for_approval"] = []map[string]any{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (b *Backend) createProposal(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TargetUserID int64  `json:"target_user_id"`
		MyDate       string `json:"my_date"`
		TheirDate    string `json:"their_date"`
		GiveShiftID  int64  `json:"give_shift_id"`
		TakeShiftID  int64  `json:"take_shift_id"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	me := b.viewer(r)

	var give, take *Shift
	if in.GiveShiftID != 0 && in.TakeShiftID != 0 {
		give, take = b.shifts[in.GiveShiftID], b.shifts[in.TakeShiftID]
		if give == nil || take == nil {
			writeError(w, http.StatusNotFound, "shift not found")
			return
		}
		if give.UserID != me.ID {
			writeError(w, http.StatusForbidden, "not your shift")
			return
		}
		in.TargetUserID, in.MyDate, in.TheirDate = take.UserID, give.Date, take.Date
	} else {
		if in.TargetUserID == 0 || in.MyDate == "" || in.TheirDate == "" {
			writeError(w, http.StatusBadRequest, "Pola target_user_id, my_date, their_date są wymagane.")
			return
		}
		give, take = b.shiftOf(me.ID, in.MyDate), b.shiftOf(in.TargetUserID, in.TheirDate)
	}
	if in.TargetUserID == me.ID {
		writeError(w, http.StatusBadRequest, "Nie można proponować wymiany samemu sobie.")
		return
	}
	if give == nil {
		writeError(w, http.StatusBadRequest, "Nie masz zmiany w tej dacie.")
		return
	}
	if take == nil {
		writeError(w, http.StatusBadRequest, "Wybrany pracownik nie ma zmiany w tej dacie.")
		return
	}
	tomorrow := b.tomorrow()
	if in.MyDate < tomorrow || in.TheirDate < tomorrow {
		writeError(w, http.StatusBadRequest, "Wymiany są możliwe tylko od jutra i później.")
		return
	}
	if in.MyDate == in.TheirDate && codeGroup(give.Code) == codeGroup(take.Code) {
		writeError(w, http.StatusBadRequest, "Wymiana w tym samym dniu możliwa tylko między różnymi zmianami (1↔2).")
		return
	}
	for _, p := range b.proposals {
		if p.RequesterID == me.ID && p.TargetID == in.TargetUserID && p.MyDate == in.MyDate && p.TheirDate == in.TheirDate && p.Status == "pending" {
			writeError(w, http.StatusBadRequest, "Taka propozycja została już wysłana.")
			return
		}
	}
	p := &Proposal{ID: b.nextID(), RequesterID: me.ID, TargetID: in.TargetUserID, MyDate: in.MyDate, TheirDate: in.TheirDate, Status: "pending", CreatedAt: time.Now().UTC()}
	b.proposals[p.ID] = p
	writeJSON(w, http.StatusOK, map[string]any{"proposal": b.proposalDict(p)})
}

func (b *Backend) transitionProposal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	verb := chi.URLParam(r, "verb")
	b.mu.Lock()
	defer b.mu.Unlock()
	me := b.viewer(r)
	p := b.proposals[id]
	if !ok || p == nil {
		writeError(w, http.StatusNotFound, "Nie znaleziono.")
		return
	}
	var from, to string
	switch verb {
	case "accept":
		if p.TargetID != me.ID {
			writeError(w, http.StatusForbidden, "Możesz akceptować tylko swoje przychodzące propozycje.")
			return
		}
		from, to = "pending", "accepted"
	case "decline":
		if p.TargetID != me.ID {
			writeError(w, http.StatusForbidden, "Możesz odrzucać tylko swoje przychodzące propozycje.")
			return
		}
		from, to = "pending", "declined"
	case "cancel":
		if p.RequesterID != me.ID {
			writeError(w, http.StatusForbidden, "Tylko autor może anulować.")
			return
		}
		from, to = "pending", "canceled"
	case "approve", "reject":
		if !isManager(me) {
			writeError(w, http.StatusForbidden, "Tylko przełożony może zatwierdzać.")
			return
		}
		from, to = "accepted", "approved"
		if verb == "reject" {
			to = "rejected"
		}
	default:
		writeError(w, http.StatusNotFound, "Nie znaleziono.")
		return
	}
	if p.Status != from {
		writeError(w, http.StatusBadRequest, "Propozycja została już rozpatrzona.")
		return
	}
	if to == "approved" {
		give, take := b.shiftOf(p.RequesterID, p.MyDate), b.shiftOf(p.TargetID, p.TheirDate)
		if give == nil || take == nil {
			p.Status = "rejected"
			writeJSON(w, http.StatusConflict, map[string]any{"error": "Zmiany uległy zmianie, wymiana niemożliwa.", "proposal": b.proposalDict(p)})
			return
		}
		if p.MyDate == p.TheirDate {
			give.Code, take.Code = take.Code, give.Code
			give.Hours, take.Hours = take.Hours, give.Hours
		} else {
			give.UserID, take.UserID = p.TargetID, p.RequesterID
		}
	}
	p.Status = to
	writeJSON(w, http.StatusOK, map[string]any{"proposal": b.proposalDict(p)})
}

func (b *Backend) offerDict(o *Offer) map[string]any {
	out := map[string]any{
		"id":         o.ID,
		"status":     o.Status,
		"owner":      b.userDict(o.OwnerID),
		"candidate":  nil,
		"created_at": o.CreatedAt.Format(time.RFC3339),
	}
	if o.CandidateID != 0 {
		out["candidate"] = b.userDict(o.CandidateID)
	}
	if s := b.shifts[o.ShiftID]; s != nil {
		out["date"], out["code"] = s.Date, s.Code
	}
	return out
}

func (b *Backend) listOffers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	me := b.viewer(r)
	var open, mine []*Offer
	for _, o := range b.offers {
		switch {
		case o.Status == "open" && o.OwnerID != me.ID:
			open = append(open, o)
		case o.OwnerID == me.ID && o.Status != "cancelled":
			mine = append(mine, o)
		}
	}
	dicts := func(rows []*Offer) []map[string]any {
		sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
		out := make([]map[string]any, 0, len(rows))
		for _, o := range rows {
			out = append(out, b.offerDict(o))
		}
		return out
	}
	writeJSON(w, http.StatusOK, map[string]any{"open": dicts(open), "mine": dicts(mine)})
}

func (b *Backend) createOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	me := b.viewer(r)
	s := b.shifts[id]
	if !ok || s == nil {
		writeError(w, http.StatusNotFound, "Nie znaleziono zmiany")
		return
	}
	if s.UserID != me.ID && me.Role != RoleAdmin {
		writeError(w, http.StatusForbidden, "To nie jest Twoja zmiana")
		return
	}
	for _, o := range b.offers {
		if o.ShiftID == s.ID {
			writeJSON(w, http.StatusConflict, map[string]any{"error": "Ta zmiana już jest na rynku", "offer_id": o.ID})
			return
		}
	}
	o := &Offer{ID: b.nextID(), ShiftID: s.ID, OwnerID: me.ID, Status: "open", CreatedAt: time.Now().UTC()}
	b.offers[o.ID] = o
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "offer_id": o.ID})
}

func (b *Backend) transitionOffer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	verb := chi.URLParam(r, "verb")
	b.mu.Lock()
	defer b.mu.Unlock()
	me := b.viewer(r)
	o := b.offers[id]
	if !ok || o == nil {
		writeError(w, http.StatusNotFound, "Oferta niedostępna.")
		return
	}
	shift := b.shifts[o.ShiftID]
	switch verb {
	case "claim":
		if o.Status != "open" {
			writeError(w, http.StatusNotFound, "Oferta niedostępna.")
			return
		}
		if o.OwnerID == me.ID {
			writeError(w, http.StatusBadRequest, "To jest Twoja oferta.")
			return
		}
		if shift != nil && b.shiftOf(me.ID, shift.Date) != nil {
			writeError(w, http.StatusBadRequest, "Masz już zmianę w tym dniu.")
			return
		}
		if shift != nil && shift.Date < b.tomorrow() {
			writeError(w, http.StatusBadRequest, "Nie można wziąć zmiany z przeszłości ani z dzisiaj.")
			return
		}
		o.CandidateID, o.Status = me.ID, "requested"
	case "cancel", "approve", "reject":
		if o.OwnerID != me.ID {
			writeError(w, http.StatusNotFound, "Nie znaleziono lub brak uprawnień.")
			return
		}
		switch {
		case verb == "cancel" && (o.Status == "open" || o.Status == "requested"):
			o.Status, o.CandidateID = "cancelled", 0
		case verb == "approve" && o.Status == "requested":
			if shift != nil && b.shiftOf(o.CandidateID, shift.Date) != nil {
				o.Status = "rejected"
				writeJSON(w, http.StatusConflict, map[string]any{"error": "Kandydat ma już zmianę w tym dniu.", "offer": b.offerDict(o)})
				return
			}
			if shift != nil {
				shift.UserID = o.CandidateID
			}
			o.Status = "approved"
		case verb == "reject" && o.Status == "requested":
			o.Status, o.CandidateID = "open", 0
		default:
			writeError(w, http.StatusBadRequest, "Nieprawidłowy stan oferty.")
			return
		}
	default:
		writeError(w, http.StatusNotFound, "Nie znaleziono.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"offer": b.offerDict(o)})
}

func (b *Backend) takeover(w http.ResponseWriter, r *http.Request) {
	var in struct {
		TargetUserID int64  `json:"target_user_id"`
		Date         string `json:"date"`
	}
	if err := decodeBody(r, &in); err != nil || in.TargetUserID == 0 || in.Date == "" {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	me := b.viewer(r)
	shift := b.shiftOf(in.TargetUserID, in.Date)
	if shift == nil {
		writeError(w, http.StatusNotFound, "Nie znaleziono zmiany.")
		return
	}
	if b.shiftOf(me.ID, in.Date) != nil {
		writeError(w, http.StatusBadRequest, "Masz już zmianę w tym dniu.")
		return
	}
	var offer *Offer
	for _, o := range b.offers {
		if o.ShiftID == shift.ID {
			offer = o
		}
	}
	if offer == nil {
		offer = &Offer{ID: b.nextID(), ShiftID: shift.ID, CreatedAt: time.Now().UTC()}
		b.offers[offer.ID] = offer
	} else {
		if offer.Status == "approved" {
			writeError(w, http.StatusBadRequest, "Ta zmiana została już przekazana.")
			return
		}
		if offer.Status == "requested" && offer.CandidateID != 0 && offer.CandidateID != me.ID {
			writeError(w, http.StatusConflict, "Ktoś już poprosił o tę zmianę.")
			return
		}
	}
	offer.OwnerID, offer.CandidateID, offer.Status = in.TargetUserID, me.ID, "requested"
	writeJSON(w, http.StatusOK, map[string]any{"offer": b.offerDict(offer)})
}

func (b *Backend) noteDict(n *Note) map[string]any {
	author := ""
	if u, ok := b.users[n.AuthorID]; ok {
		author = u.FullName
	}
	return map[string]any{
		"id":         n.ID,
		"note_date":  n.Date,
		"text":       n.Text,
		"author_id":  n.AuthorID,
		"author":     author,
		"created_at": n.CreatedAt.Format(time.RFC3339),
	}
}

func (b *Backend) listNotes(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "Zła data")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var rows []*Note
	for _, n := range b.notes {
		if n.Date == date {
			rows = append(rows, n)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	out := make([]map[string]any, 0, len(rows))
	for _, n := range rows {
		out = append(out, b.noteDict(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) addNote(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Date string `json:"date"`
		Text string `json:"text"`
	}
	if err := decodeBody(r, &in); err != nil || in.Date == "" || strings.TrimSpace(in.Text) == "" {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	n := &Note{ID: b.nextID(), Date: in.Date, Text: strings.TrimSpace(in.Text), AuthorID: b.viewer(r).ID, CreatedAt: time.Now().UTC()}
	b.notes[n.ID] = n
	writeJSON(w, http.StatusCreated, b.noteDict(n))
}

func (b *Backend) deleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	b.mu.Lock()
	defer b.mu.Unlock()
	n := b.notes[id]
	if !ok || n == nil {
		writeError(w, http.StatusNotFound, "Nie znaleziono")
		return
	}
	if n.AuthorID != b.viewer(r).ID {
		writeError(w, http.StatusForbidden, "Tylko autor może usunąć notatkę.")
		return
	}
	delete(b.notes, id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

package fakeapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func withViewer(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, viewerKey{}, id)
}

// viewer assumes b.mu is held.
func (b *Backend) viewer(r *http.Request) *User {
	id, _ := r.Context().Value(viewerKey{}).(int64)
	return b.users[id]
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	b.mu.Lock()
	var found *User
	for _, u := range b.users {
		if u.Email == email {
			found = u
			break
		}
	}
	b.mu.Unlock()
	if found == nil || bcrypt.CompareHashAndPassword(found.hash, []byte(in.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Nieprawidłowy email lub hasło.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"access_token": b.issue(found), "user": map[string]any{"id": found.ID, "full_name": found.FullName, "role": found.Role}})
}

func (b *Backend) register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeBody(r, &in); err != nil || in.Email == "" || in.Password == "" || strings.TrimSpace(in.FullName) == "" {
		writeError(w, http.StatusBadRequest, "Pola email, password i full_name są wymagane.")
		return
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	b.mu.Lock()
	for _, u := range b.users {
		if u.Email == email {
			b.mu.Unlock()
			writeError(w, http.StatusBadRequest, "Użytkownik z takim adresem email już istnieje.")
			return
		}
	}
	role := RoleUser
	if len(b.users) == 0 {
		role = RoleAdmin
	}
	b.mu.Unlock()
	u := b.AddUser(email, strings.TrimSpace(in.FullName), in.Password, role)
	writeJSON(w, http.StatusOK, map[string]any{"access_token": b.issue(&u), "user": map[string]any{"id": u.ID, "full_name": u.FullName, "role": u.Role}})
}

func (b *Backend) passwordRequest(w http.ResponseWriter, r *http.Request) {
	var in credentials
	_ = decodeBody(r, &in)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	b.mu.Lock()
	for _, u := range b.users {
		if u.Email == email {
			u.resetToken = uuid.NewString()
		}
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "Reset link sent"})
}

// ResetToken exposes the token a password request generated.
func (b *Backend) ResetToken(userID int64) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u, ok := b.users[userID]; ok {
		return u.resetToken
	}
	return ""
}

func (b *Backend) passwordReset(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := decodeBody(r, &in); err != nil || in.Token == "" || in.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Missing token or password")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.resetToken != "" && u.resetToken == in.Token {
			u.hash = hash
			u.resetToken = ""
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "msg": "Password updated"})
			return
		}
	}
	writeError(w, http.StatusBadRequest, "Invalid or expired token")
}

func (b *Backend) me(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.userDict(b.viewer(r).ID))
}

func (b *Backend) updateProfile(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.viewer(r)
	if name := strings.TrimSpace(in.FullName); name != "" {
		u.FullName = name
	}
	if email := strings.ToLower(strings.TrimSpace(in.Email)); email != "" {
		u.Email = email
	}
	writeJSON(w, http.StatusOK, b.userDict(u.ID))
}

func (b *Backend) settings(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.viewer(r)
	writeJSON(w, http.StatusOK, map[string]any{"hourly_rate_pln": u.Rate, "tax_percent": u.Tax})
}

func (b *Backend) updateSettings(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Rate *float64 `json:"hourly_rate_pln"`
		Tax  float64  `json:"tax_percent"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Błąd zapisu ustawień")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.viewer(r)
	u.Rate = in.Rate
	u.Tax = in.Tax
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (b *Backend) listUsers(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]map[string]any, 0, len(b.users))
	for _, u := range b.users {
		out = append(out, map[string]any{"id": u.ID, "full_name": u.FullName, "email": u.Email, "role": u.Role})
	}
	sortByName(out)
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createUser(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	allowed := isManager(b.viewer(r))
	b.mu.Unlock()
	if !allowed {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}
	var in credentials
	if err := decodeBody(r, &in); err != nil || in.Email == "" || strings.TrimSpace(in.FullName) == "" {
		writeError(w, http.StatusBadRequest, "Brak danych")
		return
	}
	role := in.Role
	if role == "" {
		role = RoleUser
	}
	u := b.AddUser(in.Email, strings.TrimSpace(in.FullName), in.Password, role)
	writeJSON(w, http.StatusCreated, map[string]any{"id": u.ID, "full_name": u.FullName, "email": u.Email, "role": u.Role})
}

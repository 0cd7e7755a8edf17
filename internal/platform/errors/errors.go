package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrUnavailable     = errors.New("backend unavailable")
	ErrNetwork         = errors.New("connection error")
	ErrNoToken         = errors.New("no stored token")
	ErrCacheMiss       = errors.New("cache miss")
	ErrPastDate        = errors.New("date must be tomorrow or later")
	ErrAlreadyWorking  = errors.New("already working that day")
	ErrSameGroup       = errors.New("same-day swap needs a different shift group")
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
	Path    string
	// LoginRedirect is set on 401 and points at the login entry with the
	// original destination preserved.
	LoginRedirect string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return ErrUnauthenticated
	case e.Status == http.StatusForbidden:
		return ErrForbidden
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status == http.StatusBadRequest, e.Status == http.StatusConflict, e.Status == http.StatusUnprocessableEntity:
		return ErrInvalidInput
	case e.Status >= 500:
		return ErrUnavailable
	default:
		return nil
	}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// RedirectOf returns the login redirect carried by a 401, if any.
func RedirectOf(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.LoginRedirect != "" {
		return apiErr.LoginRedirect, true
	}
	return "", false
}

package apperrors_test

import (
	"errors"
	"fmt"
	"testing"

	apperrors "grafik/internal/platform/errors"
)

func TestAPIErrorMapsStatusToSentinel(t *testing.T) {
	t.Parallel()
	cases := []struct {
		status int
		want   error
	}{
		{400, apperrors.ErrInvalidInput},
		{401, apperrors.ErrUnauthenticated},
		{403, apperrors.ErrForbidden},
		{404, apperrors.ErrNotFound},
		{409, apperrors.ErrInvalidInput},
		{500, apperrors.ErrUnavailable},
		{503, apperrors.ErrUnavailable},
	}
	for _, tc := range cases {
		err := fmt.Errorf("call: %w", &apperrors.APIError{Status: tc.status})
		if !errors.Is(err, tc.want) {
			t.Fatalf("status %d should unwrap to %v", tc.status, tc.want)
		}
		if apperrors.StatusOf(err) != tc.status {
			t.Fatalf("status of %d mismatch", tc.status)
		}
	}
}

func TestAPIErrorMessageFallback(t *testing.T) {
	t.Parallel()
	if got := (&apperrors.APIError{Status: 418}).Error(); got != "HTTP 418" {
		t.Fatalf("expected generic message, got %q", got)
	}
	if got := (&apperrors.APIError{Status: 400, Message: "Zła data"}).Error(); got != "Zła data" {
		t.Fatalf("expected server message, got %q", got)
	}
}

func TestUserMessagePrefersServerText(t *testing.T) {
	t.Parallel()
	err := &apperrors.APIError{Status: 403, Message: "Tylko autor może usunąć notatkę."}
	if got := apperrors.UserMessage(err, "pl"); got != "Tylko autor może usunąć notatkę." {
		t.Fatalf("unexpected message %q", got)
	}
	if got := apperrors.UserMessage(fmt.Errorf("x: %w", apperrors.ErrNetwork), "en"); got != "Connection error" {
		t.Fatalf("unexpected network message %q", got)
	}
	if got := apperrors.UserMessage(&apperrors.APIError{Status: 503, Message: "boom"}, "xx"); got != "Serwer chwilowo niedostępny" {
		t.Fatalf("expected polish fallback for unknown language, got %q", got)
	}
	if _, ok := apperrors.RedirectOf(err); ok {
		t.Fatalf("403 must not carry a redirect")
	}
}

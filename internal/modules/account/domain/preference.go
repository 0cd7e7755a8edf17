package domain

import (
	"fmt"
	"strings"

	apperrors "grafik/internal/platform/errors"
)

const (
	PrefTheme    = "theme"
	PrefLanguage = "language"
)

var preferenceValues = map[string][]string{
	PrefTheme:    {"mocha", "latte"},
	PrefLanguage: {"pl", "en"},
}

var preferenceDefaults = map[string]string{
	PrefTheme:    "mocha",
	PrefLanguage: "pl",
}

// DefaultPreference returns the value used while the key was never set.
func DefaultPreference(key string) string {
	return preferenceDefaults[key]
}

// PreferenceKey canonicalises key and rejects keys outside the known set.
func PreferenceKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := preferenceValues[key]; !ok {
		return key, fmt.Errorf("%w: unknown preference %q", apperrors.ErrInvalidInput, key)
	}
	return key, nil
}

// ValidatePreference lower-cases the value and checks it against the key's
// allowed set.
func ValidatePreference(key, value string) (string, string, error) {
	key, err := PreferenceKey(key)
	value = strings.ToLower(strings.TrimSpace(value))
	if err != nil {
		return key, value, err
	}
	allowed := preferenceValues[key]
	for _, v := range allowed {
		if v == value {
			return key, value, nil
		}
	}
	return key, value, fmt.Errorf("%w: %s must be one of %s", apperrors.ErrInvalidInput, key, strings.Join(allowed, "|"))
}

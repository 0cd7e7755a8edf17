package apperrors

import "errors"

var fallbackMessages = map[string]map[error]string{
	"pl": {
		ErrNetwork:         "Błąd połączenia",
		ErrUnavailable:     "Serwer chwilowo niedostępny",
		ErrUnauthenticated: "Sesja wygasła, zaloguj się ponownie",
		ErrForbidden:       "Brak uprawnień",
		ErrNotFound:        "Nie znaleziono",
		ErrInvalidInput:    "Niepoprawne dane",
		ErrPastDate:        "Możliwe tylko od jutra",
		ErrAlreadyWorking:  "Masz już zmianę w tym dniu",
		ErrSameGroup:       "Wymiana w tym samym dniu tylko między różnymi zmianami",
		ErrNoToken:         "Nie jesteś zalogowany",
	},
	"en": {
		ErrNetwork:         "Connection error",
		ErrUnavailable:     "Server temporarily unavailable",
		ErrUnauthenticated: "Session expired, please log in again",
		ErrForbidden:       "Not allowed",
		ErrNotFound:        "Not found",
		ErrInvalidInput:    "Invalid data",
		ErrPastDate:        "Only possible from tomorrow",
		ErrAlreadyWorking:  "You already work that day",
		ErrSameGroup:       "Same-day swaps need different shift groups",
		ErrNoToken:         "Not logged in",
	},
}

var messageOrder = []error{
	ErrPastDate, ErrAlreadyWorking, ErrSameGroup, ErrNoToken,
	ErrUnauthenticated, ErrForbidden, ErrNotFound, ErrInvalidInput,
	ErrUnavailable, ErrNetwork,
}

// UserMessage renders err for a toast. A server-provided message wins;
// otherwise a localized generic text for the error kind is used.
func UserMessage(err error, lang string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Status < 500 {
		return apiErr.Message
	}
	catalog, ok := fallbackMessages[lang]
	if !ok {
		catalog = fallbackMessages["pl"]
	}
	for _, kind := range messageOrder {
		if errors.Is(err, kind) {
			return catalog[kind]
		}
	}
	return err.Error()
}

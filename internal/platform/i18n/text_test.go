package i18n_test

import (
	"testing"

	"grafik/internal/platform/i18n"
)

func TestTextPerLanguage(t *testing.T) {
	t.Parallel()
	cases := []struct {
		lang string
		key  i18n.Key
		want string
	}{
		{"pl", i18n.IncomingEmpty, "Brak propozycji"},
		{"en", i18n.IncomingEmpty, "No proposals"},
		{"pl", i18n.ManagerEmpty, "Brak propozycji do zatwierdzenia"},
		{"en", i18n.ManagerEmpty, "No proposals to approve"},
		{"de", i18n.OutgoingEmpty, "Brak propozycji"},
		{"en", i18n.Key("missing"), "No data"},
	}
	for _, tc := range cases {
		if got := i18n.Text(tc.lang, tc.key); got != tc.want {
			t.Fatalf("Text(%q, %q) = %q, want %q", tc.lang, tc.key, got, tc.want)
		}
	}
}

func TestCatalogsCoverTheSameKeys(t *testing.T) {
	t.Parallel()
	for _, key := range []i18n.Key{
		i18n.IncomingTitle, i18n.IncomingEmpty, i18n.OutgoingTitle, i18n.OutgoingEmpty,
		i18n.ManagerTitle, i18n.ManagerEmpty, i18n.OpenOffers, i18n.OpenEmpty,
		i18n.MyOffers, i18n.MyOffersEmpty, i18n.CandidatesNone,
	} {
		if i18n.Text("pl", key) == i18n.Text("pl", i18n.NoData) || i18n.Text("en", key) == i18n.Text("en", i18n.NoData) {
			t.Fatalf("key %q is missing from a catalogue", key)
		}
	}
}

// Package i18n holds the short interface texts that are shown in both the
// CLI and the terminal UI.
package i18n

// Key names one interface text.
type Key string

const (
	IncomingTitle  Key = "incoming.title"
	IncomingEmpty  Key = "incoming.empty"
	OutgoingTitle  Key = "outgoing.title"
	OutgoingEmpty  Key = "outgoing.empty"
	ManagerTitle   Key = "manager.title"
	ManagerEmpty   Key = "manager.empty"
	OpenOffers     Key = "offers.open.title"
	OpenEmpty      Key = "offers.open.empty"
	MyOffers       Key = "offers.mine.title"
	MyOffersEmpty  Key = "offers.mine.empty"
	CandidatesNone Key = "candidates.empty"
	NoData         Key = "empty"
)

var catalogs = map[string]map[Key]string{
	"pl": {
		IncomingTitle:  "Przychodzące",
		IncomingEmpty:  "Brak propozycji",
		OutgoingTitle:  "Wychodzące",
		OutgoingEmpty:  "Brak propozycji",
		ManagerTitle:   "Do zatwierdzenia",
		ManagerEmpty:   "Brak propozycji do zatwierdzenia",
		OpenOffers:     "Oferty",
		OpenEmpty:      "Brak ofert",
		MyOffers:       "Moje oferty",
		MyOffersEmpty:  "Nie wystawiasz żadnej zmiany",
		CandidatesNone: "Brak Twoich zmian do wymiany",
		NoData:         "Brak danych",
	},
	"en": {
		IncomingTitle:  "Incoming",
		IncomingEmpty:  "No proposals",
		OutgoingTitle:  "Outgoing",
		OutgoingEmpty:  "No proposals",
		ManagerTitle:   "To approve",
		ManagerEmpty:   "No proposals to approve",
		OpenOffers:     "Offers",
		OpenEmpty:      "No offers",
		MyOffers:       "My offers",
		MyOffersEmpty:  "You are not offering any shift",
		CandidatesNone: "None of your shifts can be swapped",
		NoData:         "No data",
	},
}

// Text returns the text for key in lang. Unknown languages fall back to
// Polish and unknown keys to the generic placeholder.
func Text(lang string, key Key) string {
	catalog, ok := catalogs[lang]
	if !ok {
		catalog = catalogs["pl"]
	}
	if s, ok := catalog[key]; ok {
		return s
	}
	return catalog[NoData]
}

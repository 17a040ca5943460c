// Package country resolves free text to a normalized country name.
//
// Resolution first looks for a parenthesized code such as "(JPN)". A known code
// maps to its country name and an unknown code is returned as-is. Without a
// parenthesized code, the text is scanned for any code or country name from the
// lookup table, and the first entry in table order wins.
package country

import (
	"regexp"
	"strings"
)

// Unknown is returned when no country can be found in the text.
const Unknown = "Unknown"

type entry struct {
	key     string
	country string
}

// table is ordered; earlier entries win when several keys occur in the same text.
var table = []entry{
	{"USA", "USA"}, {"US", "USA"},
	{"JPN", "Japan"}, {"JAPAN", "Japan"},
	{"AUS", "Australia"}, {"AUSTRALIA", "Australia"},
	{"ENG", "England"}, {"ENGLAND", "England"},
	{"SCT", "Scotland"}, {"SCOTLAND", "Scotland"},
	{"WLS", "Wales"}, {"WALES", "Wales"},
	{"CAN", "Canada"}, {"CANADA", "Canada"},
	{"MEX", "Mexico"}, {"MEXICO", "Mexico"},
	{"ECU", "Ecuador"}, {"ECUADOR", "Ecuador"},
	{"CHL", "Chile"}, {"CHILE", "Chile"},
	{"COL", "Colombia"}, {"COLOMBIA", "Colombia"},
	{"FRA", "France"}, {"FRANCE", "France"},
	{"GER", "Germany"}, {"GERMANY", "Germany"},
	{"NLD", "Netherlands"}, {"NETHERLANDS", "Netherlands"},
	{"SWE", "Sweden"}, {"SWEDEN", "Sweden"},
	{"UKR", "Ukraine"}, {"UKRAINE", "Ukraine"},
	{"TPE", "Taiwan"}, {"TAIWAN", "Taiwan"},
	{"MCO", "Monaco"}, {"MONACO", "Monaco"},
}

var (
	byCode    = buildIndex()
	parenCode = regexp.MustCompile(`\(([A-Z]{2,4})\)`)
)

func buildIndex() map[string]string {
	m := make(map[string]string, len(table))
	for _, e := range table {
		m[e.key] = e.country
	}
	return m
}

// Resolve returns the country named in text, a raw parenthesized code it could
// not map, or Unknown. It never returns an empty string.
func Resolve(text string) string {
	upper := strings.ToUpper(text)

	if m := parenCode.FindStringSubmatch(upper); m != nil {
		code := m[1]
		if name, ok := byCode[code]; ok {
			return name
		}
		return code
	}

	for _, e := range table {
		if strings.Contains(upper, e.key) || strings.Contains(upper, strings.ToUpper(e.country)) {
			return e.country
		}
	}

	return Unknown
}

// Known reports whether name is one of the countries in the lookup table.
func Known(name string) bool {
	for _, e := range table {
		if e.country == name {
			return true
		}
	}
	return false
}

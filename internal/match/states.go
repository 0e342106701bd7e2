package match

import "strings"

// usStates maps lowercase postal abbreviations to lowercase full names for the
// 50 states plus the District of Columbia.
var usStates = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
	"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
	"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
	"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma",
	"or": "oregon", "pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
	"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "west virginia",
	"wi": "wisconsin", "wy": "wyoming", "dc": "district of columbia",
}

var stateAbbrByName = func() map[string]string {
	m := make(map[string]string, len(usStates))
	for abbr, name := range usStates {
		m[name] = abbr
	}
	return m
}()

// StateForms returns the lowercase abbreviation and full name for target,
// looking up whichever form was not given. A two-letter target is always
// treated as an abbreviation and a longer one as a full name; the counterpart
// is empty when the table has no entry.
func StateForms(target string) (abbr, full string) {
	normalized := strings.ToLower(strings.TrimSpace(target))
	switch {
	case normalized == "":
		return "", ""
	case len(normalized) == 2:
		return normalized, usStates[normalized]
	default:
		return stateAbbrByName[normalized], normalized
	}
}

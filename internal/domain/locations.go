package domain

import "strings"

// Location is one entry of the provider's location catalog.
type Location struct {
	Code        int
	Name        string
	CodeParent  int
	CountryISO  string
	Type        string
	GeoID       int64
	GeoMetadata string
}

// FallbackLocationCode is used when neither a location id nor a
// resolvable location name is supplied (United States).
const FallbackLocationCode = 2840

// FallbackLanguageCode pairs with FallbackLocationCode.
const FallbackLanguageCode = "en"

// countryLocationCodes maps ISO 3166-1 alpha-2 country codes to the
// provider location_code for the whole country.
var countryLocationCodes = map[string]int{
	"US": 2840,
	"GB": 2826,
	"CA": 2124,
	"AU": 2036,
	"DE": 2276,
	"FR": 2250,
	"ES": 2724,
	"IT": 2380,
	"NL": 2528,
	"BE": 2056,
	"CH": 2756,
	"AT": 2040,
	"SE": 2752,
	"NO": 2578,
	"DK": 2208,
	"FI": 2246,
	"PL": 2616,
	"IE": 2372,
	"NZ": 2554,
	"JP": 2392,
	"KR": 2410,
	"IN": 2356,
	"BR": 2076,
	"MX": 2484,
	"AR": 2032,
	"CL": 2152,
	"CO": 2170,
	"ZA": 2710,
	"AE": 2784,
	"SG": 2702,
	"MY": 2458,
	"TH": 2764,
	"PH": 2608,
	"ID": 2360,
	"VN": 2704,
	"TW": 2158,
	"HK": 2344,
	"CN": 2156,
	"RU": 2642,
	"TR": 2792,
	"GR": 2300,
	"PT": 2620,
	"CZ": 2203,
	"HU": 2348,
	"RO": 2642,
	"UA": 2804,
}

// LocationCodeForCountry resolves an ISO country code (case
// insensitive) to the provider location_code.
func LocationCodeForCountry(country string) (int, error) {
	code, ok := countryLocationCodes[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return 0, NewConfigError("country", "unknown country code "+country)
	}
	return code, nil
}

// SupportedCountries lists the ISO codes the built-in table covers.
func SupportedCountries() []string {
	out := make([]string, 0, len(countryLocationCodes))
	for c := range countryLocationCodes {
		out = append(out, c)
	}
	return out
}

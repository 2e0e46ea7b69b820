package helpers

import (
	"github.com/doeshing/serpkit-go/internal/domain"
)

// ResolveLocale merges flag values with configured defaults into the
// locale sent to the provider. An explicit location id wins over a
// country code; with neither, the built-in fallback applies.
func ResolveLocale(defaults domain.Defaults, language, country string, locationID int) (domain.Locale, error) {
	locale := domain.Locale{LanguageCode: language}
	if locale.LanguageCode == "" {
		locale.LanguageCode = defaults.Language
	}
	if locale.LanguageCode == "" {
		locale.LanguageCode = domain.FallbackLanguageCode
	}

	if locationID > 0 {
		locale.LocationCode = locationID
		return locale, nil
	}

	if country == "" {
		country = defaults.Country
	}
	if country == "" {
		locale.LocationCode = domain.FallbackLocationCode
		return locale, nil
	}

	code, err := domain.LocationCodeForCountry(country)
	if err != nil {
		return domain.Locale{}, err
	}
	locale.LocationCode = code
	return locale, nil
}

package routing

import (
	"fmt"

	"github.com/jrsteele09/go-care-portal/internal/errors"
)

type Locale string

const (
	Spanish Locale = "es"
	English Locale = "en"

	// DefaultLocale is used whenever a request path has no recognisable localized form.
	DefaultLocale = Spanish
)

// Locales returns the supported locales, default first.
func Locales() []Locale {
	return []Locale{Spanish, English}
}

func ParseLocale(s string) (Locale, error) {
	for _, l := range Locales() {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, errors.ErrUnknownLocale)
}

func (l Locale) String() string {
	return string(l)
}

func (l Locale) Valid() bool {
	return l == Spanish || l == English
}

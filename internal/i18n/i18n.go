// Package i18n holds the static string tables of the client and the
// active locale. The active locale is also sent to the backend as
// Accept-Language so server messages come back in the same language.
package i18n

import (
	"errors"
	"sort"
	"sync"

	"github.com/thoas/go-funk"
	"golang.org/x/text/language"
)

// DefaultLocale is used when no locale is configured and as the lookup fallback.
const DefaultLocale = "en"

// ErrUnsupportedLocale is returned by SetLocale for locales without a string table.
var ErrUnsupportedLocale = errors.New("unsupported locale")

var tables = map[string]map[string]string{
	"en": en,
	"tr": tr,
}

// supported is ordered with the default first; the matcher falls back to index 0.
var supported = []string{"en", "tr"}

var matcher = language.NewMatcher([]language.Tag{language.English, language.Turkish})

// IsSupported reports whether locale has a string table.
func IsSupported(locale string) bool {
	return funk.ContainsString(supported, locale)
}

// Locales returns the supported locales in a stable order.
func Locales() []string {
	result := append([]string(nil), supported...)
	sort.Strings(result)
	return result
}

// Translate looks key up in locale's table, then in the default table.
// An unknown key is returned as is.
func Translate(locale, key string) string {
	if msg, ok := tables[locale][key]; ok {
		return msg
	}
	if msg, ok := tables[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Match picks the best supported locale for an Accept-Language style value
// such as "tr-TR,tr;q=0.9,en;q=0.8".
func Match(acceptLanguage string) (string, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return DefaultLocale, false
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale, false
	}
	return supported[index], true
}

// Translator carries the active locale of the client process.
type Translator struct {
	mu     sync.RWMutex
	locale string
}

// New returns a Translator with the given initial locale.
func New(locale string) (*Translator, error) {
	t := &Translator{locale: DefaultLocale}
	if locale == "" {
		return t, nil
	}
	if err := t.SetLocale(locale); err != nil {
		return nil, err
	}
	return t, nil
}

// Locale returns the active locale.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// SetLocale switches the active locale. Regional tags ("tr-TR") are
// matched to their supported base locale.
func (t *Translator) SetLocale(locale string) error {
	resolved := locale
	if !IsSupported(resolved) {
		var ok bool
		resolved, ok = Match(locale)
		if !ok {
			return ErrUnsupportedLocale
		}
	}

	t.mu.Lock()
	t.locale = resolved
	t.mu.Unlock()

	return nil
}

// T translates key in the active locale.
func (t *Translator) T(key string) string {
	return Translate(t.Locale(), key)
}

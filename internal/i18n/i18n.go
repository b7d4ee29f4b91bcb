// Package i18n holds the BioCryptor display strings for every supported
// language. The tables are fixed at build time; lookups never fail and fall
// back to the key itself.
package i18n

import (
	"log/slog"
	"strings"

	"golang.org/x/text/language"
)

// Lookup returns the display string for key in lang. A missing language or
// key yields the key.
func Lookup(lang Language, key string) string {
	table, ok := translations[lang]
	if !ok {
		slog.Warn("missing translations for language", "language", string(lang))
		return key
	}
	s, ok := table[key]
	if !ok || s == "" {
		slog.Warn("missing translation key", "key", key, "language", string(lang))
		return key
	}
	return s
}

// Languages returns the supported languages, English first.
func Languages() []Language {
	return []Language{English, Turkish}
}

// ParseLanguage maps a BCP 47 tag such as "tr-TR" or "en" onto a supported
// language.
func ParseLanguage(s string) (Language, bool) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	switch base.String() {
	case string(English):
		return English, true
	case string(Turkish):
		return Turkish, true
	default:
		return "", false
	}
}

// Detect picks the display language from an Accept-Language header. Only the
// most preferred language is considered: Turkish selects Turkish, anything
// else English.
func Detect(acceptLanguage string) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return English
	}
	if base, _ := tags[0].Base(); base.String() == string(Turkish) {
		return Turkish
	}
	return English
}

// Localizer resolves keys for one language. It is a plain value; switching
// language produces a new Localizer.
type Localizer struct {
	lang Language
}

// New returns a Localizer for lang. Unsupported languages are kept as given
// so that lookups fall back to keys.
func New(lang Language) Localizer {
	return Localizer{lang: lang}
}

func (l Localizer) Language() Language {
	return l.lang
}

func (l Localizer) T(key string) string {
	return Lookup(l.lang, key)
}

// Package i18n содержит локализованные сообщения (fr, en) и выбор локали.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Locale - код поддерживаемого языка.
type Locale string

// Поддерживаемые локали. Французский используется по умолчанию.
const (
	French  Locale = "fr"
	English Locale = "en"

	Default = French
)

var (
	supported = []language.Tag{language.French, language.English}
	matcher   = language.NewMatcher(supported)
	messages  = buildCatalog()
)

// Tag возвращает языковой тег локали.
func (l Locale) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.French
}

// Parse возвращает локаль для строки вида "fr", "en-GB" или заголовка Accept-Language.
// Неизвестные значения дают локаль по умолчанию.
func Parse(value string) Locale {
	if value == "" {
		return Default
	}
	tags, _, err := language.ParseAcceptLanguage(value)
	if err != nil || len(tags) == 0 {
		return Default
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Default
	}
	if supported[idx] == language.English {
		return English
	}
	return French
}

// T возвращает сообщение key для локали, подставляя аргументы.
func T(locale Locale, key Key, args ...any) string {
	p := message.NewPrinter(locale.Tag(), message.Catalog(messages))
	return p.Sprintf(string(key), args...)
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	for key, tr := range translations {
		if err := b.SetString(language.French, string(key), tr.fr); err != nil {
			panic(err)
		}
		if err := b.SetString(language.English, string(key), tr.en); err != nil {
			panic(err)
		}
	}
	return b
}

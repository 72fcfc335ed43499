package locale

import (
	"strings"

	"golang.org/x/text/language"
)

const DefaultLanguage = "en"

var (
	supportedLanguages = []string{"en", "ru", "uz"}

	matcher = language.NewMatcher([]language.Tag{
		language.English,
		language.Russian,
		language.MustParse("uz"),
	})
)

func SupportedLanguages() []string {
	return append([]string(nil), supportedLanguages...)
}

// MatchLanguage picks the closest supported language for an Accept-Language
// header or a single tag. Unmatched input yields fallback.
func MatchLanguage(accept, fallback string) string {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supportedLanguages[index]
}

func Tag(lang string) language.Tag {
	tag, err := language.Parse(lang)
	if err != nil {
		return language.English
	}
	return tag
}

package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Supported UI languages.
const (
	LanguageEnglish = "en"
	LanguageGerman  = "de"
	LanguageFrench  = "fr"
)

// SupportedLanguages lists the UI languages, default first.
var SupportedLanguages = []string{LanguageEnglish, LanguageGerman, LanguageFrench}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.English,
	language.German,
	language.French,
})

// MatchLanguage maps a BCP 47 tag (e.g. "de-CH") onto a supported language.
func MatchLanguage(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	tag, err := language.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, raw)
	}
	return SupportedLanguages[idx], nil
}

// NormalizeLanguage returns a supported language, falling back to English.
func NormalizeLanguage(raw string) string {
	lang, err := MatchLanguage(raw)
	if err != nil {
		return LanguageEnglish
	}
	return lang
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchLanguage(t *testing.T) {
	tests := map[string]string{
		"en":    LanguageEnglish,
		"de":    LanguageGerman,
		"de-CH": LanguageGerman,
		"fr-CA": LanguageFrench,
		" fr ":  LanguageFrench,
	}
	for input, want := range tests {
		got, err := MatchLanguage(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestMatchLanguage_Unsupported(t *testing.T) {
	for _, input := range []string{"", "!!", "ja"} {
		_, err := MatchLanguage(input)
		require.ErrorIs(t, err, ErrUnsupportedLanguage, input)
	}
	assert.Equal(t, LanguageEnglish, NormalizeLanguage("ja"))
}

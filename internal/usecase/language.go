package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
)

// LanguageInput contains the parameters for the Language use case.
type LanguageInput struct {
	Set string // BCP 47 tag to store; empty only reports the current language
}

// LanguageOutput contains the UI language.
type LanguageOutput struct {
	Language  string
	Supported []string
	Changed   bool
}

// Language is the use case for showing or setting the UI language.
type Language struct {
	repo domain.StateRepository
}

// NewLanguage creates a new Language use case.
func NewLanguage(repo domain.StateRepository) *Language {
	return &Language{repo: repo}
}

// Execute matches the requested tag against the supported languages.
func (uc *Language) Execute(_ context.Context, in LanguageInput) (*LanguageOutput, error) {
	out := &LanguageOutput{Supported: domain.SupportedLanguages}
	if in.Set != "" {
		lang, err := domain.MatchLanguage(in.Set)
		if err != nil {
			return nil, err
		}
		if err := uc.repo.SetLanguage(lang); err != nil {
			return nil, err
		}
		out.Language = lang
		out.Changed = true
		return out, nil
	}
	lang, err := uc.repo.Language()
	if err != nil {
		return nil, err
	}
	out.Language = domain.NormalizeLanguage(lang)
	return out, nil
}

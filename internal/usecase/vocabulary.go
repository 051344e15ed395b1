package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// vocabularySeeder fetches the seed the first time it is needed.
type vocabularySeeder struct {
	fetcher domain.VocabularyFetcher
	logger  domain.Logger
}

// ensure caches the seed in d when it is missing (or always when force is
// set). A failed fetch leaves d untouched.
func (s vocabularySeeder) ensure(ctx context.Context, d *shared.Day, force bool) error {
	if d.State.Vocabulary.Seed != nil && !force {
		return nil
	}
	seed, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Warn("vocabulary", err.Error())
		if !errors.Is(err, domain.ErrVocabularyUnavailable) {
			err = errors.Join(domain.ErrVocabularyUnavailable, err)
		}
		return err
	}
	engine.SetVocabularySeed(d.State, seed)
	return nil
}

// VocabularyOutput contains the vocabulary panel.
type VocabularyOutput struct {
	Version      string
	ActiveTheme  string
	Direction    string
	Themes       []engine.ThemeProgress
	Streak       int
	StudiedToday int
}

func vocabularyOutput(d *shared.Day) (*VocabularyOutput, error) {
	themes, err := engine.VocabularyProgress(d.State, d.Today)
	if err != nil {
		return nil, err
	}
	v := d.State.Vocabulary
	return &VocabularyOutput{
		Version:      v.Seed.Version,
		ActiveTheme:  v.ActiveTheme,
		Direction:    v.Direction,
		Themes:       themes,
		Streak:       engine.VocabularyStreak(d.State, d.Today),
		StudiedToday: v.StudyDays[d.Today],
	}, nil
}

// ShowVocabularyInput contains the parameters for showing vocabulary progress.
type ShowVocabularyInput struct {
	Refresh bool // fetch the seed again even if one is cached
}

// ShowVocabulary is the use case for displaying vocabulary progress.
type ShowVocabulary struct {
	days   *shared.DayStore
	seeder vocabularySeeder
}

// NewShowVocabulary creates a new ShowVocabulary use case.
func NewShowVocabulary(days *shared.DayStore, fetcher domain.VocabularyFetcher, logger domain.Logger) *ShowVocabulary {
	return &ShowVocabulary{days: days, seeder: vocabularySeeder{fetcher: fetcher, logger: logger}}
}

// Execute loads the seed if needed and summarizes every theme.
func (uc *ShowVocabulary) Execute(ctx context.Context, in ShowVocabularyInput) (*VocabularyOutput, error) {
	var out *VocabularyOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		if err := uc.seeder.ensure(ctx, d, in.Refresh); err != nil {
			return err
		}
		var err error
		out, err = vocabularyOutput(d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// VocabularyQueueInput contains the parameters for listing due words.
type VocabularyQueueInput struct {
	Theme string // theme id, empty = active theme
}

// Card is one word to review.
type Card struct {
	ItemID   string
	Question string
	Answer   string
	Box      int
}

// VocabularyQueueOutput contains the words due today.
type VocabularyQueueOutput struct {
	Theme string
	Cards []Card
}

// VocabularyQueue is the use case for listing the words due for review.
type VocabularyQueue struct {
	days   *shared.DayStore
	seeder vocabularySeeder
}

// NewVocabularyQueue creates a new VocabularyQueue use case.
func NewVocabularyQueue(days *shared.DayStore, fetcher domain.VocabularyFetcher, logger domain.Logger) *VocabularyQueue {
	return &VocabularyQueue{days: days, seeder: vocabularySeeder{fetcher: fetcher, logger: logger}}
}

// Execute returns the due words with prompts in the configured direction.
func (uc *VocabularyQueue) Execute(ctx context.Context, in VocabularyQueueInput) (*VocabularyQueueOutput, error) {
	out := &VocabularyQueueOutput{}
	_, err := uc.days.Update(func(d *shared.Day) error {
		if err := uc.seeder.ensure(ctx, d, false); err != nil {
			return err
		}
		items, err := engine.DueItems(d.State, in.Theme, d.Today)
		if err != nil {
			return err
		}
		out.Theme = in.Theme
		if out.Theme == "" {
			out.Theme = d.State.Vocabulary.ActiveTheme
		}
		for _, item := range items {
			q, a := engine.Prompt(item, d.State.Vocabulary.Direction)
			box := d.State.Vocabulary.Progress[item.ID].Box
			out.Cards = append(out.Cards, Card{ItemID: item.ID, Question: q, Answer: a, Box: max(box, engine.MinBox)})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewWordInput contains one review answer.
type ReviewWordInput struct {
	ItemID  string
	Answer  string // when set, graded against the expected answer
	Correct bool   // used when Answer is empty
}

// ReviewWordOutput contains the graded review.
type ReviewWordOutput struct {
	Expected string
	Progress domain.WordProgress
	Streak   int
	Correct  bool
}

// ReviewWord is the use case for recording one vocabulary review.
type ReviewWord struct {
	days *shared.DayStore
}

// NewReviewWord creates a new ReviewWord use case.
func NewReviewWord(days *shared.DayStore) *ReviewWord {
	return &ReviewWord{days: days}
}

// Execute grades the answer and moves the word between boxes.
func (uc *ReviewWord) Execute(_ context.Context, in ReviewWordInput) (*ReviewWordOutput, error) {
	out := &ReviewWordOutput{}
	_, err := uc.days.Update(func(d *shared.Day) error {
		item, err := findItem(d.State, in.ItemID)
		if err != nil {
			return err
		}
		_, out.Expected = engine.Prompt(item, d.State.Vocabulary.Direction)
		out.Correct = in.Correct
		if in.Answer != "" {
			out.Correct = strings.EqualFold(strings.TrimSpace(in.Answer), out.Expected)
		}
		out.Progress, err = engine.ReviewWord(d.State, in.ItemID, out.Correct, d.Today)
		if err != nil {
			return err
		}
		out.Streak = engine.VocabularyStreak(d.State, d.Today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func findItem(st *domain.State, itemID string) (domain.VocabularyItem, error) {
	seed := st.Vocabulary.Seed
	if seed == nil {
		return domain.VocabularyItem{}, domain.ErrVocabularyUnavailable
	}
	for _, theme := range seed.Themes {
		for _, item := range theme.Items {
			if item.ID == itemID {
				return item, nil
			}
		}
	}
	return domain.VocabularyItem{}, domain.ErrWordNotFound
}

// VocabularySettingsInput contains vocabulary preferences. Nil fields are unchanged.
type VocabularySettingsInput struct {
	Theme     *string
	Direction *string
}

// VocabularySettings is the use case for choosing the theme and direction.
type VocabularySettings struct {
	days   *shared.DayStore
	seeder vocabularySeeder
}

// NewVocabularySettings creates a new VocabularySettings use case.
func NewVocabularySettings(days *shared.DayStore, fetcher domain.VocabularyFetcher, logger domain.Logger) *VocabularySettings {
	return &VocabularySettings{days: days, seeder: vocabularySeeder{fetcher: fetcher, logger: logger}}
}

// Execute stores the preferences.
func (uc *VocabularySettings) Execute(ctx context.Context, in VocabularySettingsInput) (*VocabularyOutput, error) {
	var out *VocabularyOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		if in.Direction != nil {
			if err := engine.SetDirection(d.State, *in.Direction); err != nil {
				return err
			}
		}
		if err := uc.seeder.ensure(ctx, d, false); err != nil {
			return err
		}
		if in.Theme != nil {
			if err := engine.SetActiveTheme(d.State, *in.Theme); err != nil {
				return err
			}
		}
		var err error
		out, err = vocabularyOutput(d)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

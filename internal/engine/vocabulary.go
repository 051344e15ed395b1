package engine

import (
	"fmt"

	"github.com/runoshun/steps/internal/domain"
)

// Leitner boxes.
const (
	MinBox     = 1
	MaxBox     = 5
	MasteryBox = 4
)

// reviewIntervals is the review interval in days for boxes 1..5.
var reviewIntervals = [MaxBox]int{1, 2, 4, 7, 14}

// SetVocabularySeed caches a freshly fetched seed. Progress for words that
// no longer exist is kept so a later seed can bring them back.
func SetVocabularySeed(st *domain.State, seed *domain.VocabularySeed) {
	if seed == nil {
		return
	}
	st.Vocabulary.Seed = seed
	if st.Vocabulary.ActiveTheme == "" || seed.Theme(st.Vocabulary.ActiveTheme) == nil {
		st.Vocabulary.ActiveTheme = ""
		if len(seed.Themes) > 0 {
			st.Vocabulary.ActiveTheme = seed.Themes[0].ID
		}
	}
}

// IsDue reports whether a word with progress p should be reviewed today.
func IsDue(p domain.WordProgress, reviewed bool, today string) bool {
	if !reviewed || p.LastReviewed == "" {
		return true
	}
	box := min(max(p.Box, MinBox), MaxBox)
	return domain.DaysBetween(p.LastReviewed, today) >= reviewIntervals[box-1]
}

func themeOf(st *domain.State, themeID string) (*domain.VocabularyTheme, error) {
	if st.Vocabulary.Seed == nil {
		return nil, domain.ErrVocabularyUnavailable
	}
	if themeID == "" {
		themeID = st.Vocabulary.ActiveTheme
	}
	theme := st.Vocabulary.Seed.Theme(themeID)
	if theme == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrThemeNotFound, themeID)
	}
	return theme, nil
}

// SetActiveTheme selects the theme used by default.
func SetActiveTheme(st *domain.State, themeID string) error {
	theme, err := themeOf(st, themeID)
	if err != nil {
		return err
	}
	st.Vocabulary.ActiveTheme = theme.ID
	return nil
}

// SetDirection selects fr-de or de-fr prompts.
func SetDirection(st *domain.State, direction string) error {
	switch direction {
	case domain.DirectionFrDe, domain.DirectionDeFr:
		st.Vocabulary.Direction = direction
		return nil
	default:
		return fmt.Errorf("unknown direction %q (expected %s or %s)", direction, domain.DirectionFrDe, domain.DirectionDeFr)
	}
}

// DueItems returns the words of a theme due today, in seed order.
// An empty themeID means the active theme.
func DueItems(st *domain.State, themeID, today string) ([]domain.VocabularyItem, error) {
	theme, err := themeOf(st, themeID)
	if err != nil {
		return nil, err
	}
	var out []domain.VocabularyItem
	for _, item := range theme.Items {
		p, ok := st.Vocabulary.Progress[item.ID]
		if IsDue(p, ok, today) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Prompt returns the question and expected answer for item in direction.
func Prompt(item domain.VocabularyItem, direction string) (question, answer string) {
	if direction == domain.DirectionDeFr {
		return item.DE, item.FR
	}
	return item.FR, item.DE
}

// ReviewWord moves a word between Leitner boxes and counts a study day.
func ReviewWord(st *domain.State, itemID string, correct bool, today string) (domain.WordProgress, error) {
	if st.Vocabulary.Seed == nil {
		return domain.WordProgress{}, domain.ErrVocabularyUnavailable
	}
	if !seedHasItem(st.Vocabulary.Seed, itemID) {
		return domain.WordProgress{}, fmt.Errorf("%w: %s", domain.ErrWordNotFound, itemID)
	}

	p, ok := st.Vocabulary.Progress[itemID]
	if !ok {
		p.Box = MinBox
	}
	if correct {
		p.Box = min(p.Box+1, MaxBox)
		p.Correct++
	} else {
		p.Box = MinBox
		p.Wrong++
	}
	p.LastReviewed = today
	st.Vocabulary.Progress[itemID] = p

	st.Vocabulary.StudyDays[today]++
	advanceStreak(&st.Vocabulary.LastStudyDate, &st.Vocabulary.Streak, today)
	return p, nil
}

func seedHasItem(seed *domain.VocabularySeed, itemID string) bool {
	for _, theme := range seed.Themes {
		for _, item := range theme.Items {
			if item.ID == itemID {
				return true
			}
		}
	}
	return false
}

// ThemeProgress summarizes one theme.
type ThemeProgress struct {
	ID         string
	Title      string
	Total      int
	Due        int
	Mastered   int
	MasteryPct int
}

// VocabularyProgress summarizes every theme of the cached seed.
func VocabularyProgress(st *domain.State, today string) ([]ThemeProgress, error) {
	seed := st.Vocabulary.Seed
	if seed == nil {
		return nil, domain.ErrVocabularyUnavailable
	}
	out := make([]ThemeProgress, 0, len(seed.Themes))
	for _, theme := range seed.Themes {
		tp := ThemeProgress{ID: theme.ID, Title: theme.Title, Total: len(theme.Items)}
		for _, item := range theme.Items {
			p, ok := st.Vocabulary.Progress[item.ID]
			if IsDue(p, ok, today) {
				tp.Due++
			}
			if ok && p.Box >= MasteryBox {
				tp.Mastered++
			}
		}
		tp.MasteryPct = percent(tp.Mastered, tp.Total)
		out = append(out, tp)
	}
	return out, nil
}

// VocabularyStreak returns the study streak as of today.
func VocabularyStreak(st *domain.State, today string) int {
	return liveStreak(st.Vocabulary.LastStudyDate, st.Vocabulary.Streak, today)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/testutil"
)

func vocabState() *domain.State {
	st := domain.NewState()
	SetVocabularySeed(st, testutil.SampleSeed())
	return st
}

func TestSetVocabularySeed_SelectsFirstTheme(t *testing.T) {
	st := vocabState()
	assert.Equal(t, "food", st.Vocabulary.ActiveTheme)

	require.NoError(t, SetActiveTheme(st, "home"))
	SetVocabularySeed(st, testutil.SampleSeed())
	assert.Equal(t, "home", st.Vocabulary.ActiveTheme)

	require.ErrorIs(t, SetActiveTheme(st, "cars"), domain.ErrThemeNotFound)
}

func TestDueItems_Unavailable(t *testing.T) {
	_, err := DueItems(domain.NewState(), "", monday)
	require.ErrorIs(t, err, domain.ErrVocabularyUnavailable)
}

func TestReviewWord_LeitnerBoxes(t *testing.T) {
	st := vocabState()

	due, err := DueItems(st, "", monday)
	require.NoError(t, err)
	assert.Len(t, due, 2)

	p, err := ReviewWord(st, "f1", true, monday)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Box)

	due, _ = DueItems(st, "food", tuesday)
	assert.Equal(t, []string{"f2"}, itemIDs(due), "box 2 waits two days")
	due, _ = DueItems(st, "food", "2024-01-03")
	assert.Len(t, due, 2)

	p, err = ReviewWord(st, "f1", false, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Box)
	assert.Equal(t, 1, p.Correct)
	assert.Equal(t, 1, p.Wrong)

	_, err = ReviewWord(st, "nope", true, monday)
	require.ErrorIs(t, err, domain.ErrWordNotFound)
}

func TestReviewWord_CapsAtTopBox(t *testing.T) {
	st := vocabState()
	day := monday
	for i := 0; i < 8; i++ {
		_, err := ReviewWord(st, "h1", true, day)
		require.NoError(t, err)
		day = domain.AddDays(day, 1)
	}
	assert.Equal(t, MaxBox, st.Vocabulary.Progress["h1"].Box)
	assert.Equal(t, 8, st.Vocabulary.Streak)
	assert.Equal(t, 8, VocabularyStreak(st, domain.AddDays(day, -1)))
	assert.Zero(t, VocabularyStreak(st, domain.AddDays(day, 1)))
}

func TestVocabularyProgress(t *testing.T) {
	st := vocabState()
	st.Vocabulary.Progress["f1"] = domain.WordProgress{Box: 4, LastReviewed: monday}

	prog, err := VocabularyProgress(st, tuesday)
	require.NoError(t, err)
	require.Len(t, prog, 2)
	assert.Equal(t, ThemeProgress{ID: "food", Title: "Food", Total: 2, Due: 1, Mastered: 1, MasteryPct: 50}, prog[0])
	assert.Equal(t, ThemeProgress{ID: "home", Title: "Home", Total: 1, Due: 1}, prog[1])
}

func TestReviewWord_StudyDays(t *testing.T) {
	st := vocabState()
	_, _ = ReviewWord(st, "f1", true, monday)
	_, _ = ReviewWord(st, "f2", false, monday)
	assert.Equal(t, 2, st.Vocabulary.StudyDays[monday])
	assert.Equal(t, 1, st.Vocabulary.Streak)
}

func TestPrompt(t *testing.T) {
	item := domain.VocabularyItem{FR: "pain", DE: "Brot"}
	q, a := Prompt(item, domain.DirectionFrDe)
	assert.Equal(t, []string{"pain", "Brot"}, []string{q, a})
	q, a = Prompt(item, domain.DirectionDeFr)
	assert.Equal(t, []string{"Brot", "pain"}, []string{q, a})
	require.Error(t, SetDirection(domain.NewState(), "en-fr"))
}

func itemIDs(items []domain.VocabularyItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

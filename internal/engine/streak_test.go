package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/runoshun/steps/internal/domain"
)

func TestUpdateStreak(t *testing.T) {
	st := domain.NewState()

	UpdateStreak(st, "2024-03-01")
	assert.Equal(t, 1, st.Streak)
	assert.Equal(t, "2024-03-01", st.LastActiveDate)

	UpdateStreak(st, "2024-03-01")
	assert.Equal(t, 1, st.Streak, "same day is a no-op")

	UpdateStreak(st, "2024-03-02")
	UpdateStreak(st, "2024-03-03")
	assert.Equal(t, 3, st.Streak)

	UpdateStreak(st, "2024-03-05")
	assert.Equal(t, 1, st.Streak, "a missed day restarts the streak")
	assert.Equal(t, "2024-03-05", st.LastActiveDate)
}

func TestUpdateStreak_AcrossMonthAndLeapDay(t *testing.T) {
	st := domain.NewState()
	for _, d := range []string{"2024-02-28", "2024-02-29", "2024-03-01"} {
		UpdateStreak(st, d)
	}
	assert.Equal(t, 3, st.Streak)
}

func TestCurrentStreak(t *testing.T) {
	st := domain.NewState()
	assert.Zero(t, CurrentStreak(st, "2024-03-01"))

	st.LastActiveDate = "2024-03-01"
	st.Streak = 4
	assert.Equal(t, 4, CurrentStreak(st, "2024-03-01"))
	assert.Equal(t, 4, CurrentStreak(st, "2024-03-02"))
	assert.Zero(t, CurrentStreak(st, "2024-03-03"))
}

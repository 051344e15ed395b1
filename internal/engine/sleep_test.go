package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func TestSleepDuration(t *testing.T) {
	tests := []struct {
		bed  string
		wake string
		want int
	}{
		{"23:00", "07:00", 480},
		{"01:30", "09:00", 450},
		{"22:15", "22:15", 1440},
	}
	for _, tt := range tests {
		got, err := SleepDuration(tt.bed, tt.wake)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s-%s", tt.bed, tt.wake)
	}
}

func TestSleepScore(t *testing.T) {
	assert.Equal(t, 100, SleepScore(8*60, 5))
	assert.Equal(t, 50, SleepScore(330, 3))
	assert.Equal(t, 0, SleepScore(4*60, 1))
	assert.Equal(t, 0, SleepScore(12*60, 1))
	assert.Equal(t, 70, SleepScore(9*60, 1))
	assert.Equal(t, 35, SleepScore(630, 1))
}

func TestLogSleep(t *testing.T) {
	st := domain.NewState()

	e, err := LogSleep(st, monday, "23:00", "6:45", 4)
	require.NoError(t, err)
	assert.Equal(t, domain.SleepEntry{Bed: "23:00", Wake: "06:45", Quality: 4}, e)

	_, err = LogSleep(st, tuesday, "10:00", "10:30", 3)
	require.ErrorIs(t, err, domain.ErrInvalidSleep)
	_, err = LogSleep(st, tuesday, "22:00", "22:00", 3)
	require.ErrorIs(t, err, domain.ErrInvalidSleep)
	_, err = LogSleep(st, tuesday, "22:00", "06:00", 0)
	require.ErrorIs(t, err, domain.ErrInvalidSleep)
	_, err = LogSleep(st, tuesday, "22:99", "06:00", 3)
	require.ErrorIs(t, err, domain.ErrInvalidClock)

	assert.Len(t, st.SleepEntries, 1)
}

func TestComputeSleepStats(t *testing.T) {
	st := domain.NewState()
	st.SleepEntries = map[string]domain.SleepEntry{
		"2024-01-07": {Bed: "23:00", Wake: "07:00", Quality: 5}, // 8h, 100
		"2024-01-05": {Bed: "00:30", Wake: "06:00", Quality: 3}, // 5.5h, 50
		"2023-12-01": {Bed: "22:00", Wake: "06:00", Quality: 5}, // outside window
	}

	ss := ComputeSleepStats(st, "2024-01-07")
	assert.Equal(t, 2, ss.Nights)
	assert.Equal(t, 3, ss.TotalEntries)
	assert.Equal(t, "2024-01-07", ss.LastDate)
	assert.Equal(t, 480, ss.LastMinutes)
	assert.Equal(t, 100, ss.LastScore)
	assert.Equal(t, 405, ss.AvgMinutes)
	assert.Equal(t, 75, ss.AvgScore)
}

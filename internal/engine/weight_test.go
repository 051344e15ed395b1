package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func TestLogWeight(t *testing.T) {
	st := domain.NewState()

	kg, err := LogWeight(st, monday, 70.04, domain.UnitKg)
	require.NoError(t, err)
	assert.Equal(t, 70.0, kg)

	kg, err = LogWeight(st, tuesday, 180, domain.UnitLb)
	require.NoError(t, err)
	assert.Equal(t, 81.6, kg)
	assert.Equal(t, 81.6, st.WeightEntries[tuesday])
}

func TestLogWeight_Rejects(t *testing.T) {
	st := domain.NewState()
	tests := []struct {
		want  error
		name  string
		date  string
		unit  string
		value float64
	}{
		{domain.ErrInvalidWeight, "too light", monday, domain.UnitKg, 19.9},
		{domain.ErrInvalidWeight, "too heavy", monday, domain.UnitKg, 400.1},
		{domain.ErrInvalidWeight, "bad unit", monday, "stone", 12},
		{domain.ErrInvalidDate, "bad date", "yesterday", domain.UnitKg, 70},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LogWeight(st, tt.date, tt.value, tt.unit)
			require.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, st.WeightEntries)
}

func TestComputeWeightStats(t *testing.T) {
	st := domain.NewState()
	st.WeightEntries = map[string]float64{
		"2024-01-01": 80,
		"2024-01-05": 79.5,
		"2024-01-08": 79,
		"2024-02-01": 60, // after asOf
	}
	require.NoError(t, SetWeightTarget(st, 75, domain.UnitKg))

	ws := ComputeWeightStats(st, "2024-01-10")
	assert.Equal(t, "2024-01-08", ws.LatestDate)
	assert.Equal(t, 79.0, ws.Latest)
	assert.True(t, ws.HasDelta)
	assert.Equal(t, -1.0, ws.Delta7)
	assert.Equal(t, TrendDown, ws.Trend)
	assert.Equal(t, 79.5, ws.Average7)
	assert.True(t, ws.HasTarget)
	assert.Equal(t, 20, ws.Progress)
	assert.Equal(t, 3, ws.Entries)
}

func TestComputeWeightStats_Sparse(t *testing.T) {
	st := domain.NewState()
	ws := ComputeWeightStats(st, monday)
	assert.Equal(t, WeightStats{Trend: TrendStable}, ws)

	st.WeightEntries[monday] = 70
	st.WeightEntries[tuesday] = 70.1
	ws = ComputeWeightStats(st, tuesday)
	assert.False(t, ws.HasDelta)
	assert.Equal(t, TrendStable, ws.Trend)
	assert.False(t, ws.HasTarget)
}

func TestSetWeightTarget(t *testing.T) {
	st := domain.NewState()
	require.ErrorIs(t, SetWeightTarget(st, 5, domain.UnitKg), domain.ErrInvalidWeight)
	require.NoError(t, SetWeightTarget(st, 165, domain.UnitLb))
	assert.Equal(t, 74.8, st.Settings.TargetWeight)
	require.NoError(t, SetWeightTarget(st, 0, ""))
	assert.Zero(t, st.Settings.TargetWeight)
}

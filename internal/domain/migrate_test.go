package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewState_Defaults(t *testing.T) {
	st := NewState()

	assert.Equal(t, CurrentSchemaVersion, st.SchemaVersion)
	assert.NotNil(t, st.Goals)
	assert.NotNil(t, st.TodayTasks)
	assert.NotNil(t, st.QuickTasks)
	assert.NotNil(t, st.DaySummary)
	assert.NotNil(t, st.Vocabulary.Progress)
	assert.Equal(t, UnitKg, st.Settings.WeightUnit)
	assert.Equal(t, DirectionFrDe, st.Vocabulary.Direction)
	assert.Empty(t, st.LastTaskUnlockDate)
}

func TestDecodeState_Corrupt(t *testing.T) {
	inputs := []string{"", "not json", "[1,2,3]", "null", `{"goals": "oops"}`}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := DecodeState([]byte(in))
			require.ErrorIs(t, err, ErrCorruptState)
		})
	}
}

func TestDecodeState_ClampsEnums(t *testing.T) {
	raw := `{
		"schemaVersion": 3,
		"goals": [{"id": "g1", "title": " Run ", "time": "7:5x", "createdAt": "2024-01-03"}],
		"quickTasks": {"q1": {"id": "q1", "title": "Call", "bucket": "yesterday"}},
		"settings": {"weightUnit": "stone"},
		"vocabulary": {"direction": "en-fr", "progress": {"w1": {"box": 9}}}
	}`
	st, err := DecodeState([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "Run", st.Goals[0].Title)
	assert.Equal(t, DefaultGoalTime, st.Goals[0].Time)
	assert.Equal(t, BucketToday, st.QuickTasks["q1"].Bucket)
	assert.Equal(t, UnitKg, st.Settings.WeightUnit)
	assert.Equal(t, DirectionFrDe, st.Vocabulary.Direction)
	assert.Equal(t, 5, st.Vocabulary.Progress["w1"].Box)
}

func TestDecodeState_BackfillsOnboardingStart(t *testing.T) {
	raw := `{"schemaVersion": 3, "goals": [
		{"id": "a", "title": "A", "time": "08:00", "createdAt": "2024-02-10"},
		{"id": "b", "title": "B", "time": "08:00", "createdAt": "2024-02-03"}
	]}`
	st, err := DecodeState([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "2024-02-03", st.OnboardingStartDate)
}

func TestDecodeState_KeepsExplicitOnboardingStart(t *testing.T) {
	raw := `{"schemaVersion": 3, "onboardingStartDate": "2024-01-01",
		"goals": [{"id": "a", "title": "A", "createdAt": "2024-02-10"}]}`
	st, err := DecodeState([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", st.OnboardingStartDate)
}

func TestDecodeState_MigratesV1(t *testing.T) {
	raw := `{
		"goals": [{"id": "g1", "title": "Run", "time": "07:00", "createdAt": "2024-01-01",
			"weeklyPlan": {"mon": "5k", "tue": ""}}],
		"quickTasks": {
			"today": [{"id": "q1", "text": "Buy milk"}],
			"tomorrow": [{"title": "Dentist"}]
		}
	}`
	st, err := DecodeState([]byte(raw))
	require.NoError(t, err)

	plan := st.WeeklyPlans["g1"]
	require.NotNil(t, plan)
	assert.Equal(t, "5k", plan[Mon])
	assert.True(t, plan.IsComplete(), "missing weekdays are filled")

	require.Len(t, st.QuickTasks, 2)
	assert.Equal(t, "Buy milk", st.QuickTasks["q1"].Title)
	assert.Equal(t, BucketToday, st.QuickTasks["q1"].Bucket)
	var tomorrow []QuickTask
	for _, q := range st.QuickTasks {
		if q.Bucket == BucketTomorrow {
			tomorrow = append(tomorrow, q)
		}
	}
	require.Len(t, tomorrow, 1)
	assert.Equal(t, "Dentist", tomorrow[0].Title)
	assert.NotEmpty(t, tomorrow[0].ID)
}

func TestDecodeState_DedupesTasksAndSideQuests(t *testing.T) {
	raw := `{"schemaVersion": 3,
		"todayTasks": [
			{"id": "t1", "goalId": "g1", "date": "2024-01-01", "label": "first"},
			{"id": "t2", "goalId": "g1", "date": "2024-01-01", "label": "dup"}
		],
		"sideQuests": [{"goalId": "a"}, {"goalId": "a"}, {"goalId": "b"}, {"goalId": "c"}, {"goalId": "d"}]
	}`
	st, err := DecodeState([]byte(raw))
	require.NoError(t, err)

	require.Len(t, st.TodayTasks, 1)
	assert.Equal(t, "first", st.TodayTasks[0].Label)
	require.Len(t, st.SideQuests, MaxSideQuests)
	assert.Equal(t, "a", st.SideQuests[0].GoalID)
	assert.Equal(t, "c", st.SideQuests[2].GoalID)
}

func TestDecodeState_RoundTrip(t *testing.T) {
	st := NewState()
	st.Goals = append(st.Goals, Goal{ID: "g1", Title: "Run", Time: "07:00", CreatedAt: "2024-01-01"})
	st.DaySummary["2024-01-01"] = DaySummary{Done: 1, Total: 2}
	st.Streak = 4

	raw, err := json.Marshal(st)
	require.NoError(t, err)
	got, err := DecodeState(raw)
	require.NoError(t, err)

	assert.Equal(t, st.Goals, got.Goals)
	assert.Equal(t, st.DaySummary, got.DaySummary)
	assert.Equal(t, 4, got.Streak)
	assert.Equal(t, "2024-01-01", got.OnboardingStartDate)
}

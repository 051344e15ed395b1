package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestAddGoal(t *testing.T) {
	e, _ := newTestEngine(false)
	st := domain.NewState()

	g, err := e.AddGoal(st, "  Meditate ", "6:30", monday)
	require.NoError(t, err)
	assert.Equal(t, "Meditate", g.Title)
	assert.Equal(t, "06:30", g.Time)
	assert.Equal(t, monday, g.CreatedAt)
	assert.Equal(t, monday, st.OnboardingStartDate)

	g2, err := e.AddGoal(st, "Read", "", tuesday)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultGoalTime, g2.Time)
	assert.Equal(t, monday, st.OnboardingStartDate, "onboarding start is set once")
}

func TestAddGoal_InvalidInputLeavesStateUnchanged(t *testing.T) {
	e, _ := newTestEngine(false)
	st := domain.NewState()

	_, err := e.AddGoal(st, " ", "", monday)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)
	_, err = e.AddGoal(st, "Run", "99:00", monday)
	require.ErrorIs(t, err, domain.ErrInvalidClock)

	assert.Empty(t, st.Goals)
	assert.Empty(t, st.OnboardingStartDate)
}

func TestUpdateGoal_RelabelsPendingTask(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	e.EnsureTodayTasks(st, monday)

	g, err := UpdateGoal(st, "g1", GoalPatch{Title: ptr("Jog"), Time: ptr("7:15")}, monday)
	require.NoError(t, err)
	assert.Equal(t, "Jog", g.Title)
	assert.Equal(t, "07:15", g.Time)
	assert.Equal(t, "Jog", st.TodayTasks[0].Label)
	assert.Equal(t, domain.DefaultGoalTime, st.TodayTasks[0].Time, "task time is independent")

	_, err = UpdateGoal(st, "g1", GoalPatch{Title: ptr("")}, monday)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)
	_, err = UpdateGoal(st, "nope", GoalPatch{}, monday)
	require.ErrorIs(t, err, domain.ErrGoalNotFound)
}

func TestDeleteGoal_Cascades(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run", "Read")
	e.EnsureTodayTasks(st, monday)
	st.SideQuests = []domain.SideQuest{{GoalID: "g1"}, {GoalID: "g2"}}
	st.WeeklyPlans["g1"] = domain.CompletePlan(domain.WeeklyPlan{domain.Mon: "x"})

	require.NoError(t, DeleteGoal(st, "g1", monday))

	require.Len(t, st.Goals, 1)
	assert.Empty(t, st.TodayTasks)
	assert.Equal(t, []domain.SideQuest{{GoalID: "g2"}}, st.SideQuests)
	assert.NotContains(t, st.WeeklyPlans, "g1")
	require.ErrorIs(t, DeleteGoal(st, "g1", monday), domain.ErrGoalNotFound)
}

func TestSetWeeklyPlan(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	day4 := domain.AddDays(monday, 3) // Thursday
	e.EnsureTodayTasks(st, day4)
	plan := domain.CompletePlan(domain.WeeklyPlan{domain.Mon: "Intervals"})

	err := e.SetWeeklyPlan(st, "g1", plan, tuesday)
	require.ErrorIs(t, err, domain.ErrFeatureLocked)

	err = e.SetWeeklyPlan(st, "g1", domain.WeeklyPlan{domain.Mon: "x"}, day4)
	require.ErrorIs(t, err, domain.ErrIncompletePlan)

	require.NoError(t, e.SetWeeklyPlan(st, "g1", plan, day4))
	assert.Equal(t, plan, st.WeeklyPlans["g1"])
	assert.True(t, st.TodayTasks[0].IsRestDay, "Thursday is now a rest day")
	assert.Equal(t, "Rest Day: Run", st.TodayTasks[0].Label)
	assert.NotContains(t, st.DaySummary, day4)

	require.NoError(t, e.SetWeeklyPlan(st, "g1", domain.CompletePlan(nil), day4))
	assert.NotContains(t, st.WeeklyPlans, "g1")
	assert.False(t, st.TodayTasks[0].IsRestDay)
	assert.Equal(t, "Run", st.TodayTasks[0].Label)
}

func TestSortedGoals(t *testing.T) {
	st := domain.NewState()
	st.Goals = []domain.Goal{
		{ID: "1", Title: "b", Time: "09:00"},
		{ID: "2", Title: "c", Time: "07:00"},
		{ID: "3", Title: "a", Time: "09:00"},
	}
	got := SortedGoals(st)
	assert.Equal(t, []string{"2", "3", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})
	assert.Equal(t, "1", st.Goals[0].ID, "input order is untouched")
}

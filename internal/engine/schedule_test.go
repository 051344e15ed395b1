package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/testutil"
)

// 2024-01-01 is a Monday.
const (
	monday  = "2024-01-01"
	tuesday = "2024-01-02"
)

func newTestEngine(fast bool) (*Engine, *testutil.FixedRandom) {
	rnd := &testutil.FixedRandom{}
	return New(Pacing{Fast: fast}, rnd, &testutil.SeqIDs{Prefix: "t"}), rnd
}

func stateWithGoals(titles ...string) *domain.State {
	st := domain.NewState()
	for i, title := range titles {
		st.Goals = append(st.Goals, domain.Goal{
			ID:        "g" + string(rune('1'+i)),
			Title:     title,
			Time:      domain.DefaultGoalTime,
			CreatedAt: monday,
		})
	}
	if len(titles) > 0 {
		st.OnboardingStartDate = monday
	}
	return st
}

func TestShouldUnlockNewTask_GapBoundary(t *testing.T) {
	st := stateWithGoals("Run")
	st.OnboardingStartDate = "2023-01-01"
	st.LastTaskUnlockDate = "2024-01-10"
	p := Pacing{}

	assert.False(t, p.ShouldUnlockNewTask(st, "2024-01-10"))
	assert.False(t, p.ShouldUnlockNewTask(st, "2024-01-11"))
	assert.False(t, p.ShouldUnlockNewTask(st, "2024-01-12"))
	assert.True(t, p.ShouldUnlockNewTask(st, "2024-01-13"))
	assert.Equal(t, "2024-01-13", p.NextUnlockDate(st, "2024-01-11"))
}

func TestShouldUnlockNewTask_NeverUnlocked(t *testing.T) {
	st := stateWithGoals("Run")
	assert.True(t, Pacing{}.ShouldUnlockNewTask(st, monday))
}

func TestRequiredGap_FastOnlyDuringOnboarding(t *testing.T) {
	st := stateWithGoals("Run")
	fast := Pacing{Fast: true}

	assert.Equal(t, FastUnlockGapDays, fast.RequiredGap(st, domain.AddDays(monday, 11)))
	assert.Equal(t, UnlockGapDays, fast.RequiredGap(st, domain.AddDays(monday, 12)))
	assert.Equal(t, UnlockGapDays, Pacing{}.RequiredGap(st, monday))

	st.LastTaskUnlockDate = monday
	assert.True(t, fast.ShouldUnlockNewTask(st, tuesday))
}

func TestAccess_Thresholds(t *testing.T) {
	st := stateWithGoals("Run")

	tests := []struct {
		name   string
		want   Access
		offset int
		fast   bool
	}{
		{"day1", Access{Day: 1, Active: true}, 0, false},
		{"day3", Access{Day: 3, Active: true}, 2, false},
		{"day4", Access{Day: 4, Active: true, WeeklyPlan: true}, 3, false},
		{"day7", Access{Day: 7, Active: true, WeeklyPlan: true, QuickTasks: true}, 6, false},
		{"day9", Access{Day: 9, Active: true, WeeklyPlan: true, QuickTasks: true, SideQuests: true}, 8, false},
		{"day12", Access{Day: 12, Active: true, WeeklyPlan: true, QuickTasks: true, SideQuests: true}, 11, false},
		{"day13", Access{Day: 13, WeeklyPlan: true, QuickTasks: true, SideQuests: true}, 12, false},
		{"fast day1", Access{Day: 1, Active: true}, 0, true},
		{"fast day2", Access{Day: 2, Active: true, WeeklyPlan: true}, 1, true},
		{"fast day3", Access{Day: 3, Active: true, WeeklyPlan: true, QuickTasks: true}, 2, true},
		{"fast day4", Access{Day: 4, Active: true, WeeklyPlan: true, QuickTasks: true, SideQuests: true}, 3, true},
		// Fast mode keeps the full onboarding length.
		{"fast day12", Access{Day: 12, Active: true, WeeklyPlan: true, QuickTasks: true, SideQuests: true}, 11, true},
		{"fast day13", Access{Day: 13, WeeklyPlan: true, QuickTasks: true, SideQuests: true}, 12, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pacing{Fast: tt.fast}.Access(st, domain.AddDays(monday, tt.offset))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOnboardingDay_Floor(t *testing.T) {
	st := domain.NewState()
	assert.Equal(t, 1, OnboardingDay(st, monday))

	st.OnboardingStartDate = tuesday
	assert.Equal(t, 1, OnboardingDay(st, monday))
	assert.Equal(t, 1, OnboardingDay(st, tuesday))
	assert.Equal(t, 2, OnboardingDay(st, "2024-01-03"))
}

func TestResolveLabelAndRestDay(t *testing.T) {
	goal := domain.Goal{ID: "g1", Title: "Run"}
	plan := domain.CompletePlan(domain.WeeklyPlan{domain.Mon: "Run"})

	label, rest := ResolveLabelAndRestDay(goal, plan, domain.WeekdayKey(tuesday))
	assert.Equal(t, "Rest Day: Run", label)
	assert.True(t, rest)

	label, rest = ResolveLabelAndRestDay(goal, domain.WeeklyPlan{domain.Mon: "5k tempo"}, domain.Mon)
	assert.Equal(t, "5k tempo", label)
	assert.False(t, rest)

	label, rest = ResolveLabelAndRestDay(goal, nil, domain.Tue)
	assert.Equal(t, "Run", label)
	assert.False(t, rest)

	label, rest = ResolveLabelAndRestDay(goal, domain.CompletePlan(nil), domain.Tue)
	assert.Equal(t, "Run", label)
	assert.False(t, rest)
}

func TestEnsureTodayTasks_SeedsFirstGoal(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run", "Read")

	res := e.EnsureTodayTasks(st, monday)

	assert.True(t, res.Seeded)
	require.Len(t, st.TodayTasks, 1)
	assert.Equal(t, "g1", st.TodayTasks[0].GoalID)
	assert.Equal(t, "Run", st.TodayTasks[0].Label)
	assert.Equal(t, monday, st.TodayTasks[0].Date)
	assert.Equal(t, monday, st.LastTaskUnlockDate)
	assert.Equal(t, domain.DaySummary{Done: 0, Total: 1}, st.DaySummary[monday])
}

func TestEnsureTodayTasks_Idempotent(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")

	e.EnsureTodayTasks(st, monday)
	first := append([]domain.TodayTask(nil), st.TodayTasks...)

	res := e.EnsureTodayTasks(st, monday)
	assert.False(t, res.Changed())
	assert.Equal(t, first, st.TodayTasks)
}

func TestEnsureTodayTasks_SameDayKeepsDone(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	e.EnsureTodayTasks(st, monday)
	_, err := ToggleTask(st, st.TodayTasks[0].ID, monday)
	require.NoError(t, err)

	e.EnsureTodayTasks(st, monday)
	assert.True(t, st.TodayTasks[0].Done)
	assert.Equal(t, "Run", st.TodayTasks[0].Label)
}

func TestEnsureTodayTasks_NoReseedAfterDelete(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run", "Read")
	e.EnsureTodayTasks(st, monday)

	require.NoError(t, DeleteGoal(st, "g1", monday))
	assert.Empty(t, st.TodayTasks)

	res := e.EnsureTodayTasks(st, tuesday)
	assert.False(t, res.Seeded)
	assert.Empty(t, st.TodayTasks)
}

func TestEnsureTodayTasks_Rollover(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	e.EnsureTodayTasks(st, monday)
	st.WeeklyPlans["g1"] = domain.CompletePlan(domain.WeeklyPlan{domain.Mon: "Intervals"})
	st.TodayTasks[0].Label = "Intervals"
	_, err := ToggleTask(st, st.TodayTasks[0].ID, monday)
	require.NoError(t, err)

	res := e.EnsureTodayTasks(st, tuesday)

	assert.Equal(t, 1, res.RolledOver)
	task := st.TodayTasks[0]
	assert.Equal(t, tuesday, task.Date)
	assert.False(t, task.Done)
	assert.True(t, task.IsRestDay)
	assert.Equal(t, "Rest Day: Run", task.Label)
	assert.Equal(t, monday, task.DoneAt)
	assert.Equal(t, []domain.HistoryEntry{{Label: "Intervals", Done: true}}, st.DayTaskHistory[monday])
	_, hasSummary := st.DaySummary[tuesday]
	assert.False(t, hasSummary, "rest days are not actionable")
	assert.Equal(t, domain.DaySummary{Done: 1, Total: 1}, st.DaySummary[monday])
}

func TestEnsureTodayTasks_DropsOrphans(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	st.LastTaskUnlockDate = monday
	st.TodayTasks = []domain.TodayTask{
		{ID: "a", GoalID: "gone", Date: monday},
		{ID: "b", GoalID: "", Date: monday},
		{ID: "c", GoalID: "g1", Date: monday, Label: "Run"},
	}

	res := e.EnsureTodayTasks(st, monday)
	assert.Equal(t, 2, res.Dropped)
	require.Len(t, st.TodayTasks, 1)
	assert.Equal(t, "c", st.TodayTasks[0].ID)
}

func TestUnlockCandidates(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run", "Read", "Swim")
	e.EnsureTodayTasks(st, tuesday)
	st.WeeklyPlans["g3"] = domain.CompletePlan(domain.WeeklyPlan{domain.Mon: "Pool"})

	got := UnlockCandidates(st, tuesday)
	require.Len(t, got, 1)
	assert.Equal(t, "g2", got[0].ID)
}

func TestUnlockRandom(t *testing.T) {
	e, rnd := newTestEngine(false)
	st := stateWithGoals("Run", "Read", "Swim")
	e.EnsureTodayTasks(st, monday)
	rnd.Index = 1

	task, err := e.UnlockRandom(st, "2024-01-04")
	require.NoError(t, err)
	assert.Equal(t, "g3", task.GoalID)
	assert.Equal(t, "2024-01-04", st.LastTaskUnlockDate)
	assert.Equal(t, 1, rnd.Calls)

	st2 := stateWithGoals("Run")
	e.EnsureTodayTasks(st2, monday)
	_, err = e.UnlockRandom(st2, monday)
	require.ErrorIs(t, err, domain.ErrNoCandidates)
}

func TestAddTaskFromGoal_Errors(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run", "Read")
	e.EnsureTodayTasks(st, tuesday)
	st.WeeklyPlans["g2"] = domain.CompletePlan(domain.WeeklyPlan{domain.Mon: "Novel"})

	_, err := e.AddTaskFromGoal(st, "missing", tuesday)
	require.ErrorIs(t, err, domain.ErrGoalNotFound)
	_, err = e.AddTaskFromGoal(st, "g1", tuesday)
	require.ErrorIs(t, err, domain.ErrAlreadyUnlocked)
	_, err = e.AddTaskFromGoal(st, "g2", tuesday)
	require.ErrorIs(t, err, domain.ErrRestDay)

	task, err := e.AddTaskFromGoal(st, "g2", "2024-01-08")
	require.NoError(t, err)
	assert.Equal(t, "Novel", task.Label)
}

func TestToggleTask_TotalDoneOncePerDay(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	e.EnsureTodayTasks(st, monday)
	id := st.TodayTasks[0].ID

	for i := 0; i < 5; i++ {
		_, err := ToggleTask(st, id, monday)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, st.TotalDone)
	assert.True(t, st.TodayTasks[0].Done)
	assert.Equal(t, 1, st.Streak)
	assert.True(t, st.CompletedDays[monday])

	e.EnsureTodayTasks(st, tuesday)
	_, err := ToggleTask(st, id, tuesday)
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalDone)
	assert.Equal(t, 2, st.Streak)
}

func TestToggleTask_UndoClearsCompletedDay(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	e.EnsureTodayTasks(st, monday)
	id := st.TodayTasks[0].ID

	_, _ = ToggleTask(st, id, monday)
	done, err := ToggleTask(st, id, monday)
	require.NoError(t, err)
	assert.False(t, done)
	assert.False(t, st.CompletedDays[monday])
	assert.Equal(t, domain.DaySummary{Done: 0, Total: 1}, st.DaySummary[monday])
}

func TestToggleTask_Errors(t *testing.T) {
	st := stateWithGoals("Run")
	st.TodayTasks = []domain.TodayTask{
		{ID: "rest", GoalID: "g1", Date: monday, IsRestDay: true},
		{ID: "old", GoalID: "g1", Date: "2023-12-31"},
	}

	_, err := ToggleTask(st, "nope", monday)
	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	_, err = ToggleTask(st, "rest", monday)
	require.ErrorIs(t, err, domain.ErrRestDay)
	_, err = ToggleTask(st, "old", monday)
	require.ErrorIs(t, err, domain.ErrStaleTask)
	assert.Zero(t, st.TotalDone)
}

func TestUpdateMainDaySummary_RemovesEmptyDay(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")
	e.EnsureTodayTasks(st, monday)
	require.Contains(t, st.DaySummary, monday)

	require.NoError(t, DeleteGoal(st, "g1", monday))
	assert.NotContains(t, st.DaySummary, monday)
	assert.NotContains(t, st.CompletedDays, monday)
}

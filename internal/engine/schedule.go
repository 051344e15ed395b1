package engine

import (
	"fmt"

	"github.com/runoshun/steps/internal/domain"
)

// Unlock pacing.
const (
	UnlockGapDays       = 3
	FastUnlockGapDays   = 1
	OnboardingTotalDays = 12
)

// RestDayLabel prefixes the goal title on a planned rest day.
const RestDayLabel = "Rest Day"

// thresholds are the onboarding days at which features unlock.
type thresholds struct {
	weeklyPlan int
	quickTasks int
	sideQuests int
}

var (
	normalThresholds = thresholds{weeklyPlan: 4, quickTasks: 7, sideQuests: 9}
	fastThresholds   = thresholds{weeklyPlan: 2, quickTasks: 3, sideQuests: 4}
)

// Pacing selects normal or fast onboarding.
type Pacing struct {
	Fast bool
}

// Access is the feature gate for one day.
type Access struct {
	Day        int  // onboarding day, 1-based
	Active     bool // onboarding still running
	WeeklyPlan bool
	QuickTasks bool
	SideQuests bool
}

// OnboardingDay returns daysBetween(onboardingStartDate, today)+1, floored at 1.
func OnboardingDay(st *domain.State, today string) int {
	if st.OnboardingStartDate == "" {
		return 1
	}
	day := domain.DaysBetween(st.OnboardingStartDate, today) + 1
	if day < 1 {
		return 1
	}
	return day
}

// Access computes the feature gate for today.
// Fast mode shortens the thresholds but not the onboarding length.
func (p Pacing) Access(st *domain.State, today string) Access {
	th := normalThresholds
	if p.Fast {
		th = fastThresholds
	}
	day := OnboardingDay(st, today)
	return Access{
		Day:        day,
		Active:     day <= OnboardingTotalDays,
		WeeklyPlan: day >= th.weeklyPlan,
		QuickTasks: day >= th.quickTasks,
		SideQuests: day >= th.sideQuests,
	}
}

// RequiredGap returns the number of days that must pass between unlocks.
func (p Pacing) RequiredGap(st *domain.State, today string) int {
	if p.Fast && p.Access(st, today).Active {
		return FastUnlockGapDays
	}
	return UnlockGapDays
}

// ShouldUnlockNewTask reports whether a new goal may be added to today's list.
func (p Pacing) ShouldUnlockNewTask(st *domain.State, today string) bool {
	if st.LastTaskUnlockDate == "" {
		return true
	}
	return domain.DaysBetween(st.LastTaskUnlockDate, today) >= p.RequiredGap(st, today)
}

// NextUnlockDate returns the first date on which ShouldUnlockNewTask holds,
// or today when it already holds.
func (p Pacing) NextUnlockDate(st *domain.State, today string) string {
	if p.ShouldUnlockNewTask(st, today) {
		return today
	}
	return domain.AddDays(st.LastTaskUnlockDate, p.RequiredGap(st, today))
}

// ResolveLabelAndRestDay resolves the label shown for goal on weekday.
func ResolveLabelAndRestDay(goal domain.Goal, plan domain.WeeklyPlan, weekday string) (label string, restDay bool) {
	if entry := plan.Entry(weekday); entry != "" {
		return entry, false
	}
	if plan.IsActive() {
		return fmt.Sprintf("%s: %s", RestDayLabel, goal.Title), true
	}
	return goal.Title, false
}

// isRestDay reports whether goal has a planned rest day on date.
func isRestDay(st *domain.State, goal domain.Goal, date string) bool {
	_, rest := ResolveLabelAndRestDay(goal, st.WeeklyPlans[goal.ID], domain.WeekdayKey(date))
	return rest
}

// materialize creates the task for goal on date.
func materialize(st *domain.State, goal domain.Goal, date, id string) domain.TodayTask {
	label, rest := ResolveLabelAndRestDay(goal, st.WeeklyPlans[goal.ID], domain.WeekdayKey(date))
	return domain.TodayTask{
		ID:        id,
		GoalID:    goal.ID,
		Label:     label,
		Time:      goal.Time,
		Date:      date,
		IsRestDay: rest,
	}
}

// relabel recomputes the label and rest-day flag of a pending task.
func relabel(st *domain.State, t *domain.TodayTask) {
	goal := st.Goal(t.GoalID)
	if goal == nil {
		return
	}
	t.Label, t.IsRestDay = ResolveLabelAndRestDay(*goal, st.WeeklyPlans[goal.ID], domain.WeekdayKey(t.Date))
}

// UnlockCandidates returns goals that are not on today's list and do not
// have a rest day today.
func UnlockCandidates(st *domain.State, today string) []domain.Goal {
	var out []domain.Goal
	for _, g := range st.Goals {
		if st.HasTaskForGoal(g.ID, today) || isRestDay(st, g, today) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// EnsureResult reports what EnsureTodayTasks changed.
type EnsureResult struct {
	Seeded     bool
	RolledOver int
	Dropped    int
}

// Changed reports whether anything was modified.
func (r EnsureResult) Changed() bool {
	return r.Seeded || r.RolledOver > 0 || r.Dropped > 0
}

// EnsureTodayTasks brings the task list up to date for today.
//
// Tasks from an earlier day are captured into DayTaskHistory and
// re-materialized for today. Orphaned tasks are dropped. On the very first
// run with goals (LastTaskUnlockDate unset) the first goal is seeded.
// Calling it again for the same date is a no-op.
func (e *Engine) EnsureTodayTasks(st *domain.State, today string) EnsureResult {
	var res EnsureResult

	if st.TasksDate != "" && st.TasksDate != today {
		captureHistory(st, st.TasksDate)
	}

	seen := make(map[string]bool, len(st.TodayTasks))
	kept := st.TodayTasks[:0]
	for _, t := range st.TodayTasks {
		if st.Goal(t.GoalID) == nil || seen[t.GoalID] {
			res.Dropped++
			continue
		}
		seen[t.GoalID] = true
		if t.Date != today {
			t.Date = today
			t.Done = false
			relabel(st, &t)
			res.RolledOver++
		}
		kept = append(kept, t)
	}
	st.TodayTasks = kept
	st.TasksDate = today

	RollQuickTasks(st, today)

	if st.LastTaskUnlockDate == "" && len(st.Goals) > 0 && len(st.TodayTasks) == 0 {
		st.TodayTasks = append(st.TodayTasks, materialize(st, st.Goals[0], today, e.ids.NewID()))
		st.LastTaskUnlockDate = today
		res.Seeded = true
	}

	UpdateMainDaySummary(st, today)
	return res
}

// captureHistory snapshots the tasks dated date into DayTaskHistory.
func captureHistory(st *domain.State, date string) {
	var entries []domain.HistoryEntry
	for _, t := range st.TodayTasks {
		if t.Date == date {
			entries = append(entries, domain.HistoryEntry{Label: t.Label, Done: t.Done})
		}
	}
	if len(entries) > 0 {
		st.DayTaskHistory[date] = entries
	}
}

// AddTaskFromGoal adds goalID to today's list and records the unlock.
func (e *Engine) AddTaskFromGoal(st *domain.State, goalID, today string) (*domain.TodayTask, error) {
	goal := st.Goal(goalID)
	if goal == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGoalNotFound, goalID)
	}
	if st.HasTaskForGoal(goalID, today) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyUnlocked, goal.Title)
	}
	if isRestDay(st, *goal, today) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRestDay, goal.Title)
	}
	return e.unlock(st, *goal, today), nil
}

// UnlockRandom adds a uniformly chosen candidate to today's list.
func (e *Engine) UnlockRandom(st *domain.State, today string) (*domain.TodayTask, error) {
	candidates := UnlockCandidates(st, today)
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	return e.unlock(st, candidates[e.rnd.Intn(len(candidates))], today), nil
}

func (e *Engine) unlock(st *domain.State, goal domain.Goal, today string) *domain.TodayTask {
	st.TodayTasks = append(st.TodayTasks, materialize(st, goal, today, e.ids.NewID()))
	st.LastTaskUnlockDate = today
	UpdateMainDaySummary(st, today)
	return &st.TodayTasks[len(st.TodayTasks)-1]
}

// ToggleTask flips the completion of a task dated today and returns the
// new done flag. TotalDone counts each task at most once per day.
func ToggleTask(st *domain.State, taskID, today string) (bool, error) {
	t := st.Task(taskID)
	if t == nil {
		return false, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, taskID)
	}
	if t.IsRestDay {
		return false, fmt.Errorf("%w: %s", domain.ErrRestDay, t.Label)
	}
	if t.Date != today {
		return false, fmt.Errorf("%w: %s is dated %s", domain.ErrStaleTask, t.Label, t.Date)
	}

	t.Done = !t.Done
	if t.Done {
		if t.DoneAt != today {
			t.DoneAt = today
			st.TotalDone++
		}
		UpdateStreak(st, today)
	}
	UpdateMainDaySummary(st, today)
	return t.Done, nil
}

// UpdateMainDaySummary recomputes DaySummary[today] over actionable
// primary tasks. A day without actionable tasks has no entry.
func UpdateMainDaySummary(st *domain.State, today string) {
	var sum domain.DaySummary
	for i := range st.TodayTasks {
		t := &st.TodayTasks[i]
		if !t.IsActionable(today) {
			continue
		}
		sum.Total++
		if t.Done {
			sum.Done++
		}
	}
	if sum.Total == 0 {
		delete(st.DaySummary, today)
		delete(st.CompletedDays, today)
		return
	}
	st.DaySummary[today] = sum
	if sum.Done >= sum.Total {
		st.CompletedDays[today] = true
	} else {
		delete(st.CompletedDays, today)
	}
}

package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/steps/internal/domain"
)

// GoalPatch holds the goal fields to change. Nil fields are left as is.
type GoalPatch struct {
	Title *string
	Time  *string
}

// AddGoal validates and appends a goal. The first goal ever added starts
// onboarding.
func (e *Engine) AddGoal(st *domain.State, title, hhmm, today string) (*domain.Goal, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if hhmm == "" {
		hhmm = domain.DefaultGoalTime
	}
	t, err := domain.NormalizeClock(hhmm)
	if err != nil {
		return nil, err
	}

	st.Goals = append(st.Goals, domain.Goal{
		ID:        e.ids.NewID(),
		Title:     title,
		Time:      t,
		CreatedAt: today,
	})
	if st.OnboardingStartDate == "" {
		st.OnboardingStartDate = today
	}
	return &st.Goals[len(st.Goals)-1], nil
}

// UpdateGoal edits a goal and re-resolves its pending task for today.
func UpdateGoal(st *domain.State, id string, patch GoalPatch, today string) (*domain.Goal, error) {
	goal := st.Goal(id)
	if goal == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrGoalNotFound, id)
	}

	title := goal.Title
	if patch.Title != nil {
		title = strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, domain.ErrEmptyTitle
		}
	}
	hhmm := goal.Time
	if patch.Time != nil {
		t, err := domain.NormalizeClock(*patch.Time)
		if err != nil {
			return nil, err
		}
		hhmm = t
	}

	goal.Title = title
	goal.Time = hhmm
	refreshPending(st, id, today)
	return goal, nil
}

// DeleteGoal removes a goal with its tasks, side quest and weekly plan.
func DeleteGoal(st *domain.State, id, today string) error {
	idx := slices.IndexFunc(st.Goals, func(g domain.Goal) bool { return g.ID == id })
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrGoalNotFound, id)
	}
	st.Goals = slices.Delete(st.Goals, idx, idx+1)
	st.TodayTasks = slices.DeleteFunc(st.TodayTasks, func(t domain.TodayTask) bool { return t.GoalID == id })
	st.SideQuests = slices.DeleteFunc(st.SideQuests, func(q domain.SideQuest) bool { return q.GoalID == id })
	delete(st.WeeklyPlans, id)
	UpdateMainDaySummary(st, today)
	return nil
}

// SetWeeklyPlan stores the weekly plan of a goal. An all-empty plan removes it.
func (e *Engine) SetWeeklyPlan(st *domain.State, goalID string, plan domain.WeeklyPlan, today string) error {
	if !e.pacing.Access(st, today).WeeklyPlan {
		return fmt.Errorf("%w: weekly plans", domain.ErrFeatureLocked)
	}
	if st.Goal(goalID) == nil {
		return fmt.Errorf("%w: %s", domain.ErrGoalNotFound, goalID)
	}
	if !plan.IsComplete() {
		return domain.ErrIncompletePlan
	}
	for k := range plan {
		if domain.WeekdayIndex(k) < 0 {
			return fmt.Errorf("%w: unknown weekday %q", domain.ErrIncompletePlan, k)
		}
	}

	if clean := domain.CompletePlan(plan); clean.IsActive() {
		st.WeeklyPlans[goalID] = clean
	} else {
		delete(st.WeeklyPlans, goalID)
	}
	refreshPending(st, goalID, today)
	return nil
}

// refreshPending re-resolves the label of goalID's task for today unless
// it is already done.
func refreshPending(st *domain.State, goalID, today string) {
	for i := range st.TodayTasks {
		t := &st.TodayTasks[i]
		if t.GoalID == goalID && t.Date == today && !t.Done {
			relabel(st, t)
		}
	}
	UpdateMainDaySummary(st, today)
}

// SortedGoals returns the goals ordered by time, then title.
func SortedGoals(st *domain.State) []domain.Goal {
	out := slices.Clone(st.Goals)
	slices.SortStableFunc(out, func(a, b domain.Goal) int {
		return cmp.Or(cmp.Compare(a.Time, b.Time), cmp.Compare(a.Title, b.Title))
	})
	return out
}

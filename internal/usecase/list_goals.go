package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ListGoalsInput contains the parameters for listing goals.
type ListGoalsInput struct{}

// GoalItem is one goal with its schedule state for today.
// Fields are ordered to minimize memory padding.
type GoalItem struct {
	Plan      domain.WeeklyPlan // nil when the goal has no weekly plan
	Label     string            // label the goal resolves to today
	Badge     string
	Goal      domain.Goal
	OnToday   bool
	RestDay   bool
	SideQuest bool
}

// ListGoalsOutput contains the goals in display order.
type ListGoalsOutput struct {
	Goals  []GoalItem
	Access engine.Access
	Today  string
}

// ListGoals is the use case for listing the goal pool.
type ListGoals struct {
	days *shared.DayStore
}

// NewListGoals creates a new ListGoals use case.
func NewListGoals(days *shared.DayStore) *ListGoals {
	return &ListGoals{days: days}
}

// Execute lists goals sorted by time, then title.
func (uc *ListGoals) Execute(_ context.Context, _ ListGoalsInput) (*ListGoalsOutput, error) {
	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	st := day.State
	weekday := domain.WeekdayKey(day.Today)
	out := &ListGoalsOutput{
		Today:  day.Today,
		Access: uc.days.Engine().Pacing().Access(st, day.Today),
	}
	for _, g := range engine.SortedGoals(st) {
		plan, hasPlan := st.WeeklyPlans[g.ID]
		label, rest := engine.ResolveLabelAndRestDay(g, plan, weekday)
		item := GoalItem{
			Goal:      g,
			Label:     label,
			RestDay:   rest,
			Badge:     domain.TimeBucket(g.Time),
			OnToday:   st.HasTaskForGoal(g.ID, day.Today),
			SideQuest: st.IsSideQuest(g.ID),
		}
		if hasPlan {
			item.Plan = plan
		}
		out.Goals = append(out.Goals, item)
	}
	return out, nil
}

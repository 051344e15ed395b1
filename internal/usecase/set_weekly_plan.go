package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// SetWeeklyPlanInput contains the parameters for setting a weekly plan.
type SetWeeklyPlanInput struct {
	Plan domain.WeeklyPlan // missing weekdays become rest days
	Ref  string            // Goal id or list position (required)
}

// SetWeeklyPlanOutput contains the stored plan.
type SetWeeklyPlanOutput struct {
	Plan   domain.WeeklyPlan // nil when the plan was cleared
	GoalID string
}

// SetWeeklyPlan is the use case for editing a goal's weekly plan.
type SetWeeklyPlan struct {
	days *shared.DayStore
}

// NewSetWeeklyPlan creates a new SetWeeklyPlan use case.
func NewSetWeeklyPlan(days *shared.DayStore) *SetWeeklyPlan {
	return &SetWeeklyPlan{days: days}
}

// Execute stores the plan and re-resolves today's task for the goal.
func (uc *SetWeeklyPlan) Execute(_ context.Context, in SetWeeklyPlanInput) (*SetWeeklyPlanOutput, error) {
	var out SetWeeklyPlanOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		goal, err := shared.ResolveGoal(d.State, in.Ref)
		if err != nil {
			return err
		}
		for k := range in.Plan {
			if domain.WeekdayIndex(k) < 0 {
				return fmt.Errorf("%w: unknown weekday %q", domain.ErrIncompletePlan, k)
			}
		}
		if err := uc.days.Engine().SetWeeklyPlan(d.State, goal.ID, domain.CompletePlan(in.Plan), d.Today); err != nil {
			return err
		}
		out.GoalID = goal.ID
		if plan, ok := d.State.WeeklyPlans[goal.ID]; ok {
			out.Plan = plan
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

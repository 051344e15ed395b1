package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// EditGoalInput contains the parameters for editing a goal.
// Nil fields are left unchanged.
type EditGoalInput struct {
	Title *string
	Time  *string
	Ref   string // Goal id or list position (required)
}

// EditGoalOutput contains the edited goal.
type EditGoalOutput struct {
	Goal domain.Goal
}

// EditGoal is the use case for editing a goal.
type EditGoal struct {
	days *shared.DayStore
}

// NewEditGoal creates a new EditGoal use case.
func NewEditGoal(days *shared.DayStore) *EditGoal {
	return &EditGoal{days: days}
}

// Execute applies the patch and relabels today's pending task.
func (uc *EditGoal) Execute(_ context.Context, in EditGoalInput) (*EditGoalOutput, error) {
	var out EditGoalOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		goal, err := shared.ResolveGoal(d.State, in.Ref)
		if err != nil {
			return err
		}
		updated, err := engine.UpdateGoal(d.State, goal.ID, engine.GoalPatch{Title: in.Title, Time: in.Time}, d.Today)
		if err != nil {
			return err
		}
		out.Goal = *updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// DeleteGoalInput contains the parameters for deleting a goal.
type DeleteGoalInput struct {
	Ref string // Goal id or list position (required)
}

// DeleteGoalOutput contains the removed goal.
type DeleteGoalOutput struct {
	Goal domain.Goal
}

// DeleteGoal is the use case for deleting a goal together with its tasks,
// side quest and weekly plan.
type DeleteGoal struct {
	days   *shared.DayStore
	logger domain.Logger
}

// NewDeleteGoal creates a new DeleteGoal use case.
func NewDeleteGoal(days *shared.DayStore, logger domain.Logger) *DeleteGoal {
	return &DeleteGoal{days: days, logger: logger}
}

// Execute deletes the goal.
func (uc *DeleteGoal) Execute(_ context.Context, in DeleteGoalInput) (*DeleteGoalOutput, error) {
	var out DeleteGoalOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		goal, err := shared.ResolveGoal(d.State, in.Ref)
		if err != nil {
			return err
		}
		out.Goal = *goal
		return engine.DeleteGoal(d.State, goal.ID, d.Today)
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("goal", "deleted "+out.Goal.ID)
	return &out, nil
}

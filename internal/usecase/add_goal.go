package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// AddGoalInput contains the parameters for adding a goal.
type AddGoalInput struct {
	Title string // Goal title (required)
	Time  string // HH:MM, empty = 08:00
}

// AddGoalOutput contains the result of adding a goal.
type AddGoalOutput struct {
	Goal   domain.Goal
	Seeded bool // the goal became today's first task
}

// AddGoal is the use case for adding a goal to the pool.
type AddGoal struct {
	days   *shared.DayStore
	logger domain.Logger
}

// NewAddGoal creates a new AddGoal use case.
func NewAddGoal(days *shared.DayStore, logger domain.Logger) *AddGoal {
	return &AddGoal{days: days, logger: logger}
}

// Execute adds the goal. The very first goal is materialized for today.
func (uc *AddGoal) Execute(_ context.Context, in AddGoalInput) (*AddGoalOutput, error) {
	var out AddGoalOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		goal, err := uc.days.Engine().AddGoal(d.State, in.Title, in.Time, d.Today)
		if err != nil {
			return err
		}
		out.Goal = *goal
		out.Seeded = uc.days.Engine().EnsureTodayTasks(d.State, d.Today).Seeded
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("goal", "added "+out.Goal.ID)
	return &out, nil
}

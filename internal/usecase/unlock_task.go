package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// UnlockTaskInput contains the parameters for unlocking a new task.
type UnlockTaskInput struct {
	GoalRef string // Goal id or list position; empty picks a random candidate
}

// UnlockTaskOutput contains the task added to today's list.
type UnlockTaskOutput struct {
	Task       domain.TodayTask
	NextUnlock string
}

// UnlockTask is the use case for adding a goal to today's list.
type UnlockTask struct {
	days   *shared.DayStore
	logger domain.Logger
}

// NewUnlockTask creates a new UnlockTask use case.
func NewUnlockTask(days *shared.DayStore, logger domain.Logger) *UnlockTask {
	return &UnlockTask{days: days, logger: logger}
}

// Execute unlocks a task if the unlock gap has passed.
func (uc *UnlockTask) Execute(_ context.Context, in UnlockTaskInput) (*UnlockTaskOutput, error) {
	eng := uc.days.Engine()
	var out UnlockTaskOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		if !eng.Pacing().ShouldUnlockNewTask(d.State, d.Today) {
			return fmt.Errorf("%w: next unlock on %s", domain.ErrUnlockNotDue, eng.Pacing().NextUnlockDate(d.State, d.Today))
		}
		var (
			task *domain.TodayTask
			err  error
		)
		if in.GoalRef == "" {
			task, err = eng.UnlockRandom(d.State, d.Today)
		} else {
			var goal *domain.Goal
			goal, err = shared.ResolveGoal(d.State, in.GoalRef)
			if err == nil {
				task, err = eng.AddTaskFromGoal(d.State, goal.ID, d.Today)
			}
		}
		if err != nil {
			return err
		}
		out.Task = *task
		out.NextUnlock = eng.Pacing().NextUnlockDate(d.State, d.Today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("unlock", fmt.Sprintf("unlocked %q", out.Task.Label))
	return &out, nil
}

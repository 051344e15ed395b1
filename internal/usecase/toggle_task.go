package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ToggleTaskInput contains the parameters for toggling a today task.
type ToggleTaskInput struct {
	Ref string // Task id or list position (required)
}

// ToggleTaskOutput contains the toggled task and the day's progress.
type ToggleTaskOutput struct {
	Task          domain.TodayTask
	Summary       domain.DaySummary
	Streak        int
	SideQuestOpen bool
}

// ToggleTask is the use case for checking or unchecking a today task.
type ToggleTask struct {
	days *shared.DayStore
}

// NewToggleTask creates a new ToggleTask use case.
func NewToggleTask(days *shared.DayStore) *ToggleTask {
	return &ToggleTask{days: days}
}

// Execute flips the task's completion.
func (uc *ToggleTask) Execute(_ context.Context, in ToggleTaskInput) (*ToggleTaskOutput, error) {
	var out ToggleTaskOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		task, err := shared.ResolveTask(d.State, in.Ref, d.Today)
		if err != nil {
			return err
		}
		id := task.ID
		if _, err := engine.ToggleTask(d.State, id, d.Today); err != nil {
			return err
		}
		out.Task = *d.State.Task(id)
		out.Summary = d.State.DaySummary[d.Today]
		out.Streak = engine.CurrentStreak(d.State, d.Today)
		out.SideQuestOpen = uc.days.Engine().SideQuestsUnlocked(d.State, d.Today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

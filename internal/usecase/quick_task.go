package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// AddQuickTaskInput contains the parameters for adding a quick task.
type AddQuickTaskInput struct {
	Title  string // required
	Bucket string // today (default) or tomorrow
}

// QuickTaskOutput contains the affected quick task.
type QuickTaskOutput struct {
	Task domain.QuickTask
}

// AddQuickTask is the use case for adding a one-off task.
type AddQuickTask struct {
	days *shared.DayStore
}

// NewAddQuickTask creates a new AddQuickTask use case.
func NewAddQuickTask(days *shared.DayStore) *AddQuickTask {
	return &AddQuickTask{days: days}
}

// Execute adds the quick task.
func (uc *AddQuickTask) Execute(_ context.Context, in AddQuickTaskInput) (*QuickTaskOutput, error) {
	var out QuickTaskOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		q, err := uc.days.Engine().AddQuickTask(d.State, in.Title, in.Bucket, d.Today)
		if err != nil {
			return err
		}
		out.Task = *q
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// QuickTaskRefInput identifies a quick task by id or list position.
type QuickTaskRefInput struct {
	Ref string
}

// ToggleQuickTask is the use case for checking or unchecking a quick task.
type ToggleQuickTask struct {
	days *shared.DayStore
}

// NewToggleQuickTask creates a new ToggleQuickTask use case.
func NewToggleQuickTask(days *shared.DayStore) *ToggleQuickTask {
	return &ToggleQuickTask{days: days}
}

// Execute flips the quick task's completion.
func (uc *ToggleQuickTask) Execute(_ context.Context, in QuickTaskRefInput) (*QuickTaskOutput, error) {
	var out QuickTaskOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		q, err := shared.ResolveQuickTask(d.State, in.Ref)
		if err != nil {
			return err
		}
		if _, err := engine.ToggleQuickTask(d.State, q.ID); err != nil {
			return err
		}
		out.Task = d.State.QuickTasks[q.ID]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteQuickTask is the use case for removing a quick task.
type DeleteQuickTask struct {
	days *shared.DayStore
}

// NewDeleteQuickTask creates a new DeleteQuickTask use case.
func NewDeleteQuickTask(days *shared.DayStore) *DeleteQuickTask {
	return &DeleteQuickTask{days: days}
}

// Execute deletes the quick task.
func (uc *DeleteQuickTask) Execute(_ context.Context, in QuickTaskRefInput) (*QuickTaskOutput, error) {
	var out QuickTaskOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		q, err := shared.ResolveQuickTask(d.State, in.Ref)
		if err != nil {
			return err
		}
		out.Task = *q
		return engine.DeleteQuickTask(d.State, q.ID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

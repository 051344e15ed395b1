package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ImportGoalsInput contains the parameters for importing goals from YAML.
type ImportGoalsInput struct {
	Content string // goals file content
	DryRun  bool   // parse and validate only
}

// ImportGoalsOutput contains the result of importing goals.
type ImportGoalsOutput struct {
	Goals        []domain.Goal
	PlansSkipped int // plans not stored because weekly plans are still locked
}

// ImportGoals is the use case for creating goals from a YAML file.
type ImportGoals struct {
	days   *shared.DayStore
	logger domain.Logger
}

// NewImportGoals creates a new ImportGoals use case.
func NewImportGoals(days *shared.DayStore, logger domain.Logger) *ImportGoals {
	return &ImportGoals{days: days, logger: logger}
}

// Execute parses the file and adds every goal. The file is validated as a
// whole before anything is stored.
func (uc *ImportGoals) Execute(_ context.Context, in ImportGoalsInput) (*ImportGoalsOutput, error) {
	drafts, err := domain.ParseGoalDrafts(in.Content)
	if err != nil {
		return nil, err
	}

	out := &ImportGoalsOutput{}
	if in.DryRun {
		for _, d := range drafts {
			out.Goals = append(out.Goals, domain.Goal{Title: d.Title, Time: d.Time})
		}
		return out, nil
	}

	eng := uc.days.Engine()
	_, err = uc.days.Update(func(d *shared.Day) error {
		for _, draft := range drafts {
			goal, err := eng.AddGoal(d.State, draft.Title, draft.Time, d.Today)
			if err != nil {
				return err
			}
			out.Goals = append(out.Goals, *goal)
			if !draft.Plan.IsActive() {
				continue
			}
			err = eng.SetWeeklyPlan(d.State, goal.ID, draft.Plan, d.Today)
			switch {
			case errors.Is(err, domain.ErrFeatureLocked):
				out.PlansSkipped++
			case err != nil:
				return fmt.Errorf("plan for %s: %w", goal.Title, err)
			}
		}
		eng.EnsureTodayTasks(d.State, d.Today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("goal", fmt.Sprintf("imported %d goals", len(out.Goals)))
	return out, nil
}

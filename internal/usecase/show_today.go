// Package usecase contains application use cases.
package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ShowTodayInput contains the parameters for showing today's checklist.
type ShowTodayInput struct{}

// ShowTodayOutput contains the derived today view.
type ShowTodayOutput struct {
	View    engine.TodayView
	Ensured engine.EnsureResult
}

// ShowToday is the use case for displaying today's checklist.
type ShowToday struct {
	days *shared.DayStore
}

// NewShowToday creates a new ShowToday use case.
func NewShowToday(days *shared.DayStore) *ShowToday {
	return &ShowToday{days: days}
}

// Execute loads the day, applies the rollover and derives the view.
func (uc *ShowToday) Execute(_ context.Context, _ ShowTodayInput) (*ShowTodayOutput, error) {
	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	return &ShowTodayOutput{
		View:    uc.days.Engine().BuildTodayView(day.State, day.Today),
		Ensured: day.Ensured,
	}, nil
}

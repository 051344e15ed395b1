package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// SimulateDayInput contains the parameters for shifting the effective date.
type SimulateDayInput struct {
	Days  int  // days added to the current offset
	Reset bool // clear the offset instead
}

// SimulateDayOutput contains the new effective date.
type SimulateDayOutput struct {
	Today  string
	Offset int
}

// SimulateDay is the use case for pretending days have passed.
type SimulateDay struct {
	days  *shared.DayStore
	repo  domain.StateRepository
	clock domain.Clock
}

// NewSimulateDay creates a new SimulateDay use case.
func NewSimulateDay(days *shared.DayStore, repo domain.StateRepository, clock domain.Clock) *SimulateDay {
	return &SimulateDay{days: days, repo: repo, clock: clock}
}

// Execute stores the new offset and rolls the day over to the new date.
func (uc *SimulateDay) Execute(_ context.Context, in SimulateDayInput) (*SimulateDayOutput, error) {
	st, err := uc.repo.Load()
	if err != nil {
		return nil, err
	}
	if in.Reset {
		st.Settings.DayOffset = 0
	} else {
		st.Settings.DayOffset += in.Days
	}
	if err := uc.days.Replace(st); err != nil {
		return nil, err
	}

	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	return &SimulateDayOutput{Today: day.Today, Offset: day.State.Settings.DayOffset}, nil
}

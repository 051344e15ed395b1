package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ResetStateInput contains the parameters for resetting all data.
type ResetStateInput struct{}

// ResetStateOutput is empty; reset has no result beyond success.
type ResetStateOutput struct{}

// ResetState is the use case for replacing the state with a fresh one.
type ResetState struct {
	days   *shared.DayStore
	logger domain.Logger
}

// NewResetState creates a new ResetState use case.
func NewResetState(days *shared.DayStore, logger domain.Logger) *ResetState {
	return &ResetState{days: days, logger: logger}
}

// Execute replaces the stored state with a new default snapshot.
func (uc *ResetState) Execute(_ context.Context, _ ResetStateInput) (*ResetStateOutput, error) {
	if err := uc.days.Replace(domain.NewState()); err != nil {
		return nil, err
	}
	uc.logger.Warn("state", "all data reset")
	return &ResetStateOutput{}, nil
}

package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ShowStatsInput contains the parameters for showing statistics.
type ShowStatsInput struct {
	Anchor string // ISO date, empty = today
}

// ShowStatsOutput contains the statistics panel.
type ShowStatsOutput struct {
	Anchor        string
	Stats         engine.Stats
	OnboardingDay int
}

// ShowStats is the use case for displaying completion statistics.
type ShowStats struct {
	days *shared.DayStore
}

// NewShowStats creates a new ShowStats use case.
func NewShowStats(days *shared.DayStore) *ShowStats {
	return &ShowStats{days: days}
}

// Execute derives the statistics for the anchor date.
func (uc *ShowStats) Execute(_ context.Context, in ShowStatsInput) (*ShowStatsOutput, error) {
	anchor := in.Anchor
	if anchor != "" && !domain.IsISODate(anchor) {
		return nil, domain.ErrInvalidDate
	}
	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	if anchor == "" {
		anchor = day.Today
	}
	return &ShowStatsOutput{
		Anchor:        anchor,
		Stats:         engine.ComputeStats(day.State, anchor),
		OnboardingDay: engine.OnboardingDay(day.State, anchor),
	}, nil
}

package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// LogWeightInput contains the parameters for recording a weight.
type LogWeightInput struct {
	Date  string  // ISO date, empty = today
	Unit  string  // kg or lb, empty = configured unit
	Value float64 // required
}

// WeightOutput contains the weight panel after the operation.
type WeightOutput struct {
	Unit  string
	Stats engine.WeightStats // kilograms
	KG    float64            // recorded value, when one was recorded
}

// LogWeight is the use case for recording a weight.
type LogWeight struct {
	days *shared.DayStore
}

// NewLogWeight creates a new LogWeight use case.
func NewLogWeight(days *shared.DayStore) *LogWeight {
	return &LogWeight{days: days}
}

// Execute validates and stores the entry.
func (uc *LogWeight) Execute(_ context.Context, in LogWeightInput) (*WeightOutput, error) {
	var out WeightOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		date := in.Date
		if date == "" {
			date = d.Today
		}
		kg, err := engine.LogWeight(d.State, date, in.Value, in.Unit)
		if err != nil {
			return err
		}
		out = weightOutput(d)
		out.KG = kg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func weightOutput(d *shared.Day) WeightOutput {
	return WeightOutput{
		Unit:  d.State.Settings.WeightUnit,
		Stats: engine.ComputeWeightStats(d.State, d.Today),
	}
}

// WeightSettingsInput contains weight preferences. Nil fields are unchanged.
type WeightSettingsInput struct {
	Unit   *string  // kg or lb
	Target *float64 // in Unit (or the stored unit); 0 clears it
}

// WeightSettings is the use case for changing the weight unit and target.
type WeightSettings struct {
	days *shared.DayStore
}

// NewWeightSettings creates a new WeightSettings use case.
func NewWeightSettings(days *shared.DayStore) *WeightSettings {
	return &WeightSettings{days: days}
}

// Execute stores the preferences.
func (uc *WeightSettings) Execute(_ context.Context, in WeightSettingsInput) (*WeightOutput, error) {
	var out WeightOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		settings := &d.State.Settings
		if in.Unit != nil {
			if *in.Unit != domain.UnitKg && *in.Unit != domain.UnitLb {
				return fmt.Errorf("%w: unknown unit %q", domain.ErrInvalidWeight, *in.Unit)
			}
			settings.WeightUnit = *in.Unit
		}
		if in.Target != nil {
			if err := engine.SetWeightTarget(d.State, *in.Target, settings.WeightUnit); err != nil {
				return err
			}
		}
		out = weightOutput(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ShowWeight is the use case for displaying the weight panel.
type ShowWeight struct {
	days *shared.DayStore
}

// NewShowWeight creates a new ShowWeight use case.
func NewShowWeight(days *shared.DayStore) *ShowWeight {
	return &ShowWeight{days: days}
}

// Execute derives the weight statistics.
func (uc *ShowWeight) Execute(_ context.Context, _ struct{}) (*WeightOutput, error) {
	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	out := weightOutput(day)
	return &out, nil
}

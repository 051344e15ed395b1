package engine

import (
	"fmt"
	"math"
	"slices"

	"github.com/runoshun/steps/internal/domain"
)

// Weight limits, in kilograms.
const (
	MinWeightKg = 20.0
	MaxWeightKg = 400.0
	lbPerKg     = 2.20462262
	// weightTrendKg is the change below which the trend is stable.
	weightTrendKg = 0.2
)

// ToKg converts value in unit to kilograms.
func ToKg(value float64, unit string) float64 {
	if unit == domain.UnitLb {
		return value / lbPerKg
	}
	return value
}

// FromKg converts kilograms to unit.
func FromKg(kg float64, unit string) float64 {
	if unit == domain.UnitLb {
		return kg * lbPerKg
	}
	return kg
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// LogWeight records a weight for date. unit "" means the configured unit.
func LogWeight(st *domain.State, date string, value float64, unit string) (float64, error) {
	if !domain.IsISODate(date) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	if unit == "" {
		unit = st.Settings.WeightUnit
	}
	if unit != domain.UnitKg && unit != domain.UnitLb {
		return 0, fmt.Errorf("%w: unknown unit %q", domain.ErrInvalidWeight, unit)
	}
	kg := round1(ToKg(value, unit))
	if math.IsNaN(kg) || kg < MinWeightKg || kg > MaxWeightKg {
		return 0, fmt.Errorf("%w: %.1f kg (allowed %.0f-%.0f)", domain.ErrInvalidWeight, kg, MinWeightKg, MaxWeightKg)
	}
	st.WeightEntries[date] = kg
	return kg, nil
}

// SetWeightTarget stores the target weight. A zero value clears it.
func SetWeightTarget(st *domain.State, value float64, unit string) error {
	if value == 0 {
		st.Settings.TargetWeight = 0
		return nil
	}
	if unit == "" {
		unit = st.Settings.WeightUnit
	}
	kg := round1(ToKg(value, unit))
	if kg < MinWeightKg || kg > MaxWeightKg {
		return fmt.Errorf("%w: %.1f kg", domain.ErrInvalidWeight, kg)
	}
	st.Settings.TargetWeight = kg
	return nil
}

// WeightStats summarizes the weight log. All values are in kilograms.
type WeightStats struct {
	LatestDate string
	Trend      string
	Latest     float64
	Delta7     float64 // latest minus the last entry at least 7 days earlier
	Average7   float64 // mean of the last 7 entries
	Target     float64
	Progress   int // percent of the way from the first entry to Target
	Entries    int
	HasDelta   bool
	HasTarget  bool
}

// ComputeWeightStats derives WeightStats from the log. Entries after asOf are ignored.
func ComputeWeightStats(st *domain.State, asOf string) WeightStats {
	var dates []string
	for d := range st.WeightEntries {
		if domain.IsISODate(d) && d <= asOf {
			dates = append(dates, d)
		}
	}
	slices.Sort(dates)

	ws := WeightStats{Trend: TrendStable, Entries: len(dates)}
	if len(dates) == 0 {
		return ws
	}
	ws.LatestDate = dates[len(dates)-1]
	ws.Latest = st.WeightEntries[ws.LatestDate]

	cutoff := domain.AddDays(ws.LatestDate, -7)
	for i := len(dates) - 1; i >= 0; i-- {
		if dates[i] <= cutoff {
			ws.Delta7 = round1(ws.Latest - st.WeightEntries[dates[i]])
			ws.HasDelta = true
			break
		}
	}
	if ws.HasDelta {
		switch {
		case ws.Delta7 <= -weightTrendKg:
			ws.Trend = TrendDown
		case ws.Delta7 >= weightTrendKg:
			ws.Trend = TrendUp
		}
	}

	recent := dates[max(0, len(dates)-7):]
	var sum float64
	for _, d := range recent {
		sum += st.WeightEntries[d]
	}
	ws.Average7 = round1(sum / float64(len(recent)))

	if target := st.Settings.TargetWeight; target > 0 {
		ws.HasTarget = true
		ws.Target = target
		start := st.WeightEntries[dates[0]]
		switch {
		case start == target:
			if ws.Latest == target {
				ws.Progress = 100
			}
		default:
			p := (start - ws.Latest) / (start - target) * 100
			ws.Progress = min(max(int(math.Round(p)), 0), 100)
		}
	}
	return ws
}

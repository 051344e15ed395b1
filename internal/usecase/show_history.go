package usecase

import (
	"context"
	"slices"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// ShowHistoryInput contains the parameters for showing day history.
type ShowHistoryInput struct {
	Date  string // ISO date; empty lists the most recent days
	Limit int    // number of recent days, 0 = 14
}

// HistoryDay is the recorded detail of one past day.
type HistoryDay struct {
	Date       string
	Entries    []domain.HistoryEntry
	Summary    domain.DaySummary
	HasSummary bool
	Completed  bool
}

// ShowHistoryOutput contains past days, newest first.
type ShowHistoryOutput struct {
	Days []HistoryDay
}

// ShowHistory is the use case for displaying captured day history.
type ShowHistory struct {
	days *shared.DayStore
}

// NewShowHistory creates a new ShowHistory use case.
func NewShowHistory(days *shared.DayStore) *ShowHistory {
	return &ShowHistory{days: days}
}

const defaultHistoryLimit = 14

// Execute returns the history of one date, or of the most recent dates.
func (uc *ShowHistory) Execute(_ context.Context, in ShowHistoryInput) (*ShowHistoryOutput, error) {
	if in.Date != "" && !domain.IsISODate(in.Date) {
		return nil, domain.ErrInvalidDate
	}
	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	st := day.State

	var dates []string
	if in.Date != "" {
		dates = []string{in.Date}
	} else {
		seen := make(map[string]bool)
		for d := range st.DayTaskHistory {
			seen[d] = true
		}
		for d := range st.DaySummary {
			if d < day.Today {
				seen[d] = true
			}
		}
		for d := range seen {
			dates = append(dates, d)
		}
		slices.Sort(dates)
		slices.Reverse(dates)
		limit := in.Limit
		if limit <= 0 {
			limit = defaultHistoryLimit
		}
		if len(dates) > limit {
			dates = dates[:limit]
		}
	}

	out := &ShowHistoryOutput{}
	for _, d := range dates {
		s, ok := st.DaySummary[d]
		out.Days = append(out.Days, HistoryDay{
			Date:       d,
			Entries:    st.DayTaskHistory[d],
			Summary:    s,
			HasSummary: ok,
			Completed:  st.CompletedDays[d],
		})
	}
	return out, nil
}

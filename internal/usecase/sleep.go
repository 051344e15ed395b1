package usecase

import (
	"context"

	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// LogSleepInput contains the parameters for recording a night.
type LogSleepInput struct {
	Date    string // ISO date of the wake-up day, empty = today
	Bed     string // HH:MM
	Wake    string // HH:MM
	Quality int    // 1-5
}

// SleepOutput contains the sleep panel after the operation.
type SleepOutput struct {
	Stats   engine.SleepStats
	Minutes int // duration of the recorded night
	Score   int // score of the recorded night
}

// LogSleep is the use case for recording a night of sleep.
type LogSleep struct {
	days *shared.DayStore
}

// NewLogSleep creates a new LogSleep use case.
func NewLogSleep(days *shared.DayStore) *LogSleep {
	return &LogSleep{days: days}
}

// Execute validates and stores the entry.
func (uc *LogSleep) Execute(_ context.Context, in LogSleepInput) (*SleepOutput, error) {
	var out SleepOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		date := in.Date
		if date == "" {
			date = d.Today
		}
		entry, err := engine.LogSleep(d.State, date, in.Bed, in.Wake, in.Quality)
		if err != nil {
			return err
		}
		out.Minutes, _ = engine.SleepDuration(entry.Bed, entry.Wake)
		out.Score = engine.SleepScore(out.Minutes, entry.Quality)
		out.Stats = engine.ComputeSleepStats(d.State, d.Today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ShowSleep is the use case for displaying the sleep panel.
type ShowSleep struct {
	days *shared.DayStore
}

// NewShowSleep creates a new ShowSleep use case.
func NewShowSleep(days *shared.DayStore) *ShowSleep {
	return &ShowSleep{days: days}
}

// Execute derives the sleep statistics.
func (uc *ShowSleep) Execute(_ context.Context, _ struct{}) (*SleepOutput, error) {
	day, err := uc.days.Load()
	if err != nil {
		return nil, err
	}
	return &SleepOutput{Stats: engine.ComputeSleepStats(day.State, day.Today)}, nil
}


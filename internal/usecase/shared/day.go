// Package shared provides shared utilities for use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
)

// Day is a loaded snapshot brought up to date for its effective date.
type Day struct {
	State   *domain.State
	Today   string
	Ensured engine.EnsureResult
}

// DayStore loads and saves days. Every use case goes through it so the
// date offset and the daily rollover are applied the same way.
type DayStore struct {
	repo   domain.StateRepository
	clock  domain.Clock
	engine *engine.Engine
}

// NewDayStore creates a DayStore.
func NewDayStore(repo domain.StateRepository, clock domain.Clock, eng *engine.Engine) *DayStore {
	return &DayStore{repo: repo, clock: clock, engine: eng}
}

// Engine returns the engine days are derived with.
func (s *DayStore) Engine() *engine.Engine {
	return s.engine
}

// Load reads the state and runs the daily rollover. A rollover that changed
// anything is saved right away.
func (s *DayStore) Load() (*Day, error) {
	st, err := s.repo.Load()
	if err != nil {
		return nil, err
	}
	today := domain.Today(s.clock, st.Settings.DayOffset)
	day := &Day{State: st, Today: today, Ensured: s.engine.EnsureTodayTasks(st, today)}
	if day.Ensured.Changed() {
		if err := s.repo.Save(st); err != nil {
			return nil, fmt.Errorf("save rollover: %w", err)
		}
	}
	return day, nil
}

// Update loads the day, applies fn and saves. When fn fails nothing from
// fn is persisted.
func (s *DayStore) Update(fn func(d *Day) error) (*Day, error) {
	day, err := s.Load()
	if err != nil {
		return nil, err
	}
	if err := fn(day); err != nil {
		return nil, err
	}
	if err := s.repo.Save(day.State); err != nil {
		return nil, fmt.Errorf("save state: %w", err)
	}
	return day, nil
}

// Replace persists st wholesale, used by reset and import.
func (s *DayStore) Replace(st *domain.State) error {
	if err := s.repo.Save(st); err != nil {
		return fmt.Errorf("save state: %w", err)
	}
	return nil
}

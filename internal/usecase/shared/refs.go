package shared

import (
	"fmt"
	"strconv"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
)

// position parses a 1-based list position.
func position(ref string, n int) (int, bool) {
	i, err := strconv.Atoi(ref)
	if err != nil || i < 1 || i > n {
		return 0, false
	}
	return i - 1, true
}

// ResolveGoal finds a goal by id, or by its 1-based position in the
// sorted goal list.
func ResolveGoal(st *domain.State, ref string) (*domain.Goal, error) {
	if g := st.Goal(ref); g != nil {
		return g, nil
	}
	sorted := engine.SortedGoals(st)
	if i, ok := position(ref, len(sorted)); ok {
		return st.Goal(sorted[i].ID), nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrGoalNotFound, ref)
}

// ResolveTask finds a task dated today by id, or by its 1-based position in
// the sorted today list.
func ResolveTask(st *domain.State, ref, today string) (*domain.TodayTask, error) {
	if t := st.Task(ref); t != nil {
		return t, nil
	}
	var todays []domain.TodayTask
	for _, t := range engine.SortTasks(st.TodayTasks) {
		if t.Date == today {
			todays = append(todays, t)
		}
	}
	if i, ok := position(ref, len(todays)); ok {
		return st.Task(todays[i].ID), nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, ref)
}

// ResolveQuickTask finds a quick task by id, or by its 1-based position in
// today's bucket followed by tomorrow's.
func ResolveQuickTask(st *domain.State, ref string) (*domain.QuickTask, error) {
	if q, ok := st.QuickTasks[ref]; ok {
		return &q, nil
	}
	all := append(engine.QuickTasksIn(st, domain.BucketToday), engine.QuickTasksIn(st, domain.BucketTomorrow)...)
	if i, ok := position(ref, len(all)); ok {
		return &all[i], nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrQuickTaskNotFound, ref)
}

package engine

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/runoshun/steps/internal/domain"
)

// RollQuickTasks promotes tomorrow's quick tasks once per date change and
// discards the previous day's. It reports whether a roll happened.
func RollQuickTasks(st *domain.State, today string) bool {
	if st.QuickTasksDate == today {
		return false
	}
	first := st.QuickTasksDate == ""
	st.QuickTasksDate = today
	if first {
		return false
	}
	for id, q := range st.QuickTasks {
		if q.Bucket == domain.BucketToday {
			delete(st.QuickTasks, id)
			continue
		}
		q.Bucket = domain.BucketToday
		st.QuickTasks[id] = q
	}
	return true
}

// AddQuickTask adds a quick task to bucket.
func (e *Engine) AddQuickTask(st *domain.State, title, bucket, today string) (*domain.QuickTask, error) {
	if !e.pacing.Access(st, today).QuickTasks {
		return nil, fmt.Errorf("%w: quick tasks", domain.ErrFeatureLocked)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if bucket == "" {
		bucket = domain.BucketToday
	}
	if bucket != domain.BucketToday && bucket != domain.BucketTomorrow {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidBucket, bucket)
	}

	q := domain.QuickTask{
		ID:        e.ids.NewID(),
		Title:     title,
		Bucket:    bucket,
		CreatedAt: today,
	}
	st.QuickTasks[q.ID] = q
	return &q, nil
}

// ToggleQuickTask flips a quick task and returns the new done flag.
func ToggleQuickTask(st *domain.State, id string) (bool, error) {
	q, ok := st.QuickTasks[id]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrQuickTaskNotFound, id)
	}
	q.Done = !q.Done
	st.QuickTasks[id] = q
	return q.Done, nil
}

// DeleteQuickTask removes a quick task.
func DeleteQuickTask(st *domain.State, id string) error {
	if _, ok := st.QuickTasks[id]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrQuickTaskNotFound, id)
	}
	delete(st.QuickTasks, id)
	return nil
}

// QuickTasksIn returns the quick tasks of bucket ordered by creation date and title.
func QuickTasksIn(st *domain.State, bucket string) []domain.QuickTask {
	var out []domain.QuickTask
	for _, q := range st.QuickTasks {
		if q.Bucket == bucket {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b domain.QuickTask) int {
		return cmp.Or(
			cmp.Compare(a.CreatedAt, b.CreatedAt),
			cmp.Compare(a.Title, b.Title),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return out
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func TestAddQuickTask_Gated(t *testing.T) {
	e, _ := newTestEngine(false)
	st := stateWithGoals("Run")

	_, err := e.AddQuickTask(st, "Call mom", domain.BucketToday, domain.AddDays(monday, 5))
	require.ErrorIs(t, err, domain.ErrFeatureLocked)

	day7 := domain.AddDays(monday, 6)
	q, err := e.AddQuickTask(st, "Call mom", "", day7)
	require.NoError(t, err)
	assert.Equal(t, domain.BucketToday, q.Bucket)
	assert.Equal(t, day7, q.CreatedAt)

	_, err = e.AddQuickTask(st, "x", "later", day7)
	require.ErrorIs(t, err, domain.ErrInvalidBucket)
	_, err = e.AddQuickTask(st, " ", domain.BucketToday, day7)
	require.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Len(t, st.QuickTasks, 1)
}

func TestRollQuickTasks_OncePerDay(t *testing.T) {
	st := domain.NewState()
	st.QuickTasksDate = monday
	st.QuickTasks = map[string]domain.QuickTask{
		"a": {ID: "a", Title: "old", Bucket: domain.BucketToday},
		"b": {ID: "b", Title: "next", Bucket: domain.BucketTomorrow},
	}

	assert.False(t, RollQuickTasks(st, monday))
	assert.Len(t, st.QuickTasks, 2)

	assert.True(t, RollQuickTasks(st, tuesday))
	assert.Equal(t, map[string]domain.QuickTask{
		"b": {ID: "b", Title: "next", Bucket: domain.BucketToday},
	}, st.QuickTasks)

	assert.False(t, RollQuickTasks(st, tuesday), "second call on the same day is a no-op")
	assert.Len(t, st.QuickTasks, 1)
}

func TestRollQuickTasks_FirstRunKeepsTasks(t *testing.T) {
	st := domain.NewState()
	st.QuickTasks["a"] = domain.QuickTask{ID: "a", Bucket: domain.BucketToday}

	assert.False(t, RollQuickTasks(st, monday))
	assert.Equal(t, monday, st.QuickTasksDate)
	assert.Len(t, st.QuickTasks, 1)
}

func TestToggleAndDeleteQuickTask(t *testing.T) {
	st := domain.NewState()
	st.QuickTasks["a"] = domain.QuickTask{ID: "a", Bucket: domain.BucketToday}

	done, err := ToggleQuickTask(st, "a")
	require.NoError(t, err)
	assert.True(t, done)
	_, err = ToggleQuickTask(st, "b")
	require.ErrorIs(t, err, domain.ErrQuickTaskNotFound)

	require.NoError(t, DeleteQuickTask(st, "a"))
	require.ErrorIs(t, DeleteQuickTask(st, "a"), domain.ErrQuickTaskNotFound)
}

func TestQuickTasksIn_Sorted(t *testing.T) {
	st := domain.NewState()
	st.QuickTasks = map[string]domain.QuickTask{
		"1": {ID: "1", Title: "b", Bucket: domain.BucketToday, CreatedAt: tuesday},
		"2": {ID: "2", Title: "a", Bucket: domain.BucketToday, CreatedAt: tuesday},
		"3": {ID: "3", Title: "z", Bucket: domain.BucketToday, CreatedAt: monday},
		"4": {ID: "4", Title: "y", Bucket: domain.BucketTomorrow, CreatedAt: monday},
	}
	got := QuickTasksIn(st, domain.BucketToday)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"3", "2", "1"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/steps/internal/domain"
)

func TestShowToday_RollsOverAndSaves(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(1, "2024-03-10", "Walk")

	out, err := NewShowToday(f.days).Execute(context.Background(), ShowTodayInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Ensured.RolledOver)
	assert.Equal(t, testToday, out.View.Date)
	require.Len(t, out.View.Tasks, 1)
	assert.Equal(t, testToday, out.View.Tasks[0].Date)
	assert.Equal(t, 1, f.repo.SaveCount)

	// A second look on the same day changes nothing.
	_, err = NewShowToday(f.days).Execute(context.Background(), ShowTodayInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.SaveCount)
}

func TestUnlockTask_NotDue(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(2, "2024-03-09", "Walk", "Read")

	_, err := NewUnlockTask(f.days, f.log).Execute(context.Background(), UnlockTaskInput{})
	assert.ErrorIs(t, err, domain.ErrUnlockNotDue)
	assert.Contains(t, err.Error(), "2024-03-12")
}

func TestUnlockTask_ExplicitGoal(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(3, "2024-03-08", "Walk", "Read")

	out, err := NewUnlockTask(f.days, f.log).Execute(context.Background(), UnlockTaskInput{GoalRef: "g2"})
	require.NoError(t, err)
	assert.Equal(t, "Read", out.Task.Label)
	assert.Equal(t, "2024-03-14", out.NextUnlock)

	st := f.repo.Stored()
	assert.Len(t, st.TodayTasks, 2)
	assert.Equal(t, testToday, st.LastTaskUnlockDate)
	assert.Equal(t, domain.DaySummary{Done: 0, Total: 2}, st.DaySummary[testToday])
}

func TestUnlockTask_Random(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(3, "2024-03-08", "Walk", "Read", "Cook")
	f.rnd.Index = 1

	out, err := NewUnlockTask(f.days, f.log).Execute(context.Background(), UnlockTaskInput{})
	require.NoError(t, err)
	// Candidates are Read and Cook, in pool order.
	assert.Equal(t, "Cook", out.Task.Label)
	assert.Equal(t, 1, f.rnd.Calls)
}

func TestUnlockTask_NoCandidates(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(3, "2024-03-08", "Walk")

	_, err := NewUnlockTask(f.days, f.log).Execute(context.Background(), UnlockTaskInput{})
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}

func TestToggleTask(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(0, testToday, "Walk")
	uc := NewToggleTask(f.days)

	out, err := uc.Execute(context.Background(), ToggleTaskInput{Ref: "1"})
	require.NoError(t, err)
	assert.True(t, out.Task.Done)
	assert.Equal(t, domain.DaySummary{Done: 1, Total: 1}, out.Summary)
	assert.Equal(t, 1, out.Streak)
	assert.False(t, out.SideQuestOpen)

	out, err = uc.Execute(context.Background(), ToggleTaskInput{Ref: "task-1"})
	require.NoError(t, err)
	assert.False(t, out.Task.Done)

	_, err = uc.Execute(context.Background(), ToggleTaskInput{Ref: "task-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repo.Stored().TotalDone)

	_, err = uc.Execute(context.Background(), ToggleTaskInput{Ref: "7"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestQuickTasks(t *testing.T) {
	t.Run("locked during early onboarding", func(t *testing.T) {
		f := newFixture(t)
		f.seedWithTask(2, testToday, "Walk")

		_, err := NewAddQuickTask(f.days).Execute(context.Background(), AddQuickTaskInput{Title: "Call mum"})
		assert.ErrorIs(t, err, domain.ErrFeatureLocked)
	})

	t.Run("add toggle delete", func(t *testing.T) {
		f := newFixture(t)
		f.seedWithTask(6, testToday, "Walk")

		added, err := NewAddQuickTask(f.days).Execute(context.Background(), AddQuickTaskInput{Title: "Call mum"})
		require.NoError(t, err)
		assert.Equal(t, domain.BucketToday, added.Task.Bucket)

		_, err = NewAddQuickTask(f.days).Execute(context.Background(), AddQuickTaskInput{Title: "Buy milk", Bucket: domain.BucketTomorrow})
		require.NoError(t, err)

		_, err = NewAddQuickTask(f.days).Execute(context.Background(), AddQuickTaskInput{Title: "x", Bucket: "someday"})
		assert.ErrorIs(t, err, domain.ErrInvalidBucket)

		toggled, err := NewToggleQuickTask(f.days).Execute(context.Background(), QuickTaskRefInput{Ref: "1"})
		require.NoError(t, err)
		assert.Equal(t, "Call mum", toggled.Task.Title)
		assert.True(t, toggled.Task.Done)

		deleted, err := NewDeleteQuickTask(f.days).Execute(context.Background(), QuickTaskRefInput{Ref: "2"})
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", deleted.Task.Title)
		assert.Len(t, f.repo.Stored().QuickTasks, 1)
	})
}

func TestSideQuests(t *testing.T) {
	f := newFixture(t)
	f.seedWithTask(10, testToday, "Walk", "Read")
	ctx := context.Background()

	_, err := NewAddSideQuest(f.days).Execute(ctx, AddSideQuestInput{})
	assert.ErrorIs(t, err, domain.ErrSideQuestLocked)

	toggled, err := NewToggleTask(f.days).Execute(ctx, ToggleTaskInput{Ref: "1"})
	require.NoError(t, err)
	assert.True(t, toggled.SideQuestOpen)

	added, err := NewAddSideQuest(f.days).Execute(ctx, AddSideQuestInput{})
	require.NoError(t, err)
	assert.Equal(t, "g2", added.Quest.GoalID)
	assert.Equal(t, "Read", added.Quest.Label)

	_, err = NewAddSideQuest(f.days).Execute(ctx, AddSideQuestInput{GoalRef: "g2"})
	assert.ErrorIs(t, err, domain.ErrAlreadySideQuest)

	done, err := NewToggleSideQuest(f.days).Execute(ctx, SideQuestRefInput{Ref: "1"})
	require.NoError(t, err)
	assert.True(t, done.Quest.Done)

	st := f.repo.Stored()
	assert.True(t, st.SideQuestDone[testToday]["g2"])
	assert.Equal(t, domain.DaySummary{Done: 1, Total: 1}, st.DaySummary[testToday])

	_, err = NewRemoveSideQuest(f.days).Execute(ctx, SideQuestRefInput{Ref: "g2"})
	require.NoError(t, err)
	assert.Empty(t, f.repo.Stored().SideQuests)

	_, err = NewRemoveSideQuest(f.days).Execute(ctx, SideQuestRefInput{Ref: "1"})
	assert.ErrorIs(t, err, domain.ErrSideQuestNotFound)
}

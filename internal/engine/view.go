package engine

import (
	"cmp"
	"slices"

	"github.com/runoshun/steps/internal/domain"
)

// TaskView is a today task with its time-of-day badge.
type TaskView struct {
	Badge string
	domain.TodayTask
}

// TodayView is everything shown for one day.
type TodayView struct {
	Date          string
	NextUnlock    string
	Tasks         []TaskView
	QuickToday    []domain.QuickTask
	QuickTomorrow []domain.QuickTask
	SideQuests    []SideQuestView
	Summary       domain.DaySummary
	Access        Access
	Streak        int
	TotalDone     int
	Candidates    int
	HasSummary    bool
	CanUnlock     bool
	SideQuestOpen bool
}

// SortTasks orders tasks by time of day, then label.
func SortTasks(tasks []domain.TodayTask) []domain.TodayTask {
	out := slices.Clone(tasks)
	slices.SortStableFunc(out, func(a, b domain.TodayTask) int {
		return cmp.Or(cmp.Compare(a.Time, b.Time), cmp.Compare(a.Label, b.Label))
	})
	return out
}

// BuildTodayView derives the today view. It does not modify st.
func (e *Engine) BuildTodayView(st *domain.State, today string) TodayView {
	summary, hasSummary := st.DaySummary[today]
	v := TodayView{
		Date:          today,
		Access:        e.pacing.Access(st, today),
		Summary:       summary,
		HasSummary:    hasSummary,
		Streak:        CurrentStreak(st, today),
		TotalDone:     st.TotalDone,
		Candidates:    len(UnlockCandidates(st, today)),
		CanUnlock:     e.pacing.ShouldUnlockNewTask(st, today),
		NextUnlock:    e.pacing.NextUnlockDate(st, today),
		SideQuestOpen: e.SideQuestsUnlocked(st, today),
	}
	for _, t := range SortTasks(st.TodayTasks) {
		if t.Date != today {
			continue
		}
		v.Tasks = append(v.Tasks, TaskView{TodayTask: t, Badge: domain.TimeBucket(t.Time)})
	}
	if v.Access.QuickTasks {
		v.QuickToday = QuickTasksIn(st, domain.BucketToday)
		v.QuickTomorrow = QuickTasksIn(st, domain.BucketTomorrow)
	}
	if v.Access.SideQuests {
		v.SideQuests = SideQuestViews(st, today)
	}
	return v
}

package usecase

import (
	"testing"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/testutil"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// testToday is a Monday.
const testToday = "2024-03-11"

type fixture struct {
	repo  *testutil.MockStateRepository
	clock *testutil.MockClock
	rnd   *testutil.FixedRandom
	days  *shared.DayStore
	log   *testutil.MockLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		repo:  testutil.NewMockStateRepository(),
		clock: testutil.NewMockClock(testToday),
		rnd:   &testutil.FixedRandom{},
		log:   &testutil.MockLogger{},
	}
	eng := engine.New(engine.Pacing{}, f.rnd, &testutil.SeqIDs{Prefix: "t"})
	f.days = shared.NewDayStore(f.repo, f.clock, eng)
	return f
}

// seedGoals stores goals g1..gN created onboardingDaysAgo days before today.
func (f *fixture) seedGoals(onboardingDaysAgo int, titles ...string) *domain.State {
	start := domain.AddDays(testToday, -onboardingDaysAgo)
	st := domain.NewState()
	for i, title := range titles {
		st.Goals = append(st.Goals, domain.Goal{
			ID:        "g" + string(rune('1'+i)),
			Title:     title,
			Time:      "0" + string(rune('7'+i)) + ":00",
			CreatedAt: start,
		})
	}
	st.OnboardingStartDate = start
	f.repo.Seed(st)
	return st
}

// seedWithTask stores goals and a task for g1 dated taskDate, unlocked that day.
func (f *fixture) seedWithTask(onboardingDaysAgo int, taskDate string, titles ...string) {
	st := f.seedGoals(onboardingDaysAgo, titles...)
	st.TodayTasks = []domain.TodayTask{{
		ID: "task-1", GoalID: "g1", Label: st.Goals[0].Title, Time: st.Goals[0].Time, Date: taskDate,
	}}
	st.TasksDate = taskDate
	st.LastTaskUnlockDate = taskDate
	f.repo.Seed(st)
}

package engine

import (
	"fmt"

	"github.com/runoshun/steps/internal/domain"
)

// SideQuestView is a side quest resolved for one day.
type SideQuestView struct {
	GoalID    string
	Label     string
	Time      string
	Done      bool
	IsRestDay bool
}

// SideQuestsUnlocked reports whether side quests may be taken today: the
// feature gate is open and every actionable primary task is done.
func (e *Engine) SideQuestsUnlocked(st *domain.State, today string) bool {
	if !e.pacing.Access(st, today).SideQuests {
		return false
	}
	s, ok := st.DaySummary[today]
	return ok && s.Total > 0 && s.Done >= s.Total
}

// SideQuestCandidates returns goals that may become side quests today.
func SideQuestCandidates(st *domain.State, today string) []domain.Goal {
	var out []domain.Goal
	for _, g := range st.Goals {
		if st.HasTaskForGoal(g.ID, today) || st.IsSideQuest(g.ID) || isRestDay(st, g, today) {
			continue
		}
		out = append(out, g)
	}
	return out
}

// AddSideQuest takes goalID on as a side quest.
func (e *Engine) AddSideQuest(st *domain.State, goalID, today string) (*domain.SideQuest, error) {
	if err := e.checkSideQuestSlot(st, today); err != nil {
		return nil, err
	}
	goal := st.Goal(goalID)
	switch {
	case goal == nil:
		return nil, fmt.Errorf("%w: %s", domain.ErrGoalNotFound, goalID)
	case st.IsSideQuest(goalID):
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadySideQuest, goal.Title)
	case st.HasTaskForGoal(goalID, today):
		return nil, fmt.Errorf("%w: %s", domain.ErrAlreadyUnlocked, goal.Title)
	case isRestDay(st, *goal, today):
		return nil, fmt.Errorf("%w: %s", domain.ErrRestDay, goal.Title)
	}
	return appendSideQuest(st, goalID, today), nil
}

// AddRandomSideQuest takes on a uniformly chosen candidate.
func (e *Engine) AddRandomSideQuest(st *domain.State, today string) (*domain.SideQuest, error) {
	if err := e.checkSideQuestSlot(st, today); err != nil {
		return nil, err
	}
	candidates := SideQuestCandidates(st, today)
	if len(candidates) == 0 {
		return nil, domain.ErrNoCandidates
	}
	return appendSideQuest(st, candidates[e.rnd.Intn(len(candidates))].ID, today), nil
}

func (e *Engine) checkSideQuestSlot(st *domain.State, today string) error {
	if !e.SideQuestsUnlocked(st, today) {
		return domain.ErrSideQuestLocked
	}
	if len(st.SideQuests) >= domain.MaxSideQuests {
		return fmt.Errorf("%w: at most %d", domain.ErrSideQuestLimit, domain.MaxSideQuests)
	}
	return nil
}

func appendSideQuest(st *domain.State, goalID, today string) *domain.SideQuest {
	st.SideQuests = append(st.SideQuests, domain.SideQuest{GoalID: goalID, AddedAt: today})
	return &st.SideQuests[len(st.SideQuests)-1]
}

// RemoveSideQuest drops goalID from the side quests.
func RemoveSideQuest(st *domain.State, goalID string) error {
	for i, q := range st.SideQuests {
		if q.GoalID == goalID {
			st.SideQuests = append(st.SideQuests[:i], st.SideQuests[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrSideQuestNotFound, goalID)
}

// ToggleSideQuest flips today's completion of a side quest.
func ToggleSideQuest(st *domain.State, goalID, today string) (bool, error) {
	if !st.IsSideQuest(goalID) {
		return false, fmt.Errorf("%w: %s", domain.ErrSideQuestNotFound, goalID)
	}
	goal := st.Goal(goalID)
	if goal == nil {
		return false, fmt.Errorf("%w: %s", domain.ErrGoalNotFound, goalID)
	}
	if isRestDay(st, *goal, today) {
		return false, fmt.Errorf("%w: %s", domain.ErrRestDay, goal.Title)
	}

	day := st.SideQuestDone[today]
	if day == nil {
		day = make(map[string]bool)
		st.SideQuestDone[today] = day
	}
	done := !day[goalID]
	if done {
		day[goalID] = true
	} else {
		delete(day, goalID)
		if len(day) == 0 {
			delete(st.SideQuestDone, today)
		}
	}
	return done, nil
}

// SideQuestViews resolves the current side quests for today.
func SideQuestViews(st *domain.State, today string) []SideQuestView {
	weekday := domain.WeekdayKey(today)
	var out []SideQuestView
	for _, q := range st.SideQuests {
		goal := st.Goal(q.GoalID)
		if goal == nil {
			continue
		}
		label, rest := ResolveLabelAndRestDay(*goal, st.WeeklyPlans[goal.ID], weekday)
		out = append(out, SideQuestView{
			GoalID:    goal.ID,
			Label:     label,
			Time:      goal.Time,
			Done:      st.SideQuestDone[today][goal.ID],
			IsRestDay: rest,
		})
	}
	return out
}

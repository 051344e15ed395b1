package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/runoshun/steps/internal/domain"
	"github.com/runoshun/steps/internal/engine"
	"github.com/runoshun/steps/internal/usecase/shared"
)

// AddSideQuestInput contains the parameters for taking on a side quest.
type AddSideQuestInput struct {
	GoalRef string // Goal id or list position; empty picks a random candidate
}

// SideQuestOutput contains the affected side quest resolved for today.
type SideQuestOutput struct {
	Quest engine.SideQuestView
}

// AddSideQuest is the use case for taking on a side quest.
type AddSideQuest struct {
	days *shared.DayStore
}

// NewAddSideQuest creates a new AddSideQuest use case.
func NewAddSideQuest(days *shared.DayStore) *AddSideQuest {
	return &AddSideQuest{days: days}
}

// Execute adds the side quest.
func (uc *AddSideQuest) Execute(_ context.Context, in AddSideQuestInput) (*SideQuestOutput, error) {
	eng := uc.days.Engine()
	var out SideQuestOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		var (
			q   *domain.SideQuest
			err error
		)
		if in.GoalRef == "" {
			q, err = eng.AddRandomSideQuest(d.State, d.Today)
		} else {
			var goal *domain.Goal
			goal, err = shared.ResolveGoal(d.State, in.GoalRef)
			if err == nil {
				q, err = eng.AddSideQuest(d.State, goal.ID, d.Today)
			}
		}
		if err != nil {
			return err
		}
		out.Quest = findSideQuestView(d.State, q.GoalID, d.Today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SideQuestRefInput identifies a side quest by goal id or by its 1-based
// position in the side quest list.
type SideQuestRefInput struct {
	Ref string
}

// resolveSideQuest returns the goal id of the referenced side quest.
func resolveSideQuest(st *domain.State, ref string) (string, error) {
	if st.IsSideQuest(ref) {
		return ref, nil
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 1 && i <= len(st.SideQuests) {
		return st.SideQuests[i-1].GoalID, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrSideQuestNotFound, ref)
}

func findSideQuestView(st *domain.State, goalID, today string) engine.SideQuestView {
	for _, v := range engine.SideQuestViews(st, today) {
		if v.GoalID == goalID {
			return v
		}
	}
	return engine.SideQuestView{GoalID: goalID}
}

// ToggleSideQuest is the use case for checking or unchecking a side quest today.
type ToggleSideQuest struct {
	days *shared.DayStore
}

// NewToggleSideQuest creates a new ToggleSideQuest use case.
func NewToggleSideQuest(days *shared.DayStore) *ToggleSideQuest {
	return &ToggleSideQuest{days: days}
}

// Execute flips today's completion of the side quest.
func (uc *ToggleSideQuest) Execute(_ context.Context, in SideQuestRefInput) (*SideQuestOutput, error) {
	var out SideQuestOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		goalID, err := resolveSideQuest(d.State, in.Ref)
		if err != nil {
			return err
		}
		if _, err := engine.ToggleSideQuest(d.State, goalID, d.Today); err != nil {
			return err
		}
		out.Quest = findSideQuestView(d.State, goalID, d.Today)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveSideQuest is the use case for dropping a side quest.
type RemoveSideQuest struct {
	days *shared.DayStore
}

// NewRemoveSideQuest creates a new RemoveSideQuest use case.
func NewRemoveSideQuest(days *shared.DayStore) *RemoveSideQuest {
	return &RemoveSideQuest{days: days}
}

// Execute removes the side quest.
func (uc *RemoveSideQuest) Execute(_ context.Context, in SideQuestRefInput) (*SideQuestOutput, error) {
	var out SideQuestOutput
	_, err := uc.days.Update(func(d *shared.Day) error {
		goalID, err := resolveSideQuest(d.State, in.Ref)
		if err != nil {
			return err
		}
		out.Quest = findSideQuestView(d.State, goalID, d.Today)
		return engine.RemoveSideQuest(d.State, goalID)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

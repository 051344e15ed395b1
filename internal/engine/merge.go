package engine

import (
	"maps"

	"github.com/runoshun/steps/internal/domain"
)

// Merge combines an imported snapshot into the current one.
//
// Scalars present in incoming replace current's. Entity lists are
// concatenated current first and de-duplicated keeping the first
// occurrence. Maps are merged with incoming winning on collision. Counters
// take the maximum. Neither input is modified.
func Merge(current, incoming *domain.State) *domain.State {
	if current == nil {
		current = domain.NewState()
	}
	if incoming == nil {
		incoming = domain.NewState()
	}

	// Fields not overridden below keep current's value.
	merged := *current
	out := &merged

	out.Goals = mergeGoals(current.Goals, incoming.Goals)
	out.TodayTasks = mergeTasks(current.TodayTasks, incoming.TodayTasks)
	out.SideQuests = mergeSideQuests(current.SideQuests, incoming.SideQuests)

	out.QuickTasks = overlay(current.QuickTasks, incoming.QuickTasks)
	out.SideQuestDone = overlay(current.SideQuestDone, incoming.SideQuestDone)
	out.WeeklyPlans = overlay(current.WeeklyPlans, incoming.WeeklyPlans)
	out.CompletedDays = overlay(current.CompletedDays, incoming.CompletedDays)
	out.DaySummary = overlay(current.DaySummary, incoming.DaySummary)
	out.DayTaskHistory = overlay(current.DayTaskHistory, incoming.DayTaskHistory)
	out.WeightEntries = overlay(current.WeightEntries, incoming.WeightEntries)
	out.SleepEntries = overlay(current.SleepEntries, incoming.SleepEntries)

	out.TasksDate = pick(current.TasksDate, incoming.TasksDate)
	out.QuickTasksDate = pick(current.QuickTasksDate, incoming.QuickTasksDate)
	out.LastActiveDate = pick(current.LastActiveDate, incoming.LastActiveDate)
	out.LastTaskUnlockDate = pick(current.LastTaskUnlockDate, incoming.LastTaskUnlockDate)
	out.OnboardingStartDate = pick(current.OnboardingStartDate, incoming.OnboardingStartDate)

	out.Settings = mergeSettings(current.Settings, incoming.Settings)
	out.Vocabulary = mergeVocabulary(current.Vocabulary, incoming.Vocabulary)

	out.SchemaVersion = max(current.SchemaVersion, incoming.SchemaVersion)
	out.Streak = max(current.Streak, incoming.Streak)
	out.TotalDone = max(current.TotalDone, incoming.TotalDone)

	domain.Normalize(out)
	return out
}

func mergeSettings(cur, in domain.Settings) domain.Settings {
	out := cur
	out.WeightUnit = pick(cur.WeightUnit, in.WeightUnit)
	out.TargetWeight = pick(cur.TargetWeight, in.TargetWeight)
	out.DayOffset = pick(cur.DayOffset, in.DayOffset)
	return out
}

func mergeVocabulary(cur, in domain.VocabularyState) domain.VocabularyState {
	out := cur
	if in.Seed != nil {
		out.Seed = in.Seed
	}
	out.Progress = overlay(cur.Progress, in.Progress)
	out.StudyDays = overlay(cur.StudyDays, in.StudyDays)
	out.Direction = pick(cur.Direction, in.Direction)
	out.ActiveTheme = pick(cur.ActiveTheme, in.ActiveTheme)
	out.LastStudyDate = pick(cur.LastStudyDate, in.LastStudyDate)
	out.Streak = max(cur.Streak, in.Streak)
	return out
}

// pick returns in unless it is the zero value.
func pick[T comparable](cur, in T) T {
	var zero T
	if in != zero {
		return in
	}
	return cur
}

// overlay returns a new map with in's entries written over cur's.
func overlay[K comparable, V any](cur, in map[K]V) map[K]V {
	out := make(map[K]V, len(cur)+len(in))
	maps.Copy(out, cur)
	maps.Copy(out, in)
	return out
}

// dedupe concatenates a and b and keeps the first item per key.
func dedupe[T any](a, b []T, key func(T) string) []T {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]T, 0, len(a)+len(b))
	for _, list := range [][]T{a, b} {
		for _, item := range list {
			k := key(item)
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, item)
		}
	}
	return out
}

func mergeGoals(a, b []domain.Goal) []domain.Goal {
	return dedupe(a, b, func(g domain.Goal) string {
		if g.ID != "" {
			return "id:" + g.ID
		}
		return "goal:" + g.Title + "|" + g.CreatedAt
	})
}

func mergeTasks(a, b []domain.TodayTask) []domain.TodayTask {
	byID := dedupe(a, b, func(t domain.TodayTask) string {
		if t.ID != "" {
			return "id:" + t.ID
		}
		return "task:" + t.GoalID + "|" + t.Date + "|" + t.Label
	})
	// A goal is materialized at most once per day even across snapshots.
	return dedupe(byID, nil, func(t domain.TodayTask) string {
		if t.GoalID == "" {
			return "id:" + t.ID
		}
		return "slot:" + t.GoalID + "|" + t.Date
	})
}

func mergeSideQuests(a, b []domain.SideQuest) []domain.SideQuest {
	return dedupe(a, b, func(q domain.SideQuest) string { return q.GoalID })
}

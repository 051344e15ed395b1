package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MaxSideQuests is the number of side quests that may run at once.
const MaxSideQuests = 3

// NewState returns an empty, fully populated state.
func NewState() *State {
	st := &State{}
	Normalize(st)
	return st
}

// migration upgrades a raw document to version `to`.
type migration struct {
	apply func(doc map[string]any)
	to    int
}

// migrations are applied in order to documents older than their target version.
var migrations = []migration{
	{to: 2, apply: migrateQuickTaskBuckets},
	{to: 3, apply: migrateGoalPlans},
}

// DecodeState parses a stored state document, upgrades it to
// CurrentSchemaVersion and normalizes it.
func DecodeState(raw []byte) (*State, error) {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is not an object", ErrCorruptState)
	}

	version := 1
	if v, ok := doc["schemaVersion"].(float64); ok && v >= 1 {
		version = int(v)
	}
	for _, m := range migrations {
		if version < m.to {
			m.apply(doc)
			version = m.to
		}
	}
	doc["schemaVersion"] = CurrentSchemaVersion

	upgraded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	var st State
	if err := json.Unmarshal(upgraded, &st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	Normalize(&st)
	return &st, nil
}

// migrateQuickTaskBuckets converts {today: [...], tomorrow: [...]} arrays
// into the id-keyed quick task map.
func migrateQuickTaskBuckets(doc map[string]any) {
	old, ok := doc["quickTasks"].(map[string]any)
	if !ok {
		return
	}
	_, hasToday := old[BucketToday].([]any)
	_, hasTomorrow := old[BucketTomorrow].([]any)
	if !hasToday && !hasTomorrow {
		return
	}

	converted := make(map[string]any)
	for _, bucket := range []string{BucketToday, BucketTomorrow} {
		items, _ := old[bucket].([]any)
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			id, _ := m["id"].(string)
			if id == "" {
				id = uuid.NewString()
			}
			m["id"] = id
			m["bucket"] = bucket
			if _, ok := m["title"]; !ok {
				m["title"], _ = m["text"].(string)
			}
			converted[id] = m
		}
	}
	doc["quickTasks"] = converted
}

// migrateGoalPlans moves goal.weeklyPlan into the top-level weeklyPlans map.
func migrateGoalPlans(doc map[string]any) {
	goals, ok := doc["goals"].([]any)
	if !ok {
		return
	}
	plans, ok := doc["weeklyPlans"].(map[string]any)
	if !ok {
		plans = make(map[string]any)
	}
	for _, g := range goals {
		m, ok := g.(map[string]any)
		if !ok {
			continue
		}
		plan, hasPlan := m["weeklyPlan"]
		delete(m, "weeklyPlan")
		id, _ := m["id"].(string)
		if !hasPlan || id == "" {
			continue
		}
		if _, exists := plans[id]; !exists {
			plans[id] = plan
		}
	}
	doc["weeklyPlans"] = plans
}

// Normalize fills defaults, clamps enum fields and restores invariants.
// It is safe to call more than once.
func Normalize(st *State) {
	st.SchemaVersion = CurrentSchemaVersion
	if st.QuickTasks == nil {
		st.QuickTasks = make(map[string]QuickTask)
	}
	if st.SideQuestDone == nil {
		st.SideQuestDone = make(map[string]map[string]bool)
	}
	if st.WeeklyPlans == nil {
		st.WeeklyPlans = make(map[string]WeeklyPlan)
	}
	if st.CompletedDays == nil {
		st.CompletedDays = make(map[string]bool)
	}
	if st.DaySummary == nil {
		st.DaySummary = make(map[string]DaySummary)
	}
	if st.DayTaskHistory == nil {
		st.DayTaskHistory = make(map[string][]HistoryEntry)
	}
	if st.WeightEntries == nil {
		st.WeightEntries = make(map[string]float64)
	}
	if st.SleepEntries == nil {
		st.SleepEntries = make(map[string]SleepEntry)
	}
	if st.Goals == nil {
		st.Goals = []Goal{}
	}
	if st.TodayTasks == nil {
		st.TodayTasks = []TodayTask{}
	}
	if st.SideQuests == nil {
		st.SideQuests = []SideQuest{}
	}

	normalizeGoals(st)
	normalizePlans(st)
	normalizeTasks(st)
	normalizeQuickTasks(st)
	normalizeSideQuests(st)
	normalizeVocabulary(&st.Vocabulary)

	switch st.Settings.WeightUnit {
	case UnitKg, UnitLb:
	default:
		st.Settings.WeightUnit = UnitKg
	}
	if st.Settings.TargetWeight < 0 {
		st.Settings.TargetWeight = 0
	}
	if st.Streak < 0 {
		st.Streak = 0
	}
	if st.TotalDone < 0 {
		st.TotalDone = 0
	}

	if st.OnboardingStartDate == "" {
		st.OnboardingStartDate = earliestGoalDate(st.Goals)
	}
}

func normalizeGoals(st *State) {
	for i := range st.Goals {
		g := &st.Goals[i]
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		g.Title = strings.TrimSpace(g.Title)
		if t, err := NormalizeClock(g.Time); err == nil {
			g.Time = t
		} else {
			g.Time = DefaultGoalTime
		}
	}
}

func normalizePlans(st *State) {
	for goalID, plan := range st.WeeklyPlans {
		st.WeeklyPlans[goalID] = CompletePlan(plan)
	}
}

func normalizeTasks(st *State) {
	seen := make(map[string]bool)
	kept := st.TodayTasks[:0]
	for _, t := range st.TodayTasks {
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if t.GoalID != "" {
			key := t.GoalID + "|" + t.Date
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		kept = append(kept, t)
	}
	st.TodayTasks = kept
}

func normalizeQuickTasks(st *State) {
	for key, q := range st.QuickTasks {
		if q.ID == "" {
			q.ID = key
		}
		if q.Bucket != BucketTomorrow {
			q.Bucket = BucketToday
		}
		if q.ID != key {
			delete(st.QuickTasks, key)
		}
		st.QuickTasks[q.ID] = q
	}
}

func normalizeSideQuests(st *State) {
	seen := make(map[string]bool)
	kept := st.SideQuests[:0]
	for _, q := range st.SideQuests {
		if q.GoalID == "" || seen[q.GoalID] || len(kept) >= MaxSideQuests {
			continue
		}
		seen[q.GoalID] = true
		kept = append(kept, q)
	}
	st.SideQuests = kept
}

func normalizeVocabulary(v *VocabularyState) {
	if v.Progress == nil {
		v.Progress = make(map[string]WordProgress)
	}
	if v.StudyDays == nil {
		v.StudyDays = make(map[string]int)
	}
	switch v.Direction {
	case DirectionFrDe, DirectionDeFr:
	default:
		v.Direction = DirectionFrDe
	}
	for id, p := range v.Progress {
		if p.Box < 1 {
			p.Box = 1
		}
		if p.Box > 5 {
			p.Box = 5
		}
		v.Progress[id] = p
	}
	if v.Streak < 0 {
		v.Streak = 0
	}
}

func earliestGoalDate(goals []Goal) string {
	earliest := ""
	for _, g := range goals {
		if !IsISODate(g.CreatedAt) {
			continue
		}
		if earliest == "" || g.CreatedAt < earliest {
			earliest = g.CreatedAt
		}
	}
	return earliest
}

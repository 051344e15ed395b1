// Package domain contains core business entities and interfaces.
package domain

import "strings"

// CurrentSchemaVersion is the schema version written by this build.
const CurrentSchemaVersion = 3

// Quick task buckets.
const (
	BucketToday    = "today"
	BucketTomorrow = "tomorrow"
)

// Weight units.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

// Vocabulary review directions.
const (
	DirectionFrDe = "fr-de"
	DirectionDeFr = "de-fr"
)

// Goal is a user-defined recurring intention and the source of daily tasks.
type Goal struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Time      string `json:"time" yaml:"time"`           // HH:MM, used for sorting and badges
	CreatedAt string `json:"createdAt" yaml:"createdAt"` // ISO date
}

// WeeklyPlan maps a weekday key to the planned activity for that weekday.
// An empty entry means no override (a rest day when the plan is active).
type WeeklyPlan map[string]string

// IsActive reports whether any weekday has a planned activity.
func (p WeeklyPlan) IsActive() bool {
	for _, v := range p {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	return false
}

// Entry returns the trimmed activity planned for weekday.
func (p WeeklyPlan) Entry(weekday string) string {
	return strings.TrimSpace(p[weekday])
}

// IsComplete reports whether all seven weekday keys are present.
func (p WeeklyPlan) IsComplete() bool {
	for _, k := range WeekdayKeys {
		if _, ok := p[k]; !ok {
			return false
		}
	}
	return true
}

// TodayTask is a goal materialized for one calendar day.
type TodayTask struct {
	ID        string `json:"id"`
	GoalID    string `json:"goalId"` // "" when the goal no longer exists
	Label     string `json:"label"`
	Time      string `json:"time"`
	DoneAt    string `json:"doneAt,omitempty"`
	Date      string `json:"date"`
	Done      bool   `json:"done"`
	IsRestDay bool   `json:"isRestDay"`
}

// IsActionable reports whether the task counts toward the day summary on date.
func (t *TodayTask) IsActionable(date string) bool {
	return !t.IsRestDay && t.Date == date
}

// QuickTask is a one-off task in the today or tomorrow bucket.
type QuickTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Bucket    string `json:"bucket"`
	CreatedAt string `json:"createdAt"`
	Done      bool   `json:"done"`
}

// SideQuest references a goal taken on as an optional extra task.
type SideQuest struct {
	GoalID  string `json:"goalId"`
	AddedAt string `json:"addedAt"`
}

// DaySummary counts actionable primary tasks for one day.
type DaySummary struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Ratio returns done/total, or 0 when total is 0.
func (s DaySummary) Ratio() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Done) / float64(s.Total)
}

// HistoryEntry is one task captured when its day rolled over.
type HistoryEntry struct {
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

// Settings holds user preferences stored inside the snapshot.
type Settings struct {
	WeightUnit   string  `json:"weightUnit"`
	TargetWeight float64 `json:"targetWeight,omitempty"` // kg, 0 = none
	DayOffset    int     `json:"dayOffset"`              // simulation offset in days
}

// SleepEntry records one night.
type SleepEntry struct {
	Bed     string `json:"bed"`  // HH:MM
	Wake    string `json:"wake"` // HH:MM
	Quality int    `json:"quality"`
}

// VocabularySeed is the themed word list document.
type VocabularySeed struct {
	Version string            `json:"version"`
	Themes  []VocabularyTheme `json:"themes"`
}

// Theme returns the theme with id, or nil.
func (s *VocabularySeed) Theme(id string) *VocabularyTheme {
	if s == nil {
		return nil
	}
	for i := range s.Themes {
		if s.Themes[i].ID == id {
			return &s.Themes[i]
		}
	}
	return nil
}

// VocabularyTheme groups words.
type VocabularyTheme struct {
	ID    string           `json:"id"`
	Title string           `json:"title"`
	Items []VocabularyItem `json:"items"`
}

// VocabularyItem is one French/German word pair.
type VocabularyItem struct {
	ID string `json:"id"`
	FR string `json:"fr"`
	DE string `json:"de"`
}

// WordProgress is the review state of one item.
type WordProgress struct {
	LastReviewed string `json:"lastReviewed"`
	Box          int    `json:"box"`
	Correct      int    `json:"correct"`
	Wrong        int    `json:"wrong"`
}

// VocabularyState holds the cached seed and review progress.
type VocabularyState struct {
	Seed          *VocabularySeed         `json:"seed,omitempty"`
	Progress      map[string]WordProgress `json:"progress"`
	StudyDays     map[string]int          `json:"studyDays"`
	Direction     string                  `json:"direction"`
	ActiveTheme   string                  `json:"activeTheme,omitempty"`
	LastStudyDate string                  `json:"lastStudyDate,omitempty"`
	Streak        int                     `json:"streak"`
}

// State is the whole persisted snapshot.
type State struct {
	QuickTasks     map[string]QuickTask       `json:"quickTasks"`
	SideQuestDone  map[string]map[string]bool `json:"sideQuestDone"` // date -> goalId -> done
	WeeklyPlans    map[string]WeeklyPlan      `json:"weeklyPlans"`   // goalId -> plan
	CompletedDays  map[string]bool            `json:"completedDays"`
	DaySummary     map[string]DaySummary      `json:"daySummary"`
	DayTaskHistory map[string][]HistoryEntry  `json:"dayTaskHistory"`
	WeightEntries  map[string]float64         `json:"weightEntries"` // date -> kg
	SleepEntries   map[string]SleepEntry      `json:"sleepEntries"`

	Goals      []Goal      `json:"goals"`
	TodayTasks []TodayTask `json:"todayTasks"`
	SideQuests []SideQuest `json:"sideQuests"`

	Vocabulary VocabularyState `json:"vocabulary"`
	Settings   Settings        `json:"settings"`

	TasksDate           string `json:"tasksDate,omitempty"`      // date todayTasks were materialized for
	QuickTasksDate      string `json:"quickTasksDate,omitempty"` // date quick task buckets were last rolled
	LastActiveDate      string `json:"lastActiveDate,omitempty"`
	LastTaskUnlockDate  string `json:"lastTaskUnlockDate,omitempty"`
	OnboardingStartDate string `json:"onboardingStartDate,omitempty"`

	SchemaVersion int `json:"schemaVersion"`
	Streak        int `json:"streak"`
	TotalDone     int `json:"totalDone"`
}

// Goal returns the goal with id, or nil.
func (s *State) Goal(id string) *Goal {
	if id == "" {
		return nil
	}
	for i := range s.Goals {
		if s.Goals[i].ID == id {
			return &s.Goals[i]
		}
	}
	return nil
}

// Task returns the today task with id, or nil.
func (s *State) Task(id string) *TodayTask {
	for i := range s.TodayTasks {
		if s.TodayTasks[i].ID == id {
			return &s.TodayTasks[i]
		}
	}
	return nil
}

// HasTaskForGoal reports whether goalID is materialized for date.
func (s *State) HasTaskForGoal(goalID, date string) bool {
	for i := range s.TodayTasks {
		if s.TodayTasks[i].GoalID == goalID && s.TodayTasks[i].Date == date {
			return true
		}
	}
	return false
}

// IsSideQuest reports whether goalID is a current side quest.
func (s *State) IsSideQuest(goalID string) bool {
	for _, q := range s.SideQuests {
		if q.GoalID == goalID {
			return true
		}
	}
	return false
}

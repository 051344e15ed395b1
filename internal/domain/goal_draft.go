package domain

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// GoalDraft is a goal to be created from file input.
type GoalDraft struct {
	Plan  WeeklyPlan `yaml:"plan"`
	Title string     `yaml:"title"`
	Time  string     `yaml:"time"`
}

// goalFile is the YAML document layout.
type goalFile struct {
	Goals []GoalDraft `yaml:"goals"`
}

// ParseGoalDrafts parses a YAML file containing goal definitions.
//
// Format:
//
//	goals:
//	  - title: Run
//	    time: "07:00"
//	    plan:
//	      mon: 5k easy
//	      wed: intervals
//	  - title: Read
//	    time: "21:30"
//
// Plans may omit weekdays; omitted weekdays become rest days.
func ParseGoalDrafts(content string) ([]GoalDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyFile
	}

	var f goalFile
	if err := yaml.Unmarshal([]byte(content), &f); err != nil {
		return nil, fmt.Errorf("parse goals file: %w", err)
	}
	if len(f.Goals) == 0 {
		return nil, ErrNoGoalsInFile
	}

	for i := range f.Goals {
		d := &f.Goals[i]
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			return nil, fmt.Errorf("goal %d: %w", i+1, ErrEmptyTitle)
		}
		if d.Time == "" {
			d.Time = DefaultGoalTime
		}
		t, err := NormalizeClock(d.Time)
		if err != nil {
			return nil, fmt.Errorf("goal %d: %w", i+1, err)
		}
		d.Time = t
		if len(d.Plan) > 0 {
			plan := make(WeeklyPlan, len(WeekdayKeys))
			for k, v := range d.Plan {
				key := strings.ToLower(strings.TrimSpace(k))
				if WeekdayIndex(key) < 0 {
					return nil, fmt.Errorf("goal %d: unknown weekday %q", i+1, k)
				}
				plan[key] = strings.TrimSpace(v)
			}
			d.Plan = CompletePlan(plan)
		}
	}
	return f.Goals, nil
}

// WeekdayIndex returns the Monday-based index of key, or -1.
func WeekdayIndex(key string) int {
	for i, k := range WeekdayKeys {
		if k == key {
			return i
		}
	}
	return -1
}

// CompletePlan returns a copy of p with every missing weekday set to "".
func CompletePlan(p WeeklyPlan) WeeklyPlan {
	out := make(WeeklyPlan, len(WeekdayKeys))
	for _, k := range WeekdayKeys {
		out[k] = strings.TrimSpace(p[k])
	}
	return out
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultGoalTime is used when a goal is added without a time.
const DefaultGoalTime = "08:00"

// Time-of-day badges.
const (
	BadgeMorning = "morning"
	BadgeNoon    = "noon"
	BadgeEvening = "evening"
)

// ParseClock parses HH:MM into minutes after midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(h) == 0 || len(h) > 2 || len(m) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour*60 + minute, nil
}

// NormalizeClock validates s and returns it zero-padded as HH:MM.
func NormalizeClock(s string) (string, error) {
	mins, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60), nil
}

// TimeBucket groups a HH:MM time into morning, noon or evening.
// Unparseable times count as morning.
func TimeBucket(hhmm string) string {
	mins, err := ParseClock(hhmm)
	if err != nil {
		return BadgeMorning
	}
	switch {
	case mins < 12*60:
		return BadgeMorning
	case mins < 17*60:
		return BadgeNoon
	default:
		return BadgeEvening
	}
}

package engine

import (
	"fmt"
	"math"

	"github.com/runoshun/steps/internal/domain"
)

// Sleep limits.
const (
	MinSleepMinutes = 60
	MaxSleepMinutes = 16 * 60
	MinSleepQuality = 1
	MaxSleepQuality = 5
	sleepWindowDays = 7
)

// SleepDuration returns the minutes from bed to wake, wrapping past midnight.
func SleepDuration(bed, wake string) (int, error) {
	b, err := domain.ParseClock(bed)
	if err != nil {
		return 0, err
	}
	w, err := domain.ParseClock(wake)
	if err != nil {
		return 0, err
	}
	d := w - b
	if d <= 0 {
		d += 24 * 60
	}
	return d, nil
}

// LogSleep validates and records one night for date.
func LogSleep(st *domain.State, date, bed, wake string, quality int) (domain.SleepEntry, error) {
	if !domain.IsISODate(date) {
		return domain.SleepEntry{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}
	bedTime, err := domain.NormalizeClock(bed)
	if err != nil {
		return domain.SleepEntry{}, fmt.Errorf("%w: bed time: %w", domain.ErrInvalidSleep, err)
	}
	wakeTime, err := domain.NormalizeClock(wake)
	if err != nil {
		return domain.SleepEntry{}, fmt.Errorf("%w: wake time: %w", domain.ErrInvalidSleep, err)
	}
	if quality < MinSleepQuality || quality > MaxSleepQuality {
		return domain.SleepEntry{}, fmt.Errorf("%w: quality must be %d-%d", domain.ErrInvalidSleep, MinSleepQuality, MaxSleepQuality)
	}
	mins, _ := SleepDuration(bedTime, wakeTime)
	if mins < MinSleepMinutes || mins > MaxSleepMinutes {
		return domain.SleepEntry{}, fmt.Errorf("%w: duration %dh%02dm", domain.ErrInvalidSleep, mins/60, mins%60)
	}

	e := domain.SleepEntry{Bed: bedTime, Wake: wakeTime, Quality: quality}
	st.SleepEntries[date] = e
	return e, nil
}

// SleepScore rates a night 0..100: 70% duration (full marks for 7-9 h,
// falling linearly to zero at 4 h and 12 h) and 30% quality.
func SleepScore(minutes, quality int) int {
	h := float64(minutes) / 60
	var duration float64
	switch {
	case h >= 7 && h <= 9:
		duration = 1
	case h < 7:
		duration = (h - 4) / 3
	default:
		duration = (12 - h) / 3
	}
	duration = min(max(duration, 0), 1)
	q := min(max(float64(quality-MinSleepQuality)/float64(MaxSleepQuality-MinSleepQuality), 0), 1)
	return int(math.Round(70*duration + 30*q))
}

// SleepStats summarizes the 7 nights ending at anchor.
type SleepStats struct {
	Last         *domain.SleepEntry
	LastDate     string
	LastMinutes  int
	LastScore    int
	AvgMinutes   int
	AvgScore     int
	Nights       int
	TotalEntries int
}

// ComputeSleepStats derives SleepStats for anchor.
func ComputeSleepStats(st *domain.State, anchor string) SleepStats {
	ss := SleepStats{TotalEntries: len(st.SleepEntries)}
	var minutes, score int
	for i := 0; i < sleepWindowDays; i++ {
		date := domain.AddDays(anchor, -i)
		e, ok := st.SleepEntries[date]
		if !ok {
			continue
		}
		m, err := SleepDuration(e.Bed, e.Wake)
		if err != nil {
			continue
		}
		s := SleepScore(m, e.Quality)
		if ss.Last == nil {
			entry := e
			ss.Last = &entry
			ss.LastDate = date
			ss.LastMinutes = m
			ss.LastScore = s
		}
		minutes += m
		score += s
		ss.Nights++
	}
	if ss.Nights > 0 {
		ss.AvgMinutes = int(math.Round(float64(minutes) / float64(ss.Nights)))
		ss.AvgScore = int(math.Round(float64(score) / float64(ss.Nights)))
	}
	return ss
}

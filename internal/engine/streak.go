package engine

import "github.com/runoshun/steps/internal/domain"

// UpdateStreak records activity on today.
// Same day is a no-op, the next day extends the streak, a longer gap
// restarts it at 1.
func UpdateStreak(st *domain.State, today string) {
	advanceStreak(&st.LastActiveDate, &st.Streak, today)
}

// advanceStreak applies the streak rules to a (last active date, streak) pair.
func advanceStreak(last *string, streak *int, today string) {
	if *last == "" {
		*streak = 1
		*last = today
		return
	}
	switch gap := domain.DaysBetween(*last, today); {
	case gap == 0:
		return
	case gap == 1:
		*streak++
	default:
		*streak = 1
	}
	*last = today
}

// CurrentStreak returns the streak as of today: zero once a full day has
// been missed.
func CurrentStreak(st *domain.State, today string) int {
	return liveStreak(st.LastActiveDate, st.Streak, today)
}

func liveStreak(last string, streak int, today string) int {
	if last == "" {
		return 0
	}
	if domain.DaysBetween(last, today) > 1 {
		return 0
	}
	return streak
}

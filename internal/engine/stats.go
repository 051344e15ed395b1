package engine

import (
	"math"

	"github.com/runoshun/steps/internal/domain"
)

// Trend directions.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// NoWeekday is returned by BestWeekday when there is no history.
const NoWeekday = "-"

// Statistics windows.
const (
	identityWindowDays  = 14
	identityStreakCap   = 7
	trendWindowDays     = 15
	trendThresholdPoint = 4.0
)

// Stats is the full statistics panel for an anchor date.
type Stats struct {
	Records         Records
	Week            WeekStats
	Retention       Retention
	BestWeekday     string
	Trend           string
	WeeklyRate      int
	MonthlyRate     int
	BestWeekdayRate int
	IdentityScore   int
	Streak          int
	TotalDone       int
}

// ComputeStats derives every statistic for anchor.
func ComputeStats(st *domain.State, anchor string) Stats {
	best, bestRate := BestWeekday(st)
	return Stats{
		WeeklyRate:      WeeklyRate(st, anchor),
		MonthlyRate:     MonthlyRate(st, anchor),
		Week:            WeeklyCompletion(st, anchor),
		Records:         PersonalRecords(st),
		BestWeekday:     best,
		BestWeekdayRate: bestRate,
		IdentityScore:   IdentityScore(st, anchor),
		Trend:           CompletionTrend(st, anchor),
		Retention:       RetentionSnapshot(st),
		Streak:          CurrentStreak(st, anchor),
		TotalDone:       st.TotalDone,
	}
}

func percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(done) / float64(total)))
}

// WeeklyRate is the completion rate of the Monday-start week containing anchor.
func WeeklyRate(st *domain.State, anchor string) int {
	week := domain.WeekStart(anchor)
	var done, total int
	for date, s := range st.DaySummary {
		if domain.WeekStart(date) == week {
			done += s.Done
			total += s.Total
		}
	}
	return percent(done, total)
}

// MonthlyRate is the completion rate of the calendar month containing anchor.
func MonthlyRate(st *domain.State, anchor string) int {
	month := domain.MonthKey(anchor)
	var done, total int
	for date, s := range st.DaySummary {
		if domain.MonthKey(date) == month {
			done += s.Done
			total += s.Total
		}
	}
	return percent(done, total)
}

// WeekStats counts active (ratio >= 0.5) and perfect (ratio >= 1) days.
type WeekStats struct {
	ActiveDays  int
	PerfectDays int
}

func (w *WeekStats) add(s domain.DaySummary) {
	if s.Total <= 0 {
		return
	}
	r := s.Ratio()
	if r >= 0.5 {
		w.ActiveDays++
	}
	if r >= 1 {
		w.PerfectDays++
	}
}

// WeeklyCompletion returns the WeekStats of the week containing anchor.
func WeeklyCompletion(st *domain.State, anchor string) WeekStats {
	week := domain.WeekStart(anchor)
	var ws WeekStats
	for date, s := range st.DaySummary {
		if domain.WeekStart(date) == week {
			ws.add(s)
		}
	}
	return ws
}

// Records are the best weekly results ever achieved.
type Records struct {
	BestActiveDays  int
	BestPerfectDays int
}

// PersonalRecords groups history by week and keeps the maxima.
func PersonalRecords(st *domain.State) Records {
	weeks := make(map[string]*WeekStats)
	for date, s := range st.DaySummary {
		if !domain.IsISODate(date) {
			continue
		}
		key := domain.WeekStart(date)
		ws, ok := weeks[key]
		if !ok {
			ws = &WeekStats{}
			weeks[key] = ws
		}
		ws.add(s)
	}
	var r Records
	for _, ws := range weeks {
		r.BestActiveDays = max(r.BestActiveDays, ws.ActiveDays)
		r.BestPerfectDays = max(r.BestPerfectDays, ws.PerfectDays)
	}
	return r
}

// BestWeekday returns the weekday with the highest done/total ratio across
// all history and its rate. Ties go to the earlier weekday.
func BestWeekday(st *domain.State) (string, int) {
	var done, total [7]int
	for date, s := range st.DaySummary {
		idx := domain.WeekdayIndex(domain.WeekdayKey(date))
		if idx < 0 {
			continue
		}
		done[idx] += s.Done
		total[idx] += s.Total
	}

	best, bestRatio := NoWeekday, -1.0
	bestIdx := -1
	for i, key := range domain.WeekdayKeys {
		if total[i] <= 0 {
			continue
		}
		if r := float64(done[i]) / float64(total[i]); r > bestRatio {
			best, bestRatio, bestIdx = key, r, i
		}
	}
	if bestIdx < 0 {
		return NoWeekday, 0
	}
	return best, percent(done[bestIdx], total[bestIdx])
}

// IdentityScore blends the trailing 14 days into 0..100:
// 55% completion ratio, 30% share of days with any completion and 15% the
// recent streak capped at 7 days.
func IdentityScore(st *domain.State, anchor string) int {
	var done, total, activeDays int
	for i := 0; i < identityWindowDays; i++ {
		s := st.DaySummary[domain.AddDays(anchor, -i)]
		done += s.Done
		total += s.Total
		if s.Done > 0 {
			activeDays++
		}
	}

	streak := 0
	for i := 0; i < identityStreakCap; i++ {
		if st.DaySummary[domain.AddDays(anchor, -i)].Done <= 0 {
			break
		}
		streak++
	}

	ratio := 0.0
	if total > 0 {
		ratio = float64(done) / float64(total)
	}
	score := 55*ratio +
		30*float64(activeDays)/identityWindowDays +
		15*float64(streak)/identityStreakCap
	return min(max(int(math.Round(score)), 0), 100)
}

// windowRate returns the completion percentage over days days ending at end.
func windowRate(st *domain.State, end string, days int) float64 {
	var done, total int
	for i := 0; i < days; i++ {
		s := st.DaySummary[domain.AddDays(end, -i)]
		done += s.Done
		total += s.Total
	}
	if total <= 0 {
		return 0
	}
	return 100 * float64(done) / float64(total)
}

// CompletionTrend compares the 15 days ending at anchor with the 15 before.
func CompletionTrend(st *domain.State, anchor string) string {
	current := windowRate(st, anchor, trendWindowDays)
	previous := windowRate(st, domain.AddDays(anchor, -trendWindowDays), trendWindowDays)
	switch diff := current - previous; {
	case diff >= trendThresholdPoint:
		return TrendUp
	case diff <= -trendThresholdPoint:
		return TrendDown
	default:
		return TrendStable
	}
}

// Retention reports completions on onboarding day +1 and day +7.
type Retention struct {
	Day1 bool
	Day7 bool
}

// RetentionSnapshot checks the days exactly 1 and 7 days after onboarding started.
func RetentionSnapshot(st *domain.State) Retention {
	if st.OnboardingStartDate == "" {
		return Retention{}
	}
	return Retention{
		Day1: st.DaySummary[domain.AddDays(st.OnboardingStartDate, 1)].Done > 0,
		Day7: st.DaySummary[domain.AddDays(st.OnboardingStartDate, 7)].Done > 0,
	}
}

package domain

import (
	"fmt"
	"time"
)

// isoLayout is the calendar-date layout used for every day key in State.
const isoLayout = "2006-01-02"

// Weekday keys, Monday first.
const (
	Mon = "mon"
	Tue = "tue"
	Wed = "wed"
	Thu = "thu"
	Fri = "fri"
	Sat = "sat"
	Sun = "sun"
)

// WeekdayKeys lists the weekday keys in Monday-start order.
var WeekdayKeys = []string{Mon, Tue, Wed, Thu, Fri, Sat, Sun}

// ISODate formats t as YYYY-MM-DD using local calendar fields.
func ISODate(t time.Time) string {
	y, m, d := t.Local().Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// Today returns the local date shifted by offsetDays.
func Today(clock Clock, offsetDays int) string {
	return ISODate(clock.Now().Local().AddDate(0, 0, offsetDays))
}

// ParseISODate parses a YYYY-MM-DD string as a civil date (UTC midnight).
// Civil dates carry no zone so day arithmetic never crosses a DST boundary.
func ParseISODate(iso string) (time.Time, error) {
	t, err := time.ParseInLocation(isoLayout, iso, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, iso)
	}
	return t, nil
}

// IsISODate reports whether s is a valid YYYY-MM-DD date.
func IsISODate(s string) bool {
	_, err := ParseISODate(s)
	return err == nil
}

// DaysBetween returns the whole days from start to end (positive when end is later).
// Invalid dates yield 0.
func DaysBetween(start, end string) int {
	a, err := ParseISODate(start)
	if err != nil {
		return 0
	}
	b, err := ParseISODate(end)
	if err != nil {
		return 0
	}
	return int(b.Sub(a).Hours() / 24)
}

// AddDays shifts iso by n days. Invalid input is returned unchanged.
func AddDays(iso string, n int) string {
	t, err := ParseISODate(iso)
	if err != nil {
		return iso
	}
	return t.AddDate(0, 0, n).Format(isoLayout)
}

// WeekdayKey returns mon..sun for iso, or "" if iso is invalid.
func WeekdayKey(iso string) string {
	t, err := ParseISODate(iso)
	if err != nil {
		return ""
	}
	return weekdayKey(t.Weekday())
}

func weekdayKey(wd time.Weekday) string {
	// time.Weekday starts on Sunday.
	return WeekdayKeys[(int(wd)+6)%7]
}

// WeekStart returns the Monday of the week containing iso.
func WeekStart(iso string) string {
	t, err := ParseISODate(iso)
	if err != nil {
		return iso
	}
	back := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -back).Format(isoLayout)
}

// MonthKey returns the YYYY-MM prefix of iso.
func MonthKey(iso string) string {
	if len(iso) < 7 {
		return ""
	}
	return iso[:7]
}

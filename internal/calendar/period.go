package calendar

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the normalized day key used across the calendar engine.
const dateLayout = "2006-01-02"

// WeekInfo describes one Monday-start display week. Instances are immutable;
// navigation returns a new value.
type WeekInfo struct {
	Year      int
	Week      int    // ISO week number
	Key       string // "YYYY-Www"
	StartDate time.Time
	EndDate   time.Time
	Days      []time.Time // exactly 7, Monday..Sunday
}

// MonthInfo describes one calendar month together with the full
// Monday-aligned week grid that covers it.
type MonthInfo struct {
	Year      int
	Month     time.Month
	Key       string // "YYYY-MM"
	StartDate time.Time // first of the month
	EndDate   time.Time // last of the month
	Days      []time.Time // full grid, a multiple of 7 days
}

// FormatDate renders t as "YYYY-MM-DD" using its local calendar date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a "YYYY-MM-DD" string, tolerating a trailing time or
// timezone suffix ("2025-01-06T09:00:00Z", "2025-01-06 09:00"). The date part
// is taken as a local calendar date.
func ParseDate(s string) (time.Time, error) {
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// NormalizeDateKey reduces a raw date string to its "YYYY-MM-DD" key,
// stripping any time/zone suffix. Malformed input is returned trimmed as-is;
// the caller decides whether to skip it.
func NormalizeDateKey(s string) string {
	if t, err := ParseDate(s); err == nil {
		return FormatDate(t)
	}
	return strings.TrimSpace(s)
}

// truncateToDay drops the time-of-day component.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// mondayOf returns the Monday of the week containing t.
// Go weekdays are Sunday=0..Saturday=6; shift so Monday is the origin.
func mondayOf(t time.Time) time.Time {
	t = truncateToDay(t)
	back := int(t.Weekday()) - 1
	if back < 0 {
		back = 6 // Sunday belongs to the week that started six days earlier
	}
	return t.AddDate(0, 0, -back)
}

// WeekOf builds the WeekInfo for the Monday-start week containing t.
func WeekOf(t time.Time) WeekInfo {
	start := mondayOf(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	isoYear, isoWeek := start.ISOWeek()
	return WeekInfo{
		Year:      isoYear,
		Week:      isoWeek,
		Key:       fmt.Sprintf("%04d-W%02d", isoYear, isoWeek),
		StartDate: start,
		EndDate:   days[6],
		Days:      days,
	}
}

// PrevWeek returns the week exactly 7 days earlier.
func PrevWeek(w WeekInfo) WeekInfo {
	return WeekOf(w.StartDate.AddDate(0, 0, -7))
}

// NextWeek returns the week exactly 7 days later.
func NextWeek(w WeekInfo) WeekInfo {
	return WeekOf(w.StartDate.AddDate(0, 0, 7))
}

// MonthOf builds the MonthInfo for the month containing t. The day grid runs
// from the Monday on or before the 1st through the Sunday on or after the
// last day, so every row renders as a complete week.
func MonthOf(t time.Time) MonthInfo {
	t = truncateToDay(t)
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)

	gridStart := mondayOf(first)
	gridEnd := mondayOf(last).AddDate(0, 0, 6)

	n := int(gridEnd.Sub(gridStart).Hours()/24) + 1
	days := make([]time.Time, 0, n)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}

	return MonthInfo{
		Year:      first.Year(),
		Month:     first.Month(),
		Key:       fmt.Sprintf("%04d-%02d", first.Year(), int(first.Month())),
		StartDate: first,
		EndDate:   last,
		Days:      days,
	}
}

// PrevMonth returns the previous calendar month, rolling the year when
// navigating across January.
func PrevMonth(m MonthInfo) MonthInfo {
	return MonthOf(m.StartDate.AddDate(0, -1, 0))
}

// NextMonth returns the next calendar month, rolling the year when
// navigating across December.
func NextMonth(m MonthInfo) MonthInfo {
	return MonthOf(m.StartDate.AddDate(0, 1, 0))
}

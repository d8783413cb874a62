// backend-go/internal/dateutil/dateutil.go

// Package dateutil holds the calendar-date and composite-key helpers shared
// by the demand and inventory views. Dates are canonical YYYY-MM-DD strings
// throughout; lexicographic order on them is chronological order.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const dayLayout = "2006-01-02"

// keySeparator joins composite map keys. Tab cannot appear in product ids
// or canonical dates, so the joined key cannot collide.
const keySeparator = "\t"

// AddDays adds n calendar days (n may be negative) to a canonical
// YYYY-MM-DD string. The date is anchored at midday before the shift so a
// DST transition cannot move the result across a day boundary. Returns the
// input unchanged when it does not parse.
func AddDays(dateStr string, n int) string {
	t, err := time.ParseInLocation(dayLayout, dateStr, time.Local)
	if err != nil {
		return dateStr
	}
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.Local)
	return noon.AddDate(0, 0, n).Format(dayLayout)
}

// Today returns the current local calendar date in canonical form.
func Today() string {
	return time.Now().Format(dayLayout)
}

// FormatWithWeekday appends the three-letter weekday in parentheses, e.g.
// "2024-01-01 (Mon)". Inputs shorter than 10 characters or that do not
// parse as dates come back unchanged.
func FormatWithWeekday(dateStr string) string {
	if len(dateStr) < 10 {
		return dateStr
	}
	t, err := time.ParseInLocation(dayLayout, dateStr[:10], time.Local)
	if err != nil {
		return dateStr
	}
	return fmt.Sprintf("%s (%s)", dateStr, t.Format("Mon"))
}

// CompositeKey joins two identifiers for map lookups.
func CompositeKey(a, b string) string {
	return a + keySeparator + b
}

// DateKey normalizes a date-ish string (canonical date, ISO timestamp) to
// its YYYY-MM-DD prefix. Returns "" for values that are too short or whose
// prefix is not a valid calendar date, so callers can drop them.
func DateKey(v string) string {
	v = strings.TrimSpace(v)
	if len(v) < 10 {
		return ""
	}
	day := v[:10]
	if _, err := time.ParseInLocation(dayLayout, day, time.Local); err != nil {
		return ""
	}
	return day
}

// DaysBetween returns the inclusive number of days from fromStr to toStr,
// or 0 when the range is inverted or either bound does not parse.
func DaysBetween(fromStr, toStr string) int {
	from, err := time.ParseInLocation(dayLayout, fromStr, time.Local)
	if err != nil {
		return 0
	}
	to, err := time.ParseInLocation(dayLayout, toStr, time.Local)
	if err != nil {
		return 0
	}
	fromNoon := time.Date(from.Year(), from.Month(), from.Day(), 12, 0, 0, 0, time.UTC)
	toNoon := time.Date(to.Year(), to.Month(), to.Day(), 12, 0, 0, 0, time.UTC)
	diff := int(toNoon.Sub(fromNoon).Round(24*time.Hour) / (24 * time.Hour))
	if diff < 0 {
		return 0
	}
	return diff + 1
}

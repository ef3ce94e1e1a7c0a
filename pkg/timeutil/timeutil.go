// Package timeutil provides calendar-day utilities for Apex Campus Hub.
// The "today" boundary for study stats is evaluated in the application's
// configured location, so midnight rollovers match the campus clock.
// No external dependencies - uses only standard library.
package timeutil

import (
	"time"
)

// DefaultLocation is used when no location is configured.
var DefaultLocation = time.UTC

// LoadLocation resolves an IANA name like "Asia/Almaty", falling back to
// DefaultLocation on empty input.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return DefaultLocation, nil
	}
	return time.LoadLocation(name)
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns the half-open interval [start, next) covering t's
// calendar day in loc. Queries use >= start AND < next so a session
// recorded exactly at midnight belongs to the new day.
func DayBounds(t time.Time, loc *time.Location) (start, next time.Time) {
	start = StartOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// IsSameDay checks if two times fall on the same calendar day in loc.
func IsSameDay(t1, t2 time.Time, loc *time.Location) bool {
	a, b := t1.In(loc), t2.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// StartOfWeek returns Monday midnight of t's week in loc.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	weekday := int(local.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	return StartOfDay(local.AddDate(0, 0, -(weekday-1)), loc)
}

// DaysBetween calculates the number of calendar days between two times in loc.
func DaysBetween(t1, t2 time.Time, loc *time.Location) int {
	a := StartOfDay(t1, loc)
	b := StartOfDay(t2, loc)
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		days = -days
	}
	return days
}

// Common date/time formats.
const (
	// FormatDate is the standard date format (YYYY-MM-DD).
	FormatDate = "2006-01-02"
	// FormatDateTime is the standard datetime format.
	FormatDateTime = "2006-01-02 15:04"
	// FormatDateTimeSeconds includes seconds.
	FormatDateTimeSeconds = "2006-01-02 15:04:05"
)

// FormatDateStr formats a time as a date string (YYYY-MM-DD) in loc.
func FormatDateStr(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(FormatDate)
}

// ParseDate parses a date string (YYYY-MM-DD) in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(FormatDate, value, loc)
}

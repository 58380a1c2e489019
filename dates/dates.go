// Package dates computes canonical local-calendar-day keys and enumerates
// recent date windows for the daily protocol.
//
// A Key identifies the wall-clock day the user experienced. Keys are always
// derived from local year/month/day fields, never from a UTC truncation, so
// a task completed at 11 PM stays on the day it was done for users west of
// UTC.
package dates

import (
	"fmt"
	"time"
)

// Key identifies one local calendar day in YYYY-MM-DD form.
//
// Two keys are equal iff they denote the same local calendar day,
// regardless of time of day.
type Key string

// Mode selects which calendar days a window includes.
type Mode string

const (
	// EveryDay includes all calendar days.
	EveryDay Mode = "every_day"

	// WeekdaysOnly excludes Saturdays and Sundays.
	WeekdaysOnly Mode = "weekdays_only"
)

// ValidModes returns all valid mode values.
func ValidModes() []Mode {
	return []Mode{EveryDay, WeekdaysOnly}
}

// IsValid returns true if the mode is a known value.
func (m Mode) IsValid() bool {
	for _, valid := range ValidModes() {
		if m == valid {
			return true
		}
	}
	return false
}

// KeyFor returns the Key for the local calendar day containing t.
func KeyFor(t time.Time) Key {
	year, month, day := t.Date()
	return Key(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
}

// Today returns the Key for the calendar day containing now.
func Today(now time.Time) Key {
	return KeyFor(now)
}

// IsWeekday reports whether t falls on Monday through Friday.
func IsWeekday(t time.Time) bool {
	day := t.Weekday()
	return day != time.Saturday && day != time.Sunday
}

// Recent returns exactly n keys walking strictly backward one calendar day
// at a time from now, most recent first. WeekdaysOnly skips weekend days
// without counting them toward n.
func Recent(now time.Time, n int, mode Mode) []Key {
	if n <= 0 {
		return nil
	}

	keys := make([]Key, 0, n)
	day := now
	for len(keys) < n {
		if mode != WeekdaysOnly || IsWeekday(day) {
			keys = append(keys, KeyFor(day))
		}
		day = day.AddDate(0, 0, -1)
	}
	return keys
}

// Time parses the key back into a local time at midnight.
func (k Key) Time() (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", string(k), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", k, err)
	}
	return t, nil
}

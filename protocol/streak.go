package protocol

import (
	"time"

	"github.com/Vanndavid/Mission-Employed/dates"
)

// StreakWindow bounds how many recent days the streak walk inspects.
const StreakWindow = 100

// Streak counts consecutive fully-completed days ending at, or just before,
// today.
//
// The walk runs most-recent-first. An incomplete past day breaks the count.
// An incomplete today does not: the day is still in progress, so it is
// skipped without counting and without stopping. This asymmetry is the core
// rule of the tracker.
func (l Log) Streak(tasks []Task, now time.Time, mode dates.Mode) int {
	today := dates.Today(now)

	streak := 0
	for _, date := range dates.Recent(now, StreakWindow, mode) {
		if l.IsComplete(date, tasks) {
			streak++
			continue
		}
		if date == today {
			continue
		}
		break
	}
	return streak
}

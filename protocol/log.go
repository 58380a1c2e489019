package protocol

import (
	"github.com/Vanndavid/Mission-Employed/dates"
	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
)

// Record stores which tasks were completed on one day.
type Record = statestore.DailyLog

// Log maps each day to its completion record. Absence of a record means
// nothing was done that day.
type Log map[dates.Key]Record

// Toggle flips one task's completion flag for one day, creating the day's
// record on first use. No other entry is touched.
func (l Log) Toggle(date dates.Key, taskID string) {
	record, ok := l[date]
	if !ok {
		record = Record{Date: date, Completions: make(map[string]bool)}
	}
	if record.Completions == nil {
		record.Completions = make(map[string]bool)
	}
	record.Completions[taskID] = !record.Completions[taskID]
	l[date] = record
}

// Done reports whether a single task was completed on the given day.
func (l Log) Done(date dates.Key, taskID string) bool {
	record, ok := l[date]
	if !ok {
		return false
	}
	return record.Completions[taskID]
}

// IsComplete reports whether every task in tasks was completed on the given
// day. A missing record or a missing task entry counts as not done.
func (l Log) IsComplete(date dates.Key, tasks []Task) bool {
	record, ok := l[date]
	if !ok {
		return false
	}
	for _, task := range tasks {
		if !record.Completions[task.ID] {
			return false
		}
	}
	return true
}

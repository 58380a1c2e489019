// Package protocol implements the daily requirement tracker: which tasks
// were completed on which local days, and the current streak.
//
// Completion history is append-only. A toggle flips exactly one task's flag
// for exactly one day; days are never bulk-overwritten and never deleted.
package protocol

// Task describes one required daily activity.
type Task struct {
	// ID is the stable identifier stored in completion logs.
	ID string

	// Label is the human-readable task name.
	Label string

	// Duration is a display-only time estimate.
	Duration string
}

// DefaultTasks returns the standard daily protocol, in display order.
func DefaultTasks() []Task {
	return []Task{
		{ID: "coding_easy", Label: "1 Easy Problem", Duration: "60-90m (Combined)"},
		{ID: "coding_medium", Label: "1 Medium Problem", Duration: "60-90m (Combined)"},
		{ID: "behavioral", Label: "Behavioral Prep", Duration: "20-30m"},
		{ID: "simulation", Label: "Interview Sim", Duration: "10m"},
	}
}

// FindTask returns the task with the given id.
func FindTask(tasks []Task, id string) (Task, bool) {
	for _, task := range tasks {
		if task.ID == id {
			return task, true
		}
	}
	return Task{}, false
}

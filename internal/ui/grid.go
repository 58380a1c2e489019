package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Vanndavid/Mission-Employed/dates"
	"github.com/Vanndavid/Mission-Employed/protocol"
)

var (
	gridDoneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	gridMissedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	gridTodayStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	streakLiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	streakZeroStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	gridTaskStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	gridCompleteMark = "#"
	gridMissedMark   = "."
)

// FormatStreakBanner renders the current streak count.
func FormatStreakBanner(streak int) string {
	if streak == 0 {
		return streakZeroStyle.Render("Streak: 0 days. Start today.")
	}
	unit := "days"
	if streak == 1 {
		unit = "day"
	}
	return streakLiveStyle.Render(fmt.Sprintf("Streak: %d %s", streak, unit))
}

// FormatHistoryGrid renders one row per task over the given days, oldest
// first, with today's column highlighted.
func FormatHistoryGrid(tasks []protocol.Task, log protocol.Log, days []dates.Key, today dates.Key) string {
	labelWidth := 0
	for _, task := range tasks {
		if len(task.Label) > labelWidth {
			labelWidth = len(task.Label)
		}
	}

	var builder strings.Builder
	for _, task := range tasks {
		builder.WriteString(gridTaskStyle.Render(fmt.Sprintf("%-*s", labelWidth, task.Label)))
		builder.WriteString("  ")
		for _, day := range days {
			mark := gridMissedMark
			style := gridMissedStyle
			if log.Done(day, task.ID) {
				mark = gridCompleteMark
				style = gridDoneStyle
			}
			if day == today {
				style = gridTodayStyle
			}
			builder.WriteString(style.Render(mark))
		}
		builder.WriteByte('\n')
	}
	return builder.String()
}

// FormatDayChecklist renders today's tasks with completion marks.
func FormatDayChecklist(tasks []protocol.Task, log protocol.Log, day dates.Key) string {
	var builder strings.Builder
	for _, task := range tasks {
		mark := "[ ]"
		if log.Done(day, task.ID) {
			mark = "[x]"
		}
		fmt.Fprintf(&builder, "%s %s (%s)  %s\n", mark, task.ID, task.Duration, task.Label)
	}
	return builder.String()
}

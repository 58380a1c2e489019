package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/dates"
	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
	"github.com/Vanndavid/Mission-Employed/internal/ui"
	"github.com/Vanndavid/Mission-Employed/protocol"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the daily protocol tasks",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

var logCmd = &cobra.Command{
	Use:   "log <task>",
	Short: "Toggle a protocol task for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runLog,
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Print the current protocol streak",
	Args:  cobra.NoArgs,
	RunE:  runStreak,
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show today's protocol, the streak, and recent history",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

var (
	logDate          string
	dashboardHistory int
)

func init() {
	rootCmd.AddCommand(tasksCmd, logCmd, streakCmd, dashboardCmd)

	logCmd.Flags().StringVar(&logDate, "date", "", "Day to toggle (YYYY-MM-DD, default today)")
	dashboardCmd.Flags().IntVar(&dashboardHistory, "history", 30, "Days of history to show")
}

func runTasks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tasks, err := protocolTasks(cfg)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{task.ID, task.Duration, task.Label})
	}
	fmt.Print(ui.FormatTable([]string{"ID", "DURATION", "TASK"}, rows))
	return nil
}

func runLog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tasks, err := protocolTasks(cfg)
	if err != nil {
		return err
	}

	taskID := args[0]
	task, ok := protocol.FindTask(tasks, taskID)
	if !ok {
		return fmt.Errorf("unknown task %q (run 'mission tasks')", taskID)
	}

	date, err := parseDateFlag(logDate)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	var done bool
	err = store.Update(func(st *statestore.AppState) error {
		log := protocol.Log(st.DailyLogs)
		log.Toggle(date, task.ID)
		st.DailyLogs = log
		done = log.Done(date, task.ID)
		return nil
	})
	if err != nil {
		return err
	}

	if done {
		fmt.Printf("%s done for %s\n", task.ID, date)
	} else {
		fmt.Printf("%s cleared for %s\n", task.ID, date)
	}
	return nil
}

func runStreak(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := protocolMode(cfg)
	if err != nil {
		return err
	}
	tasks, err := protocolTasks(cfg)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	st, err := store.Load()
	if err != nil {
		return err
	}

	log := protocol.Log(st.DailyLogs)
	fmt.Println(log.Streak(tasks, timeNow(), mode))
	return nil
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mode, err := protocolMode(cfg)
	if err != nil {
		return err
	}
	tasks, err := protocolTasks(cfg)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	st, err := store.Load()
	if err != nil {
		return err
	}

	now := timeNow()
	today := dates.Today(now)
	log := protocol.Log(st.DailyLogs)

	fmt.Println(ui.FormatStreakBanner(log.Streak(tasks, now, mode)))
	fmt.Println()
	fmt.Printf("Today (%s):\n", today)
	fmt.Print(ui.FormatDayChecklist(tasks, log, today))

	if dashboardHistory > 0 {
		days := dates.Recent(now, dashboardHistory, mode)
		// Oldest on the left.
		for i, j := 0, len(days)-1; i < j; i, j = i+1, j-1 {
			days[i], days[j] = days[j], days[i]
		}
		fmt.Println()
		fmt.Print(ui.FormatHistoryGrid(tasks, log, days, today))
	}
	return nil
}

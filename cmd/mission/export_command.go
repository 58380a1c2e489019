package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write a JSON snapshot of all mission data",
	Long: `Export writes the full state (applications, daily logs, behavioral
answers, criteria) as JSON. With no file argument it writes ` + statestore.ExportFileName + `
in the current directory; use '-' for stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	target := statestore.ExportFileName
	if len(args) > 0 {
		target = args[0]
	}

	if target == "-" {
		return store.Export(os.Stdout)
	}

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := store.Export(file); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}
	fmt.Printf("Exported to %s\n", target)
	return nil
}

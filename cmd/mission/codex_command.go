package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/codex"
)

var codexCmd = &cobra.Command{
	Use:   "codex",
	Short: "Print the mental rules",
	Args:  cobra.NoArgs,
	RunE:  runCodex,
}

func init() {
	rootCmd.AddCommand(codexCmd)
}

func runCodex(cmd *cobra.Command, args []string) error {
	rules := codex.MentalRules()

	fmt.Println("DON'T:")
	for _, rule := range rules.Donts {
		fmt.Printf("  - %s\n", rule)
	}
	fmt.Println()
	fmt.Println("DO:")
	for _, rule := range rules.Dos {
		fmt.Printf("  - %s\n", rule)
	}
	return nil
}

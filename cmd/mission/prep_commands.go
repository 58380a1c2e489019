package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/prep"
)

var prepCmd = &cobra.Command{
	Use:   "prep",
	Short: "Maintain bullet-point answers for the behavioral themes",
}

var prepListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all themes and their prepared bullets",
	Args:  cobra.NoArgs,
	RunE:  runPrepList,
}

var prepShowCmd = &cobra.Command{
	Use:   "show <theme>",
	Short: "Show the prepared bullets for one theme",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrepShow,
}

var prepAddCmd = &cobra.Command{
	Use:   "add <theme> <bullet>",
	Short: "Add a bullet to a theme",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrepAdd,
}

var prepRmCmd = &cobra.Command{
	Use:   "rm <theme> <index>",
	Short: "Remove a bullet from a theme by its 1-based index",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrepRm,
}

func init() {
	rootCmd.AddCommand(prepCmd)
	prepCmd.AddCommand(prepListCmd, prepShowCmd, prepAddCmd, prepRmCmd)
}

func newPrepManager() (*prep.Manager, error) {
	store, err := openStore()
	if err != nil {
		return nil, err
	}
	return prep.NewManager(store), nil
}

func resolveTheme(id string) (prep.Theme, error) {
	theme, ok := prep.FindTheme(id)
	if !ok {
		ids := make([]string, 0, len(prep.DefaultThemes()))
		for _, t := range prep.DefaultThemes() {
			ids = append(ids, t.ID)
		}
		return prep.Theme{}, fmt.Errorf("unknown theme %q (valid: %s)", id, strings.Join(ids, ", "))
	}
	return theme, nil
}

func printAnswer(theme prep.Theme, answer prep.Answer) {
	fmt.Printf("%s (%s)\n", theme.Label, theme.ID)
	empty := true
	for i, bullet := range answer.Bullets {
		if strings.TrimSpace(bullet) == "" {
			continue
		}
		empty = false
		fmt.Printf("  %d. %s\n", i+1, bullet)
	}
	if empty {
		fmt.Println("  (no bullets yet)")
	}
}

func runPrepList(cmd *cobra.Command, args []string) error {
	manager, err := newPrepManager()
	if err != nil {
		return err
	}
	answers, err := manager.Answers()
	if err != nil {
		return err
	}

	for i, answer := range answers {
		if i > 0 {
			fmt.Println()
		}
		theme, _ := prep.FindTheme(answer.ThemeID)
		printAnswer(theme, answer)
	}
	return nil
}

func runPrepShow(cmd *cobra.Command, args []string) error {
	theme, err := resolveTheme(args[0])
	if err != nil {
		return err
	}
	manager, err := newPrepManager()
	if err != nil {
		return err
	}
	answer, err := manager.Answer(theme.ID)
	if err != nil {
		return err
	}
	printAnswer(theme, answer)
	return nil
}

func runPrepAdd(cmd *cobra.Command, args []string) error {
	theme, err := resolveTheme(args[0])
	if err != nil {
		return err
	}
	bullet := strings.TrimSpace(args[1])
	if bullet == "" {
		return fmt.Errorf("empty bullet")
	}

	manager, err := newPrepManager()
	if err != nil {
		return err
	}
	if err := manager.AddBullet(theme.ID, bullet); err != nil {
		return err
	}
	fmt.Printf("Added bullet to %s\n", theme.Label)
	return nil
}

func runPrepRm(cmd *cobra.Command, args []string) error {
	theme, err := resolveTheme(args[0])
	if err != nil {
		return err
	}
	index, err := strconv.Atoi(args[1])
	if err != nil || index < 1 {
		return fmt.Errorf("invalid bullet index %q", args[1])
	}

	manager, err := newPrepManager()
	if err != nil {
		return err
	}
	if err := manager.RemoveBullet(theme.ID, index-1); err != nil {
		return err
	}
	fmt.Printf("Removed bullet %d from %s\n", index, theme.Label)
	return nil
}

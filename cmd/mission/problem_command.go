package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/gemini"
	"github.com/Vanndavid/Mission-Employed/internal/markdown"
)

var problemCmd = &cobra.Command{
	Use:   "problem <easy|medium>",
	Short: "Generate a coding problem and evaluate your solution",
	Long: `Problem asks Gemini for a coding problem at the given difficulty. After
the problem prints, paste your solution and press Ctrl-D to get a
critique, or press Ctrl-D immediately to skip evaluation.`,
	Args: cobra.ExactArgs(1),
	RunE: runProblem,
}

func init() {
	rootCmd.AddCommand(problemCmd)
}

func runProblem(cmd *cobra.Command, args []string) error {
	difficulty := gemini.Difficulty(args[0])
	if !difficulty.IsValid() {
		return fmt.Errorf("invalid difficulty %q (valid: easy, medium)", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newGeminiClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	problem, err := client.GenerateCodingProblem(ctx, difficulty)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", problem.Title)
	fmt.Println(string(markdown.SafeRender(outputWidth(), 0, []byte(problem.Description))))
	for _, example := range problem.Examples {
		fmt.Printf("\nExample: %s\n", example)
	}

	fmt.Println("\nPaste your solution, then press Ctrl-D (or Ctrl-D now to skip):")
	solution, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("read solution: %w", err)
	}
	if strings.TrimSpace(string(solution)) == "" {
		return nil
	}

	critique, err := client.EvaluateSolution(ctx, problem.Title, problem.Description, string(solution))
	if err != nil {
		return err
	}
	fmt.Println("\nCritique:")
	fmt.Println(string(markdown.SafeRender(outputWidth(), 2, []byte(critique))))
	return nil
}

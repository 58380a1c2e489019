package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/internal/markdown"
	"github.com/Vanndavid/Mission-Employed/interview"
	"github.com/Vanndavid/Mission-Employed/practice"
	"github.com/Vanndavid/Mission-Employed/prep"
	"github.com/Vanndavid/Mission-Employed/record"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a full mock behavioral interview",
	Long: `Interview walks through every behavioral theme in order. Each round asks
one question and records your answer; after the last round Gemini
evaluates the whole session and prints an aggregate report.`,
	Args: cobra.NoArgs,
	RunE: runInterview,
}

var (
	interviewText  bool
	interviewSpeak bool
)

func init() {
	rootCmd.AddCommand(interviewCmd)

	interviewCmd.Flags().BoolVar(&interviewText, "text", false, "Type answers instead of speaking them")
	interviewCmd.Flags().BoolVar(&interviewSpeak, "speak", false, "Read each question aloud")
}

func runInterview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newGeminiClient(cfg)
	if err != nil {
		return err
	}

	var recorder record.Recorder
	if !interviewText {
		recorder = newRecorder(cfg)
	}
	session := practice.NewSession(client, client, recorder)
	orchestrator := interview.NewOrchestrator(session, client, nil)
	defer orchestrator.Teardown()

	ctx := cmd.Context()
	if err := orchestrator.Start(ctx); err != nil {
		return err
	}

	total := len(prep.DefaultThemes())
	round := 1
	for !orchestrator.Complete() {
		theme, err := orchestrator.CurrentTheme()
		if err != nil {
			return err
		}

		snapshot := session.Snapshot()
		if snapshot.State == practice.StateError {
			return fmt.Errorf("generate question: %s", snapshot.ErrMessage)
		}

		fmt.Printf("Round %d of %d: %s\n\n%s\n\n", round, total, theme.Label, snapshot.Prompt)
		if interviewSpeak {
			if err := speak(ctx, client, cfg, snapshot.Prompt); err != nil {
				fmt.Fprintf(os.Stderr, "playback unavailable: %v\n", err)
			}
		}

		if err := captureAnswer(ctx, session, interviewText, os.Stdin); err != nil {
			return err
		}
		snapshot = session.Snapshot()
		if snapshot.State == practice.StateError {
			return fmt.Errorf("evaluate answer: %s", snapshot.ErrMessage)
		}
		printEvaluation(snapshot.Evaluation, interviewText)
		fmt.Println()

		if err := orchestrator.Advance(ctx); err != nil {
			return err
		}
		round++
	}

	report, err := orchestrator.FinalReport()
	if err != nil {
		return err
	}
	fmt.Println("Final report:")
	fmt.Println(string(markdown.SafeRender(outputWidth(), 2, []byte(report))))
	return nil
}

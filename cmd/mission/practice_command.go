package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vanndavid/Mission-Employed/gemini"
	"github.com/Vanndavid/Mission-Employed/internal/config"
	"github.com/Vanndavid/Mission-Employed/internal/markdown"
	"github.com/Vanndavid/Mission-Employed/practice"
	"github.com/Vanndavid/Mission-Employed/prep"
	"github.com/Vanndavid/Mission-Employed/record"
)

var practiceCmd = &cobra.Command{
	Use:   "practice [theme]",
	Short: "Run one behavioral practice round",
	Long: `Practice asks Gemini for a behavioral question on the given theme (or a
random one), records your spoken answer, and prints a transcript with a
critique. With --text the answer is typed instead of spoken.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPractice,
}

var (
	practiceText  bool
	practiceSpeak bool
)

func init() {
	rootCmd.AddCommand(practiceCmd)

	practiceCmd.Flags().BoolVar(&practiceText, "text", false, "Type the answer instead of speaking it")
	practiceCmd.Flags().BoolVar(&practiceSpeak, "speak", false, "Read the question aloud")
}

func runPractice(cmd *cobra.Command, args []string) error {
	theme, err := pickTheme(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newGeminiClient(cfg)
	if err != nil {
		return err
	}

	var recorder record.Recorder
	if !practiceText {
		recorder = newRecorder(cfg)
	}
	session := practice.NewSession(client, client, recorder)
	defer session.Reset()

	ctx := cmd.Context()
	if err := session.RequestPrompt(ctx, theme.Label); err != nil {
		return err
	}
	snapshot := session.Snapshot()
	if snapshot.State == practice.StateError {
		return fmt.Errorf("generate question: %s", snapshot.ErrMessage)
	}

	fmt.Printf("Theme: %s\n\n%s\n\n", theme.Label, snapshot.Prompt)
	if practiceSpeak {
		if err := speak(ctx, client, cfg, snapshot.Prompt); err != nil {
			fmt.Fprintf(os.Stderr, "playback unavailable: %v\n", err)
		}
	}

	if err := captureAnswer(ctx, session, practiceText, os.Stdin); err != nil {
		return err
	}

	snapshot = session.Snapshot()
	if snapshot.State == practice.StateError {
		return fmt.Errorf("evaluate answer: %s", snapshot.ErrMessage)
	}
	printEvaluation(snapshot.Evaluation, practiceText)
	return nil
}

func pickTheme(args []string) (prep.Theme, error) {
	if len(args) > 0 {
		return resolveTheme(args[0])
	}
	themes := prep.DefaultThemes()
	return themes[rand.Intn(len(themes))], nil
}

// captureAnswer collects the candidate's answer, either typed (until EOF)
// or spoken (recording stops on Enter).
func captureAnswer(ctx context.Context, session *practice.Session, text bool, stdin io.Reader) error {
	if text {
		fmt.Println("Type your answer, then press Ctrl-D:")
		answer, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read answer: %w", err)
		}
		if strings.TrimSpace(string(answer)) == "" {
			return fmt.Errorf("empty answer")
		}
		return session.SubmitText(ctx, string(answer))
	}

	if err := session.BeginCapture(ctx); err != nil {
		if errors.Is(err, record.ErrPermission) {
			return fmt.Errorf("%w (try --text)", err)
		}
		return err
	}
	fmt.Println("Recording. Press Enter to stop.")
	waitForEnter(stdin)
	fmt.Println("Transcribing...")
	return session.EndCapture(ctx)
}

func waitForEnter(stdin io.Reader) {
	reader := bufio.NewReader(stdin)
	_, _ = reader.ReadString('\n')
}

func printEvaluation(evaluation *gemini.Evaluation, typed bool) {
	if evaluation == nil {
		return
	}
	if !typed && strings.TrimSpace(evaluation.Transcript) != "" {
		fmt.Printf("Transcript:\n%s\n\n", evaluation.Transcript)
	}
	fmt.Println("Critique:")
	fmt.Println(string(markdown.SafeRender(outputWidth(), 2, []byte(evaluation.Critique))))
}

func speak(ctx context.Context, client *gemini.Client, cfg *config.Config, text string) error {
	audio, err := client.SynthesizeSpeech(ctx, text)
	if err != nil {
		return err
	}
	return record.NewPlayer(cfg.Audio.PlayCommand).Play(ctx, audio)
}

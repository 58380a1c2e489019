package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/Vanndavid/Mission-Employed/dates"
	"github.com/Vanndavid/Mission-Employed/gemini"
	"github.com/Vanndavid/Mission-Employed/internal/config"
	"github.com/Vanndavid/Mission-Employed/internal/paths"
	statestore "github.com/Vanndavid/Mission-Employed/internal/state"
	"github.com/Vanndavid/Mission-Employed/protocol"
	"github.com/Vanndavid/Mission-Employed/record"
)

var timeNow = time.Now

// openStore opens the state store in the default state directory.
func openStore() (*statestore.Store, error) {
	dir, err := paths.DefaultStateDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return statestore.NewStore(dir), nil
}

// loadConfig loads mission.toml from the working directory and the
// global config file.
func loadConfig() (*config.Config, error) {
	dir, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(dir)
}

// protocolMode resolves the configured streak mode.
func protocolMode(cfg *config.Config) (dates.Mode, error) {
	if cfg.Protocol.Mode == "" {
		return dates.WeekdaysOnly, nil
	}
	mode := dates.Mode(cfg.Protocol.Mode)
	if !mode.IsValid() {
		return "", fmt.Errorf("invalid protocol mode %q (valid: %v)", cfg.Protocol.Mode, dates.ValidModes())
	}
	return mode, nil
}

// protocolTasks resolves the configured daily task set, falling back to
// the built-in protocol.
func protocolTasks(cfg *config.Config) ([]protocol.Task, error) {
	if len(cfg.Protocol.Tasks) == 0 {
		return protocol.DefaultTasks(), nil
	}

	tasks := make([]protocol.Task, 0, len(cfg.Protocol.Tasks))
	for _, task := range cfg.Protocol.Tasks {
		if task.ID == "" {
			return nil, fmt.Errorf("configured task with empty id")
		}
		tasks = append(tasks, protocol.Task{ID: task.ID, Label: task.Label, Duration: task.Duration})
	}
	return tasks, nil
}

// newGeminiClient builds the backend client from config and environment.
func newGeminiClient(cfg *config.Config) (*gemini.Client, error) {
	keyEnv := cfg.Gemini.APIKeyEnv
	if keyEnv == "" {
		keyEnv = gemini.APIKeyEnv
	}
	key := os.Getenv(keyEnv)
	if key == "" {
		return nil, fmt.Errorf("no API key: set %s", keyEnv)
	}
	return gemini.NewClient(gemini.Options{
		BaseURL:     cfg.Gemini.BaseURL,
		Model:       cfg.Gemini.Model,
		SpeechModel: cfg.Gemini.SpeechModel,
		APIKey:      key,
	}), nil
}

// newRecorder builds the audio recorder from config.
func newRecorder(cfg *config.Config) *record.ExecRecorder {
	return record.NewExecRecorder(cfg.Audio.RecordCommand)
}

// parseDateFlag validates a --date value, defaulting to today.
func parseDateFlag(value string) (dates.Key, error) {
	if value == "" {
		return dates.Today(timeNow()), nil
	}
	key := dates.Key(value)
	if _, err := key.Time(); err != nil {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return key, nil
}

// outputWidth returns the terminal width for rendered output, or a
// conservative default when stdout is not a terminal.
func outputWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

func encodeJSONToStdout(value any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

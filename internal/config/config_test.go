package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Vanndavid/Mission-Employed/internal/config"
	"github.com/Vanndavid/Mission-Employed/internal/testsupport"
)

func TestLoad_NotFound(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg == nil {
		t.Fatal("expected non-nil config")
	}
	if cfg.Protocol.Mode != "" {
		t.Error("expected empty protocol mode")
	}
	if cfg.Pipeline.TargetScore != 0 {
		t.Error("expected zero target score")
	}
}

func TestLoad_Full(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[protocol]
mode = "every_day"

[pipeline]
target-score = 5

[gemini]
base-url = "http://localhost:9999"
model = "test-model"
api-key-env = "TEST_KEY"

[audio]
record-command = ["sox", "-d", "-t", "raw", "-"]

[serve]
addr = "127.0.0.1:9000"
`

	if err := os.WriteFile(filepath.Join(tmpDir, "mission.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Protocol.Mode != "every_day" {
		t.Errorf("Mode = %q, expected %q", cfg.Protocol.Mode, "every_day")
	}
	if cfg.Pipeline.TargetScore != 5 {
		t.Errorf("TargetScore = %d, expected 5", cfg.Pipeline.TargetScore)
	}
	if cfg.Gemini.BaseURL != "http://localhost:9999" {
		t.Errorf("BaseURL = %q", cfg.Gemini.BaseURL)
	}
	if cfg.Gemini.APIKeyEnv != "TEST_KEY" {
		t.Errorf("APIKeyEnv = %q", cfg.Gemini.APIKeyEnv)
	}
	if len(cfg.Audio.RecordCommand) != 5 || cfg.Audio.RecordCommand[0] != "sox" {
		t.Errorf("RecordCommand = %v", cfg.Audio.RecordCommand)
	}
	if cfg.Serve.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Serve.Addr)
	}
}

func TestLoad_CustomTasks(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `
[[protocol.tasks]]
id = "coding_easy"
label = "1 Easy Problem"
duration = "30m"

[[protocol.tasks]]
id = "outreach"
label = "3 Cold Applications"
duration = "20m"
`

	if err := os.WriteFile(filepath.Join(tmpDir, "mission.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if len(cfg.Protocol.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(cfg.Protocol.Tasks))
	}
	if cfg.Protocol.Tasks[1].ID != "outreach" {
		t.Errorf("Tasks[1].ID = %q", cfg.Protocol.Tasks[1].ID)
	}
	if cfg.Protocol.Tasks[1].Label != "3 Cold Applications" {
		t.Errorf("Tasks[1].Label = %q", cfg.Protocol.Tasks[1].Label)
	}
	if cfg.Protocol.Tasks[0].Duration != "30m" {
		t.Errorf("Tasks[0].Duration = %q", cfg.Protocol.Tasks[0].Duration)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	configContent := `this is not valid toml [`

	if err := os.WriteFile(filepath.Join(tmpDir, "mission.toml"), []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := config.Load(tmpDir)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestLoad_GlobalConfig(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	globalContent := `
[protocol]
mode = "every_day"

[gemini]
model = "global-model"
`
	globalPath := filepath.Join(homeDir, ".config", "mission", "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Protocol.Mode != "every_day" {
		t.Errorf("Mode = %q, expected global value", cfg.Protocol.Mode)
	}
	if cfg.Gemini.Model != "global-model" {
		t.Errorf("Model = %q, expected global value", cfg.Gemini.Model)
	}
}

func TestLoad_ProjectOverridesGlobal(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	globalContent := `
[protocol]
mode = "every_day"

[pipeline]
target-score = 3

[gemini]
model = "global-model"
`
	globalPath := filepath.Join(homeDir, ".config", "mission", "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	projectContent := `
[gemini]
model = "project-model"
`
	if err := os.WriteFile(filepath.Join(tmpDir, "mission.toml"), []byte(projectContent), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// The project file wins where it defines a value.
	if cfg.Gemini.Model != "project-model" {
		t.Errorf("Model = %q, expected project value", cfg.Gemini.Model)
	}
	// Keys the project file leaves out fall through to the global file.
	if cfg.Protocol.Mode != "every_day" {
		t.Errorf("Mode = %q, expected global value", cfg.Protocol.Mode)
	}
	if cfg.Pipeline.TargetScore != 3 {
		t.Errorf("TargetScore = %d, expected global value", cfg.Pipeline.TargetScore)
	}
}

func TestLoad_ProjectOverridesWithEmpty(t *testing.T) {
	homeDir := testsupport.SetupTestHome(t)
	tmpDir := t.TempDir()

	globalContent := `
[serve]
addr = "127.0.0.1:9000"
`
	globalPath := filepath.Join(homeDir, ".config", "mission", "config.toml")
	if err := os.WriteFile(globalPath, []byte(globalContent), 0644); err != nil {
		t.Fatalf("failed to write global config: %v", err)
	}

	// An explicitly empty project value overrides the global one.
	projectContent := `
[serve]
addr = ""
`
	if err := os.WriteFile(filepath.Join(tmpDir, "mission.toml"), []byte(projectContent), 0644); err != nil {
		t.Fatalf("failed to write project config: %v", err)
	}

	cfg, err := config.Load(tmpDir)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Serve.Addr != "" {
		t.Errorf("Addr = %q, expected empty override", cfg.Serve.Addr)
	}
}

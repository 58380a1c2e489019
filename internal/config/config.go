// Package config handles loading mission.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Vanndavid/Mission-Employed/internal/paths"
)

// Config represents the mission.toml configuration file.
type Config struct {
	Protocol Protocol `toml:"protocol"`
	Pipeline Pipeline `toml:"pipeline"`
	Gemini   Gemini   `toml:"gemini"`
	Audio    Audio    `toml:"audio"`
	Serve    Serve    `toml:"serve"`
}

// Protocol configures the daily training protocol.
type Protocol struct {
	// Mode selects which days count toward the streak:
	// "weekdays_only" (the default) or "every_day".
	Mode string `toml:"mode"`

	// Tasks replaces the built-in daily task set.
	Tasks []Task `toml:"tasks"`
}

// Task is one configured daily activity.
type Task struct {
	ID       string `toml:"id"`
	Label    string `toml:"label"`
	Duration string `toml:"duration"`
}

// Pipeline configures the application pipeline.
type Pipeline struct {
	// TargetScore is the fit score a posting should reach before applying.
	TargetScore int `toml:"target-score"`
}

// Gemini configures the generative backend client.
type Gemini struct {
	// BaseURL overrides the API endpoint.
	BaseURL string `toml:"base-url"`
	// Model overrides the text/evaluation model.
	Model string `toml:"model"`
	// SpeechModel overrides the text-to-speech model.
	SpeechModel string `toml:"speech-model"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api-key-env"`
}

// Audio configures the external capture and playback binaries.
type Audio struct {
	// RecordCommand captures raw PCM on stdout until interrupted.
	RecordCommand []string `toml:"record-command"`
	// PlayCommand plays raw PCM from stdin.
	PlayCommand []string `toml:"play-command"`
}

// Serve configures the local dashboard server.
type Serve struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// Load loads configuration from the working directory and the global
// config file. Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, "mission.toml"))
	if err != nil {
		return nil, err
	}

	return mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Protocol.Mode = mergeString(projectMeta.IsDefined("protocol", "mode"), projectCfg.Protocol.Mode, globalCfg.Protocol.Mode)
	if projectMeta.IsDefined("protocol", "tasks") {
		merged.Protocol.Tasks = append([]Task(nil), projectCfg.Protocol.Tasks...)
	} else if globalMeta.IsDefined("protocol", "tasks") {
		merged.Protocol.Tasks = append([]Task(nil), globalCfg.Protocol.Tasks...)
	}
	merged.Gemini.BaseURL = mergeString(projectMeta.IsDefined("gemini", "base-url"), projectCfg.Gemini.BaseURL, globalCfg.Gemini.BaseURL)
	merged.Gemini.Model = mergeString(projectMeta.IsDefined("gemini", "model"), projectCfg.Gemini.Model, globalCfg.Gemini.Model)
	merged.Gemini.SpeechModel = mergeString(projectMeta.IsDefined("gemini", "speech-model"), projectCfg.Gemini.SpeechModel, globalCfg.Gemini.SpeechModel)
	merged.Gemini.APIKeyEnv = mergeString(projectMeta.IsDefined("gemini", "api-key-env"), projectCfg.Gemini.APIKeyEnv, globalCfg.Gemini.APIKeyEnv)
	merged.Serve.Addr = mergeString(projectMeta.IsDefined("serve", "addr"), projectCfg.Serve.Addr, globalCfg.Serve.Addr)

	if projectMeta.IsDefined("pipeline", "target-score") {
		merged.Pipeline.TargetScore = projectCfg.Pipeline.TargetScore
	} else if globalMeta.IsDefined("pipeline", "target-score") {
		merged.Pipeline.TargetScore = globalCfg.Pipeline.TargetScore
	}

	if projectMeta.IsDefined("audio", "record-command") {
		merged.Audio.RecordCommand = append([]string(nil), projectCfg.Audio.RecordCommand...)
	} else if globalMeta.IsDefined("audio", "record-command") {
		merged.Audio.RecordCommand = append([]string(nil), globalCfg.Audio.RecordCommand...)
	}
	if projectMeta.IsDefined("audio", "play-command") {
		merged.Audio.PlayCommand = append([]string(nil), projectCfg.Audio.PlayCommand...)
	} else if globalMeta.IsDefined("audio", "play-command") {
		merged.Audio.PlayCommand = append([]string(nil), globalCfg.Audio.PlayCommand...)
	}

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

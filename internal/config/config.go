// Package config loads client configuration from a YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	envBaseURL     = "FABLE_BASE_URL"
	envSessionID   = "FABLE_SESSION_ID"
	envCharacterID = "FABLE_CHARACTER_ID"
	envWorldbooks  = "FABLE_WORLDBOOK_IDS"
)

// Config carries everything needed to open turn streams against a
// generation service.
type Config struct {
	BaseURL      string   `yaml:"base_url"`
	SessionID    string   `yaml:"session_id"`
	CharacterID  string   `yaml:"character_id"`
	WorldbookIDs []string `yaml:"worldbook_ids"`

	// PlainChat routes turns through the plain chat endpoint instead of the
	// staged pipeline.
	PlainChat bool `yaml:"plain_chat"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{BaseURL: "http://localhost:8000"}
}

// Load reads the configuration file at path, falling back to defaults when
// the path is empty or the file does not exist, then applies environment
// overrides (FABLE_BASE_URL, FABLE_SESSION_ID, FABLE_CHARACTER_ID and a
// comma-separated FABLE_WORLDBOOK_IDS).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.BaseURL == "" {
		return Config{}, fmt.Errorf("base_url is required")
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if baseURL, ok := os.LookupEnv(envBaseURL); ok && baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if sessionID, ok := os.LookupEnv(envSessionID); ok && sessionID != "" {
		cfg.SessionID = sessionID
	}
	if characterID, ok := os.LookupEnv(envCharacterID); ok && characterID != "" {
		cfg.CharacterID = characterID
	}
	if worldbooks, ok := os.LookupEnv(envWorldbooks); ok && worldbooks != "" {
		ids := []string{}
		for _, id := range strings.Split(worldbooks, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
		cfg.WorldbookIDs = ids
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadWithoutPathUsesDefaults(t *testing.T) {
	t.Setenv(envBaseURL, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("expected the default base url, got %q", cfg.BaseURL)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
base_url: https://fable.example/
session_id: session-1
character_id: mira
worldbook_ids:
  - wb-1
  - wb-2
plain_chat: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected the file to load, got %v", err)
	}

	if cfg.BaseURL != "https://fable.example" {
		t.Fatalf("expected a trimmed base url, got %q", cfg.BaseURL)
	}
	if cfg.SessionID != "session-1" || cfg.CharacterID != "mira" || !cfg.PlainChat {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.WorldbookIDs) != 2 || cfg.WorldbookIDs[0] != "wb-1" {
		t.Fatalf("unexpected worldbook ids: %v", cfg.WorldbookIDs)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("expected a missing file to fall back to defaults, got %v", err)
	}
	if cfg.BaseURL != "http://localhost:8000" {
		t.Fatalf("expected the default base url, got %q", cfg.BaseURL)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfigFile(t, "base_url: [not: valid")

	if _, err := Load(path); err == nil {
		t.Fatalf("expected a parse error")
	}
}

func TestEnvironmentOverridesFileValues(t *testing.T) {
	path := writeConfigFile(t, `
base_url: https://from-file.example
session_id: file-session
`)

	t.Setenv(envBaseURL, "https://from-env.example")
	t.Setenv(envSessionID, "env-session")
	t.Setenv(envWorldbooks, "wb-1, wb-2,,wb-3")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("expected the config to load, got %v", err)
	}

	if cfg.BaseURL != "https://from-env.example" {
		t.Fatalf("expected the environment base url, got %q", cfg.BaseURL)
	}
	if cfg.SessionID != "env-session" {
		t.Fatalf("expected the environment session id, got %q", cfg.SessionID)
	}
	if len(cfg.WorldbookIDs) != 3 || cfg.WorldbookIDs[2] != "wb-3" {
		t.Fatalf("expected trimmed worldbook ids, got %v", cfg.WorldbookIDs)
	}
}

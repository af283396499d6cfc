package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rascan/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[retroachievements]
api_key = "secret"
`)

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be reported as existing")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %s, got %s", path, resolved)
	}
	if cfg.RetroAchievements.BaseURL != "https://retroachievements.org" {
		t.Fatalf("unexpected base url %q", cfg.RetroAchievements.BaseURL)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults %+v", cfg.Logging)
	}
	if cfg.Hasher.DownloadTimeout != 300 {
		t.Fatalf("unexpected download timeout %d", cfg.Hasher.DownloadTimeout)
	}
	if len(cfg.Platforms) == 0 {
		t.Fatal("expected built-in platform table")
	}
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	t.Setenv("RA_API_KEY", "")

	path := writeConfig(t, `
[paths]
library_dir = "/tmp/roms"
`)

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
	if !strings.Contains(err.Error(), "retroachievements.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv("RA_API_KEY", "env-key")

	path := writeConfig(t, "")

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RetroAchievements.APIKey != "env-key" {
		t.Fatalf("expected env key, got %q", cfg.RetroAchievements.APIKey)
	}
}

func TestLoadExpandsPaths(t *testing.T) {
	path := writeConfig(t, `
[paths]
library_dir = "~/roms"

[retroachievements]
api_key = "secret"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("home dir: %v", err)
	}
	if cfg.Paths.LibraryDir != filepath.Join(home, "roms") {
		t.Fatalf("expected expanded library dir, got %q", cfg.Paths.LibraryDir)
	}
}

func TestLoadPlatformTableReplacesDefaults(t *testing.T) {
	path := writeConfig(t, `
[retroachievements]
api_key = "secret"

[[platforms]]
name = "SNES/Super Famicom"
aliases = ["snes", " sfc "]

[[platforms]]
name = "32X"
override = "32X"
`)

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Platforms) != 2 {
		t.Fatalf("expected 2 platforms, got %d", len(cfg.Platforms))
	}
	if got := cfg.Platforms[0].Aliases; len(got) != 2 || got[1] != "sfc" {
		t.Fatalf("expected trimmed aliases, got %v", got)
	}
	if cfg.Platforms[1].Override != "32X" {
		t.Fatalf("expected override preserved, got %q", cfg.Platforms[1].Override)
	}
}

func TestLoadRejectsDuplicatePlatformNames(t *testing.T) {
	path := writeConfig(t, `
[retroachievements]
api_key = "secret"

[[platforms]]
name = "Game Boy"

[[platforms]]
name = "game boy"
`)

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate canonical name") {
		t.Fatalf("expected duplicate-name error, got %v", err)
	}
}

func TestLoadRejectsNonPositiveTimeouts(t *testing.T) {
	path := writeConfig(t, `
[retroachievements]
api_key = "secret"

[hasher]
hash_timeout = -5
`)

	// Negative values are replaced by defaults during normalization, so this
	// loads cleanly rather than erroring.
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Hasher.HashTimeout != 120 {
		t.Fatalf("expected default hash timeout, got %d", cfg.Hasher.HashTimeout)
	}
}

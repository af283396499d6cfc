// Package testsupport provides shared helpers for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"rascan/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The library root exists and is empty; tests populate it themselves.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.RetroAchievements.APIKey = "test-key"
	cfgVal.Paths.LibraryDir = filepath.Join(base, "library")
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Hasher.BinaryPath = filepath.Join(base, "tools", "RAHasher")

	for _, dir := range []string{cfgVal.Paths.LibraryDir, cfgVal.Paths.OutputDir, cfgVal.Paths.LogDir, filepath.Dir(cfgVal.Hasher.BinaryPath)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	// A stub hasher keeps tool checks from reaching the network.
	if err := os.WriteFile(cfgVal.Hasher.BinaryPath, []byte("#!/bin/sh\nexit 1\n"), 0o755); err != nil {
		t.Fatalf("write stub hasher: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithAPIKey sets the RetroAchievements API key on the test config.
func WithAPIKey(key string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.RetroAchievements.APIKey = key
	}
}

// WithPlatforms replaces the platform mapping table on the test config.
func WithPlatforms(platforms []config.Platform) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Platforms = platforms
	}
}

// WithMissingOnly toggles the missing-only report filter on the test config.
func WithMissingOnly(missingOnly bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Report.MissingOnly = missingOnly
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LibraryDir)
}

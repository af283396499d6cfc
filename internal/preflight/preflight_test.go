package preflight_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rascan/internal/preflight"
	"rascan/internal/testsupport"
)

type staticCredential bool

func (c staticCredential) ValidateCredential(ctx context.Context) bool { return bool(c) }

type staticTool struct{ err error }

func (t staticTool) EnsureTool(ctx context.Context) error { return t.err }

func TestRunAllPassesWithHealthyEnvironment(t *testing.T) {
	t.Parallel()

	cfg := testsupport.NewConfig(t)
	results := preflight.RunAll(context.Background(), cfg, staticCredential(true), staticTool{})

	if !preflight.Passed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
	if len(results) != 5 {
		t.Fatalf("expected 5 checks, got %d", len(results))
	}
}

func TestRunAllFailsOnMissingLibrary(t *testing.T) {
	t.Parallel()

	cfg := testsupport.NewConfig(t)
	cfg.Paths.LibraryDir = filepath.Join(t.TempDir(), "does-not-exist")

	results := preflight.RunAll(context.Background(), cfg, staticCredential(true), staticTool{})
	if preflight.Passed(results) {
		t.Fatal("expected library check to fail")
	}
	if results[0].Passed {
		t.Fatalf("library check should fail: %+v", results[0])
	}
}

func TestRunAllFailsOnRejectedCredential(t *testing.T) {
	t.Parallel()

	cfg := testsupport.NewConfig(t)
	results := preflight.RunAll(context.Background(), cfg, staticCredential(false), staticTool{})
	if preflight.Passed(results) {
		t.Fatal("expected credential check to fail")
	}
}

func TestRunAllFailsOnToolBootstrapError(t *testing.T) {
	t.Parallel()

	cfg := testsupport.NewConfig(t)
	tool := staticTool{err: errors.New("download failed")}
	results := preflight.RunAll(context.Background(), cfg, staticCredential(true), tool)
	if preflight.Passed(results) {
		t.Fatal("expected tool check to fail")
	}
}

func TestCheckDirectoryWriteCreatesMissingDir(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out")
	result := preflight.CheckDirectoryWrite("Output directory", path)
	if !result.Passed {
		t.Fatalf("expected pass, got %+v", result)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("directory was not created: %v", err)
	}
}

func TestCheckDirectoryReadRejectsFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result := preflight.CheckDirectoryRead("Library root", path)
	if result.Passed {
		t.Fatalf("expected failure for non-directory, got %+v", result)
	}
}

func TestPassedEmptyIsFalse(t *testing.T) {
	t.Parallel()

	if preflight.Passed(nil) {
		t.Fatal("no results must not count as passed")
	}
}

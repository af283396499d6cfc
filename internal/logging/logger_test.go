package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestPrettyHandlerPromotesComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, levelVar))

	NewComponentLogger(logger, "pipeline").Info("scan started", String("run_id", "abc"))

	out := buf.String()
	if !strings.Contains(out, "pipeline: scan started") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if !strings.Contains(out, "run_id=abc") {
		t.Fatalf("expected attribute, got %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Fatalf("component attr should be promoted, got %q", out)
	}
}

func TestPrettyHandlerQuotesValuesWithSpaces(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	levelVar := new(slog.LevelVar)
	logger := slog.New(newPrettyHandler(&buf, levelVar))

	logger.Info("resolved", String("system", "SNES/Super Famicom"))

	if !strings.Contains(buf.String(), `system="SNES/Super Famicom"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"unknown": slog.LevelInfo,
	}
	for input, want := range cases {
		if got := parseLevel(input); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := New(Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNew_DebugOverridesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "error", true)

	logger.Debug("loaded tasks", "count", 3)

	got := buf.String()
	if !strings.Contains(got, "loaded tasks") || !strings.Contains(got, "count=3") {
		t.Errorf("expected debug line, got %q", got)
	}
	if !strings.Contains(got, Prefix) {
		t.Errorf("expected prefix %q, got %q", Prefix, got)
	}
}

func TestNew_DefaultLevelHidesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", false)

	logger.Debug("hidden")
	logger.Info("hidden too")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug": log.DebugLevel,
		"info":  log.InfoLevel,
		"warn":  log.WarnLevel,
		"error": log.ErrorLevel,
		"bogus": log.WarnLevel,
		"":      log.WarnLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFrom(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "debug", false)

	ctx := WithLogger(context.Background(), logger)
	if From(ctx) != logger {
		t.Error("expected logger from context")
	}

	// No logger in context must not panic or print.
	From(context.Background()).Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

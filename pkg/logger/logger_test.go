package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitAndLevelString(t *testing.T) {
	defer Init("info")

	Init("debug")
	if got := LevelString(); got != "debug" {
		t.Fatalf("LevelString() = %q, want %q", got, "debug")
	}
	Init("WARN")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("warning")
	if got := LevelString(); got != "warn" {
		t.Fatalf("LevelString() = %q, want %q", got, "warn")
	}
	Init("Error")
	if got := LevelString(); got != "error" {
		t.Fatalf("LevelString() = %q, want %q", got, "error")
	}
	Init("nonsense")
	if got := LevelString(); got != "info" {
		t.Fatalf("LevelString() = %q, want %q for unknown input", got, "info")
	}
}

func TestLevelFilteringAndStructuredFields(t *testing.T) {
	core, logs := observer.New(Level())
	orig := L()
	SetLogger(zap.New(core).Sugar())
	defer SetLogger(orig)
	defer Init("info")

	Init("warn")
	Debugf("debug-msg")
	Infof("info-msg")
	Warnf("warn-msg %d", 1)
	Errorw("error-msg", "feedbackId", "abc")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries at warn level, got %d", len(entries))
	}
	if entries[0].Message != "warn-msg 1" || entries[0].Level != zapcore.WarnLevel {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].ContextMap()["feedbackId"] != "abc" {
		t.Fatalf("structured field missing: %+v", entries[1].ContextMap())
	}

	Init("info")
	Infow("hello")
	if logs.FilterMessage("hello").Len() != 1 {
		t.Fatalf("info message expected at info level")
	}
}

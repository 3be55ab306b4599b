package logging

import (
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input  string
		expect slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expect {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expect)
		}
	}
}

func TestLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	logger := New(dir, slog.LevelInfo)
	defer func() { _ = logger.Close() }()

	logger.Info("task", "created: \"Protein folding\"")
	logger.Debug("task", "filtered out by level")

	content, err := os.ReadFile(LogPath(dir))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	got := string(content)
	if !strings.Contains(got, "[INFO] [task] created") {
		t.Errorf("log content = %q", got)
	}
	if strings.Contains(got, "filtered out") {
		t.Error("debug entry written despite info level")
	}
}

func TestLogger_Disabled(t *testing.T) {
	logger := New("", slog.LevelDebug)
	// Must not panic or create files.
	logger.Info("task", "ignored")
	if err := logger.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFormatLog(t *testing.T) {
	ts := time.Date(2026, 3, 14, 9, 30, 51, 0, time.UTC)
	got := formatLog(ts, slog.LevelWarn, "store", "corrupt document")
	want := "[2026-03-14 09:30:51] [WARN] [store] corrupt document\n"
	if got != want {
		t.Errorf("formatLog() = %q, want %q", got, want)
	}
}

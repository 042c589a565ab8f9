package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"warn", "warn"},
		{"error", "error"},
		{"info", "info"},
		{"bogus", "info"},
		{"", "info"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "stagecue.log")

	if err := InitWithFileConfig("debug", DefaultFileConfig(logPath), false); err != nil {
		t.Fatalf("InitWithFileConfig() error: %v", err)
	}

	Info("hello from test")
	Sync()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello from test") {
		t.Errorf("log file missing message, got: %s", data)
	}
}

func TestUninitializedLoggerIsSafe(t *testing.T) {
	// The package-level logger defaults to a nop; logging before Init
	// must not panic.
	Debug("no-op")
	Warn("no-op")
	Error("no-op")
}

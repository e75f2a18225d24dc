package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"info", log.InfoLevel},
		{"", log.InfoLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLoggerWithWriter(t *testing.T) {
	t.Setenv("GUARDGEN_LOG_LEVEL", "warn")
	t.Setenv("GUARDGEN_LOG_PREFIX", "gen ")

	var buf bytes.Buffer
	lg := NewLoggerWithWriter(&buf)
	defer lg.Close()

	lg.Info("hidden")
	lg.Warn("or block not translated", "mnemonic", "cmpf.s")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, "gen") || !strings.Contains(out, "mnemonic=cmpf.s") {
		t.Errorf("unexpected log output: %q", out)
	}
}

func TestIsDebug(t *testing.T) {
	t.Setenv("GUARDGEN_LOG_LEVEL", "debug")
	if !IsDebug() {
		t.Error("IsDebug() = false with debug level")
	}
	t.Setenv("GUARDGEN_LOG_LEVEL", "info")
	if IsDebug() {
		t.Error("IsDebug() = true with info level")
	}
}

package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sadopc/apptime/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"info":  zerolog.InfoLevel,
		"warn":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
		"":      zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LoggingConfig{Level: "warn", Format: "json"}, &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()

	logger.Info().Msg("hidden")
	logger.Warn().Str("app", "editor").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry["app"] != "editor" || entry["message"] != "shown" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apptime.log")
	logger, closeFn, err := ForUI(config.LoggingConfig{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info().Msg("to file")
	closeFn()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Fatalf("log file = %q", data)
	}
}

func TestForUIWithoutFile(t *testing.T) {
	logger, _, err := ForUI(config.LoggingConfig{Level: "debug", Format: "console"})
	if err != nil {
		t.Fatal(err)
	}
	if logger.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled logger, got %v", logger.GetLevel())
	}
}

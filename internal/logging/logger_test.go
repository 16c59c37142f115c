package logging_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"heatcut/internal/logging"
)

func TestNewConsoleWritesComponentPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	component := logging.NewComponentLogger(logger, "selector")
	component.Info("windows selected", logging.Int("count", 3))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(data)
	if !strings.Contains(line, "INFO selector: windows selected") {
		t.Fatalf("unexpected console line: %q", line)
	}
	if !strings.Contains(line, "count=3") {
		t.Fatalf("attribute missing from console line: %q", line)
	}
}

func TestNewJSONEmitsLowercaseLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("slow render", logging.String("clip", "intro.mp4"))

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var entry map[string]any
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, data)
	}
	if entry["level"] != "warn" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if entry["clip"] != "intro.mp4" {
		t.Fatalf("attribute missing: %v", entry)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", OutputPaths: []string{path}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("suppressed")
	logger.Error("kept")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(data), "suppressed") {
		t.Fatalf("info line should be filtered at warn level: %q", data)
	}
	if !strings.Contains(string(data), "kept") {
		t.Fatalf("error line missing: %q", data)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	// Must not panic or write anywhere.
	logger.Info("ignored", logging.Error(nil))
}

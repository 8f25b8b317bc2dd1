package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "json", zapcore.AddSync(&buf))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("hidden")
	logger.With("run_id", "r1").Info("aggregation complete", "groups", 3)
	logger.Sync()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "aggregation complete" || entry["run_id"] != "r1" || entry["groups"] != float64(3) {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("WARN", "console", zapcore.AddSync(&buf))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("hidden")
	logger.Warn("skipped malformed lines", "count", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "skipped malformed lines") {
		t.Errorf("missing warn entry: %q", out)
	}
}

func TestNewInvalid(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New("loud", "json", zapcore.AddSync(&buf)); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := New("info", "xml", zapcore.AddSync(&buf)); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestNewFromCore(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := NewFromCore(core)

	logger.Error("write failed", "path", "out.json")

	entries := logs.FilterMessage("write failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["path"]; got != "out.json" {
		t.Errorf("path = %v, want out.json", got)
	}
}

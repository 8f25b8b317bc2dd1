package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleCSV = "Category,Value,Notes\n" +
	"A,10,\n" +
	"B,20,\n" +
	"A,15,\n" +
	"C,5,\n" +
	"B,25,\n" +
	"A,30,\n"

const sampleJSON = "{\n  \"A\": 55,\n  \"B\": 45,\n  \"C\": 5\n}\n"

// runCLI executes the root command in dir and returns stdout and logs.
func runCLI(t *testing.T, dir string, args ...string) (stdout, logs string, err error) {
	t.Helper()
	t.Chdir(dir)

	var out, logBuf bytes.Buffer
	logSink = &logBuf
	t.Cleanup(func() { logSink = os.Stderr })

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&logBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), logBuf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestRunDefaultInput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.csv"), sampleCSV)

	stdout, logs, err := runCLI(t, dir)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout != sampleJSON {
		t.Errorf("stdout = %q, want %q", stdout, sampleJSON)
	}
	if !strings.Contains(logs, "aggregation complete") {
		t.Errorf("logs missing completion entry: %q", logs)
	}
}

func TestRunMissingInputExitsCleanly(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runCLI(t, dir)
	if err != nil {
		t.Fatalf("run should not fail on missing input: %v", err)
	}
	want := "{\n  \"error\": \"File not found: data.csv\"\n}\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRunMissingColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.csv"), "Category,Notes\nA,x\n")

	stdout, _, err := runCLI(t, dir, "--log-format", "json")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, stdout)
	}
	if payload["error"] != "Missing required columns: Value" {
		t.Errorf("error = %v", payload["error"])
	}
	if _, ok := payload["preview"]; !ok {
		t.Errorf("payload missing preview: %v", payload)
	}
}

func TestRunPositionalAndFlags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "other.tsv"), "Group\tAmount\nx\t1\nx\t2.5\n")

	stdout, _, err := runCLI(t, dir, "other.tsv",
		"--delimiter", "tab",
		"--category-field", "Group",
		"--value-field", "Amount",
	)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout != "{\n  \"x\": 3.5\n}\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunOutputFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.csv"), sampleCSV)

	stdout, _, err := runCLI(t, dir, "-o", "result.json")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout should be empty when writing to a file, got %q", stdout)
	}

	data, err := os.ReadFile(filepath.Join(dir, "result.json"))
	if err != nil {
		t.Fatalf("output file not written: %v", err)
	}
	if string(data) != sampleJSON {
		t.Errorf("file = %q, want %q", data, sampleJSON)
	}
}

func TestRunIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.csv"), sampleCSV+"D,0.1,\nD,0.2,\n")

	first, _, err := runCLI(t, dir)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, _, err := runCLI(t, dir)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if first != second {
		t.Errorf("outputs differ:\n%s\n%s", first, second)
	}
}

func TestRunConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sales.csv"), "Region,Amount\nN,1\nS,2\nN,3\n")
	writeFile(t, filepath.Join(dir, "tabsum.yaml"), "input:\n  path: sales.csv\naggregate:\n  category_field: Region\n")
	writeFile(t, filepath.Join(dir, ".env"), "TABSUM_VALUE_FIELD=Amount\n")
	t.Cleanup(func() { os.Unsetenv("TABSUM_VALUE_FIELD") })

	stdout, _, err := runCLI(t, dir)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout != "{\n  \"N\": 4,\n  \"S\": 2\n}\n" {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunInvalidConfigFails(t *testing.T) {
	dir := t.TempDir()

	stdout, _, err := runCLI(t, dir, "--format", "parquet")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if stdout != "" {
		t.Errorf("stdout should be empty, got %q", stdout)
	}
	if !strings.Contains(err.Error(), `format ("parquet")`) || strings.Contains(err.Error(), "TABSUM_") {
		t.Errorf("error should name the format setting, got %q", err)
	}
}

func TestRunWriteFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.csv"), sampleCSV)

	_, logs, err := runCLI(t, dir, "-o", filepath.Join(dir, "no", "such", "dir", "out.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to write output") {
		t.Errorf("expected write failure, got %v", err)
	}
	if !strings.Contains(logs, "failed to write output") {
		t.Errorf("write failure should be logged: %q", logs)
	}
}

func TestRunLogsTotal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data.csv"), sampleCSV)

	_, logs, err := runCLI(t, dir, "--log-format", "json")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var entry map[string]any
	for _, line := range strings.Split(strings.TrimSpace(logs), "\n") {
		var e map[string]any
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("log line is not JSON: %v\n%s", err, line)
		}
		if e["msg"] == "aggregation complete" {
			entry = e
		}
	}
	if entry == nil {
		t.Fatalf("missing completion entry: %q", logs)
	}
	if entry["total"] != float64(105) || entry["groups"] != float64(3) {
		t.Errorf("unexpected completion entry %v", entry)
	}
	if id, _ := entry["run_id"].(string); id == "" {
		t.Errorf("completion entry missing run_id: %v", entry)
	}
}

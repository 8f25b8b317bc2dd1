package output

import (
	"errors"
	"math"
	"testing"
)

func TestToJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"sorted keys", map[string]int{"b": 2, "a": 1}, "{\n  \"a\": 1,\n  \"b\": 2\n}\n"},
		{"empty object", map[string]int{}, "{}\n"},
		{"no html escaping", map[string]string{"error": "<R&D>"}, "{\n  \"error\": \"<R&D>\"\n}\n"},
		{"nested", map[string][]int{"k": {1, 2}}, "{\n  \"k\": [\n    1,\n    2\n  ]\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ToJSON(tt.input)
			if err != nil {
				t.Fatalf("ToJSON failed: %v", err)
			}
			if string(data) != tt.expected {
				t.Errorf("got %q, expected %q", data, tt.expected)
			}
		})
	}
}

func TestToJSONUnsupportedValue(t *testing.T) {
	if _, err := ToJSON(map[string]float64{"x": math.Inf(1)}); err == nil {
		t.Error("expected error for infinite value")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWriteReportsWriterErrors(t *testing.T) {
	if err := Write(failingWriter{}, map[string]int{"a": 1}); err == nil {
		t.Error("expected write error")
	}
}

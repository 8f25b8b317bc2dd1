// Package output serializes aggregation payloads.
package output

import (
	"bytes"
	"encoding/json"
	"io"
)

// Indent is the per-level indentation of serialized output.
const Indent = "  "

// ToJSON serializes v as indented JSON followed by a newline.
// Object keys are sorted, so equal inputs produce identical bytes.
// HTML characters are written as-is.
func ToJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", Indent)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write serializes v with ToJSON and writes it to w.
func Write(w io.Writer, v any) error {
	data, err := ToJSON(v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

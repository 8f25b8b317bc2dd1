// Package config loads tabsum settings.
//
// Values are layered, later sources winning: struct-tag defaults, a YAML
// file, TABSUM_* environment variables, then explicit command-line flags.
package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/tabsum-go/pkg/tabsum"
)

// Config holds all tabsum configuration.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Aggregate AggregateConfig `yaml:"aggregate"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// InputConfig holds table source settings.
type InputConfig struct {
	// Path is the table to read (default: data.csv)
	Path string `yaml:"path" env:"TABSUM_INPUT" default:"data.csv"`

	// Format is auto, csv or xlsx (default: auto)
	Format string `yaml:"format" env:"TABSUM_FORMAT" default:"auto"`

	// Delimiter is the field separator for delimited text; "tab" or `\t` for tabs (default: ,)
	Delimiter string `yaml:"delimiter" env:"TABSUM_DELIMITER" default:","`

	// Sheet is the workbook sheet for xlsx input (default: first sheet)
	Sheet string `yaml:"sheet" env:"TABSUM_SHEET"`

	// Range restricts the xlsx table region, e.g. A1:C20
	Range string `yaml:"range" env:"TABSUM_RANGE"`
}

// AggregateConfig holds aggregation settings.
type AggregateConfig struct {
	// CategoryField names the grouping field (default: Category)
	CategoryField string `yaml:"category_field" env:"TABSUM_CATEGORY_FIELD" default:"Category"`

	// ValueField names the summed field (default: Value)
	ValueField string `yaml:"value_field" env:"TABSUM_VALUE_FIELD" default:"Value"`

	// PreviewRows is the row count previewed on missing columns (default: 5)
	PreviewRows int `yaml:"preview_rows" env:"TABSUM_PREVIEW_ROWS" default:"5"`

	// MissingMarkers replaces the built-in NA marker list (comma-separated in env)
	MissingMarkers []string `yaml:"missing_markers" env:"TABSUM_MISSING_MARKERS"`
}

// OutputConfig holds result destination settings.
type OutputConfig struct {
	// Path is the output file (default: stdout)
	Path string `yaml:"path" env:"TABSUM_OUTPUT"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"TABSUM_LOG_LEVEL" default:"info"`

	// Format is the log format: console or json (default: console)
	Format string `yaml:"format" env:"TABSUM_LOG_FORMAT" default:"console"`
}

// Comma returns the configured delimiter as a rune.
func (c InputConfig) Comma() (rune, error) {
	switch strings.ToLower(c.Delimiter) {
	case "tab", `\t`:
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size == 0 || size != len(c.Delimiter) {
		return 0, fmt.Errorf("delimiter %q must be a single character", c.Delimiter)
	}
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q is not allowed", c.Delimiter)
	}
	return r, nil
}

// Options converts the configuration to aggregation options.
// Call Validate first; an invalid delimiter falls back to ','.
func (c *Config) Options() tabsum.Options {
	comma, err := c.Input.Comma()
	if err != nil {
		comma = ','
	}
	previewRows := c.Aggregate.PreviewRows

	return tabsum.Options{
		Format:         tabsum.Format(strings.ToLower(c.Input.Format)),
		Delimiter:      comma,
		Sheet:          c.Input.Sheet,
		Range:          c.Input.Range,
		CategoryField:  c.Aggregate.CategoryField,
		ValueField:     c.Aggregate.ValueField,
		PreviewRows:    &previewRows,
		MissingMarkers: c.Aggregate.MissingMarkers,
	}
}

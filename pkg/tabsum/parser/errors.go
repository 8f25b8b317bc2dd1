package parser

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrEmpty indicates the input has no header row.
var ErrEmpty = errors.New("empty input")

// LoadError represents an error while loading a table.
type LoadError struct {
	Source string
	Stage  string // "open", "header", "rows", "sheet", "range"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load error in %q (%s): %v", e.Source, e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a new LoadError.
func NewLoadError(source, stage string, err error) *LoadError {
	return &LoadError{
		Source: source,
		Stage:  stage,
		Err:    err,
	}
}

// Package tabsum aggregates a numeric column of a table by category.
package tabsum

import (
	"path/filepath"
	"strings"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/parser"
)

// Format represents the input file format.
type Format string

const (
	// FormatAuto picks the format from the file extension.
	FormatAuto Format = "auto"
	// FormatDelimited reads delimited text (CSV, TSV, ...).
	FormatDelimited Format = "csv"
	// FormatXLSX reads an Excel workbook sheet.
	FormatXLSX Format = "xlsx"
)

// DefaultPreviewRows is the number of rows included in a missing_columns error.
const DefaultPreviewRows = 5

// Options configures aggregation behavior.
type Options struct {
	// Format specifies the input format. Empty means FormatAuto.
	Format Format
	// Delimiter is the field separator for delimited text. 0 means ','.
	Delimiter rune
	// Sheet selects the workbook sheet for xlsx input. Empty means the first sheet.
	Sheet string
	// Range restricts the xlsx table region, e.g. "A1:C20".
	Range string
	// CategoryField names the grouping field. Empty means "Category".
	CategoryField string
	// ValueField names the summed field. Empty means "Value".
	ValueField string
	// PreviewRows is the number of rows previewed on missing columns.
	// If nil, defaults to DefaultPreviewRows.
	PreviewRows *int
	// MissingMarkers lists cell texts treated as missing.
	// If nil, defaults to parser.DefaultMissingMarkers.
	MissingMarkers []string
}

// DefaultOptions returns default aggregation options.
func DefaultOptions() Options {
	return Options{
		Format:        FormatAuto,
		Delimiter:     ',',
		CategoryField: "Category",
		ValueField:    "Value",
	}
}

// withDefaults fills unset fields.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Format == "" {
		o.Format = d.Format
	}
	if o.Delimiter == 0 {
		o.Delimiter = d.Delimiter
	}
	if o.CategoryField == "" {
		o.CategoryField = d.CategoryField
	}
	if o.ValueField == "" {
		o.ValueField = d.ValueField
	}
	return o
}

// previewRows returns the number of preview rows to include.
func (o Options) previewRows() int {
	if o.PreviewRows != nil {
		return *o.PreviewRows
	}
	return DefaultPreviewRows
}

// missingSet returns the lookup of missing-value markers.
func (o Options) missingSet() parser.MissingSet {
	if o.MissingMarkers != nil {
		return parser.NewMissingSet(o.MissingMarkers)
	}
	return parser.NewMissingSet(parser.DefaultMissingMarkers)
}

// ResolveFormat returns the concrete format used for path.
func (o Options) ResolveFormat(path string) Format {
	if o.Format != "" && o.Format != FormatAuto {
		return o.Format
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatDelimited
	}
}

package tabsum

import (
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/models"
	"github.com/ukaji3/tabsum-go/pkg/tabsum/parser"
)

// Stats summarizes one aggregation run.
type Stats struct {
	// RowsRead is the number of data rows loaded.
	RowsRead int
	// RowsSkipped is the number of malformed lines passed over while loading.
	RowsSkipped int
	// RowsDropped is the number of rows with a missing category or value.
	RowsDropped int
	// RowsAggregated is the number of rows that contributed to a sum.
	RowsAggregated int
	// Groups is the number of distinct categories.
	Groups int
}

// Outcome is the product of one aggregation run. Exactly one of Result and
// Error is set.
type Outcome struct {
	Result models.AggregationResult
	Error  *models.ErrorDescriptor
	Stats  Stats
}

// Payload returns the value to serialize: the error descriptor when set,
// the aggregation result otherwise.
func (o Outcome) Payload() any {
	if o.Error != nil {
		return o.Error
	}
	return o.Result
}

// Aggregate loads the table at path and sums the value field per category.
// Failures never escape as errors or panics; they are reported through
// Outcome.Error.
func Aggregate(path string, opts Options) (out Outcome) {
	defer recoverUnexpected(&out)

	opts = opts.withDefaults()
	table, err := load(path, opts)
	if err != nil {
		return Outcome{Error: describeLoadError(path, err)}
	}
	return aggregateTable(path, table, opts)
}

// AggregateReader is like Aggregate but reads delimited text from r.
// name identifies the stream in error messages.
func AggregateReader(r io.Reader, name string, opts Options) (out Outcome) {
	defer recoverUnexpected(&out)

	opts = opts.withDefaults()
	table, err := parser.LoadDelimited(r, name, opts.Delimiter)
	if err != nil {
		return Outcome{Error: describeLoadError(name, err)}
	}
	return aggregateTable(name, table, opts)
}

func recoverUnexpected(out *Outcome) {
	if r := recover(); r != nil {
		*out = Outcome{Error: unexpectedError(fmt.Errorf("panic: %v", r))}
	}
}

// load reads the table at path in the format selected by opts.
func load(path string, opts Options) (*models.Table, error) {
	switch opts.ResolveFormat(path) {
	case FormatXLSX:
		return parser.LoadXLSX(path, parser.XLSXOptions{
			Sheet: opts.Sheet,
			Range: opts.Range,
		})
	case FormatDelimited:
		return parser.LoadDelimitedFile(path, opts.Delimiter)
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// aggregateTable validates the header of table and sums its rows.
func aggregateTable(name string, table *models.Table, opts Options) Outcome {
	stats := Stats{
		RowsRead:    len(table.Rows),
		RowsSkipped: table.Skipped,
	}

	if len(table.Rows) == 0 {
		return Outcome{Error: emptyError(name), Stats: stats}
	}

	catIdx := table.Index(opts.CategoryField)
	valIdx := table.Index(opts.ValueField)

	var missing []string
	if catIdx < 0 {
		missing = append(missing, opts.CategoryField)
	}
	if valIdx < 0 {
		missing = append(missing, opts.ValueField)
	}
	if len(missing) > 0 {
		return Outcome{
			Error: missingColumnsError(table, missing, opts.previewRows()),
			Stats: stats,
		}
	}

	result, dropped := sumByCategory(table.Rows, catIdx, valIdx, opts.missingSet())
	stats.RowsDropped = dropped
	stats.RowsAggregated = stats.RowsRead - dropped
	stats.Groups = len(result)

	for _, category := range slices.Sorted(maps.Keys(result)) {
		if !result[category].IsFinite() {
			return Outcome{
				Error: unexpectedError(fmt.Errorf("sum for category %q is out of range", category)),
				Stats: stats,
			}
		}
	}

	return Outcome{Result: result, Stats: stats}
}

// sumByCategory groups rows by exact category text and sums their values.
// Rows with a missing category or a value that does not coerce are dropped.
func sumByCategory(rows []models.Row, catIdx, valIdx int, na parser.MissingSet) (models.AggregationResult, int) {
	result := make(models.AggregationResult)
	dropped := 0

	for _, row := range rows {
		category := row.Get(catIdx)
		if na.IsMissing(category) {
			dropped++
			continue
		}

		raw := row.Get(valIdx)
		if na.IsMissing(raw) {
			dropped++
			continue
		}
		n, ok := parser.ParseNumber(raw)
		if !ok {
			dropped++
			continue
		}

		result[category] = result[category].Add(n)
	}

	return result, dropped
}

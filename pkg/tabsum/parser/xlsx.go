package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/models"
	"github.com/xuri/excelize/v2"
)

// XLSXOptions configures workbook loading.
type XLSXOptions struct {
	// Sheet is the sheet to read. Empty means the first sheet.
	Sheet string
	// Range restricts the table region (see ParseRange).
	// Empty means the bounding box of non-blank cells.
	Range string
}

// LoadXLSX loads a table from a workbook sheet. The first row of the region
// is the header; blank rows below it are ignored. Cell values are read raw,
// without number formatting.
func LoadXLSX(path string, opts XLSXOptions) (*models.Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewLoadError(path, "open", ErrFileNotFound)
		}
		return nil, NewLoadError(path, "open", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewLoadError(path, "open", err)
	}
	defer f.Close()

	source := filepath.Base(path)
	sheet := opts.Sheet

	var area models.Area
	hasArea := false
	if opts.Range != "" {
		refSheet, a, err := ParseRange(opts.Range)
		if err != nil {
			return nil, NewLoadError(source, "range", err)
		}
		if refSheet != "" {
			if sheet != "" && sheet != refSheet {
				return nil, NewLoadError(source, "range",
					fmt.Errorf("range names sheet %q but sheet %q was requested", refSheet, sheet))
			}
			sheet = refSheet
		}
		area, hasArea = a, true
	}

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, NewLoadError(source, "sheet", ErrEmpty)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, NewLoadError(source, "sheet", err)
	}

	if !hasArea {
		a, ok := DataBounds(rows)
		if !ok {
			return nil, NewLoadError(source, "header", ErrEmpty)
		}
		area = a
	}

	table := tableFromRows(source, rows, area)
	if table.Header == nil {
		return nil, NewLoadError(source, "header", ErrEmpty)
	}
	return table, nil
}

// tableFromRows builds a Table from the cells of rows inside area.
func tableFromRows(source string, rows [][]string, area models.Area) *models.Table {
	table := &models.Table{Source: source}

	for r := area.R1; r <= area.R2 && r <= len(rows); r++ {
		cells := cropRow(rows[r-1], area)
		if table.Header == nil {
			table.Header = cells
			continue
		}
		if isBlankRow(cells) {
			continue
		}
		table.Rows = append(table.Rows, models.Row{
			Line:   r,
			Fields: cells,
		})
	}

	return table
}

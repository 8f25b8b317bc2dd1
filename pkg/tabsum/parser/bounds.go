package parser

import (
	"strings"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/models"
)

// DataBounds returns the 1-based bounding box of non-blank cells in rows.
// ok is false when every cell is blank.
func DataBounds(rows [][]string) (area models.Area, ok bool) {
	minRow, maxRow, minCol, maxCol := findDataBounds(rows)
	if minRow < 0 {
		return models.Area{}, false
	}
	return models.Area{
		R1: minRow + 1,
		C1: minCol + 1,
		R2: maxRow + 1,
		C2: maxCol + 1,
	}, true
}

// findDataBounds finds the 0-based bounding box of non-blank cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}

// cropRow returns the cells of row inside the area's columns, padded to the
// area width. col is 1-based.
func cropRow(row []string, area models.Area) []string {
	out := make([]string, area.Width())
	for col := area.C1; col <= area.C2; col++ {
		if col-1 < len(row) {
			out[col-area.C1] = row[col-1]
		}
	}
	return out
}

// isBlankRow reports whether every cell is empty or whitespace.
func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

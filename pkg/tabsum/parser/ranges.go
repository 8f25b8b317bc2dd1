package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/models"
	"github.com/xuri/excelize/v2"
)

// ParseRange parses a range reference restricting a table region.
// Accepted forms: A1:C20, $A$1:$C$20, Sheet1!A1:C20 and 'Sheet 1'!$A$1:$C$20.
// sheet is empty when the reference names none.
func ParseRange(ref string) (sheet string, area models.Area, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", models.Area{}, fmt.Errorf("empty range reference")
	}
	if strings.Contains(ref, ",") {
		return "", models.Area{}, fmt.Errorf("multiple ranges not supported: %q", ref)
	}

	rangeStr := ref
	// Split by ! to separate sheet name and range
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		rangeStr = ref[idx+1:]
	}

	a := parseRangeToArea(rangeStr)
	if a == nil {
		return "", models.Area{}, fmt.Errorf("invalid range reference: %q", ref)
	}
	return sheet, *a, nil
}

// parseRangeToArea parses a range string like $A$1:$D$10 to an Area.
// Corners may be given in either order.
func parseRangeToArea(rangeStr string) *models.Area {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	// Split by :
	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	return &models.Area{
		R1: min(startRow, endRow),
		C1: min(startCol, endCol),
		R2: max(startRow, endRow),
		C2: max(startCol, endCol),
	}
}

package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/models"
)

// numericPattern accepts signed integers, decimals and scientific notation.
// Hex floats, NaN and infinities never match.
var numericPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// integerPattern matches inputs that may stay exact as int64.
var integerPattern = regexp.MustCompile(`^[+-]?\d+$`)

// DefaultMissingMarkers lists cell texts treated as missing values.
var DefaultMissingMarkers = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// MissingSet is a lookup of missing-value markers.
type MissingSet map[string]struct{}

// NewMissingSet builds a MissingSet from markers. The empty string is
// always treated as missing.
func NewMissingSet(markers []string) MissingSet {
	set := make(MissingSet, len(markers)+1)
	set[""] = struct{}{}
	for _, m := range markers {
		set[m] = struct{}{}
	}
	return set
}

// IsMissing reports whether s is an NA marker.
func (m MissingSet) IsMissing(s string) bool {
	_, ok := m[s]
	return ok
}

// ParseNumber coerces s to a number. ok is false when s is not numeric.
// Surrounding whitespace is ignored.
func ParseNumber(s string) (n models.Number, ok bool) {
	s = strings.TrimSpace(s)
	if !numericPattern.MatchString(s) {
		return models.Number{}, false
	}

	// Try integer first
	if integerPattern.MatchString(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return models.Number{Int: i}, true
		}
	}
	// Try float; integers beyond int64 land here too
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return models.Number{}, false
	}
	return models.Number{Float: f, IsFloat: true}, true
}

package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// Number is a coerced numeric cell value.
type Number struct {
	// Int holds the value when IsFloat is false.
	Int int64
	// Float holds the value when IsFloat is true.
	Float float64
	// IsFloat reports whether the source text had a fraction or exponent.
	IsFloat bool
}

// Float64 returns the value as a float64 regardless of representation.
func (n Number) Float64() float64 {
	if n.IsFloat {
		return n.Float
	}
	return float64(n.Int)
}

// Sum is a running total. It stays an exact int64 while every added value
// is integral and the total fits; otherwise it continues as a float64.
type Sum struct {
	i       int64
	f       float64
	isFloat bool
}

// Add returns s plus n.
func (s Sum) Add(n Number) Sum {
	if !s.isFloat && !n.IsFloat {
		r := s.i + n.Int
		if (n.Int > 0 && r < s.i) || (n.Int < 0 && r > s.i) {
			return Sum{f: float64(s.i) + float64(n.Int), isFloat: true}
		}
		return Sum{i: r}
	}
	return Sum{f: s.Float64() + n.Float64(), isFloat: true}
}

// IsFloat reports whether the total has left exact integer arithmetic.
func (s Sum) IsFloat() bool {
	return s.isFloat
}

// Float64 returns the total as a float64.
func (s Sum) Float64() float64 {
	if s.isFloat {
		return s.f
	}
	return float64(s.i)
}

// IsFinite reports whether the total can be represented in JSON.
func (s Sum) IsFinite() bool {
	return !s.isFloat || (!math.IsInf(s.f, 0) && !math.IsNaN(s.f))
}

// MarshalJSON encodes the total as a bare JSON number.
func (s Sum) MarshalJSON() ([]byte, error) {
	if !s.isFloat {
		return strconv.AppendInt(nil, s.i, 10), nil
	}
	return json.Marshal(s.f)
}

// AggregationResult maps each observed category to its summed value.
type AggregationResult map[string]Sum

// Total returns the sum over every category as a float64.
func (r AggregationResult) Total() float64 {
	var total float64
	for _, s := range r {
		total += s.Float64()
	}
	return total
}

// ErrorKind classifies why an aggregation could not complete.
type ErrorKind string

const (
	// KindNotFound means the input source does not exist.
	KindNotFound ErrorKind = "not_found"
	// KindEmpty means the input has no data rows.
	KindEmpty ErrorKind = "empty"
	// KindMissingColumns means a required header field is absent.
	KindMissingColumns ErrorKind = "missing_columns"
	// KindUnexpected covers every other failure.
	KindUnexpected ErrorKind = "unexpected"
)

// ErrorDescriptor is emitted in place of an AggregationResult when
// processing cannot complete.
type ErrorDescriptor struct {
	// Kind classifies the failure. Not serialized.
	Kind ErrorKind `json:"-"`
	// Message is the human-readable description.
	Message string `json:"error"`
	// Columns lists the header fields that were found (missing_columns only).
	Columns []string `json:"columns,omitempty"`
	// Missing lists the required fields that were absent (missing_columns only).
	Missing []string `json:"missing,omitempty"`
	// Preview holds the first loaded rows (missing_columns only).
	Preview []map[string]string `json:"preview,omitempty"`
}

// Error implements error so a descriptor can travel through error returns.
func (e *ErrorDescriptor) Error() string {
	return e.Message
}

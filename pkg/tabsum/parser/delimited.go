// Package parser loads tables from delimited text and workbooks and coerces cell values.
package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/tabsum-go/pkg/tabsum/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadDelimitedFile loads a delimited-text table from path.
// comma is the field delimiter; 0 means ','.
func LoadDelimitedFile(path string, comma rune) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewLoadError(path, "open", ErrFileNotFound)
		}
		return nil, NewLoadError(path, "open", err)
	}
	defer f.Close()

	return LoadDelimited(f, filepath.Base(path), comma)
}

// LoadDelimited reads a delimited-text table from r.
// The first record is the header. A leading UTF-8 BOM is dropped.
// Records with more fields than the header, or that fail to parse, are
// skipped and counted in Table.Skipped. Shorter records are padded with
// empty fields. Stray quotes inside a field are kept as literal text.
func LoadDelimited(r io.Reader, source string, comma rune) (*models.Table, error) {
	if comma == 0 {
		comma = ','
	}

	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewLoadError(source, "header", ErrEmpty)
		}
		return nil, NewLoadError(source, "header", err)
	}

	table := &models.Table{
		Source: source,
		Header: header,
	}

	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				table.Skipped++
				continue
			}
			return nil, NewLoadError(source, "rows", err)
		}

		if len(rec) > len(header) {
			table.Skipped++
			continue
		}
		if len(rec) < len(header) {
			padded := make([]string, len(header))
			copy(padded, rec)
			rec = padded
		}

		line, _ := cr.FieldPos(0)
		table.Rows = append(table.Rows, models.Row{
			Line:   line,
			Fields: rec,
		})
	}

	return table, nil
}

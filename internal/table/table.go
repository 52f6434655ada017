// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

// Package table reads, inspects and writes the delimited text tables that are geocoded.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultDelimiter is the field delimiter used when none is configured.
const DefaultDelimiter = ','

var (
	// ErrInputUnreadable is returned when the input cannot be parsed as a table.
	ErrInputUnreadable = errors.New("input is not a readable CSV table")
	// ErrColumnsNotFound is returned when no latitude or longitude column exists.
	ErrColumnsNotFound = errors.New("CSV must contain columns for latitude and longitude")
	// ErrOutputSerialization is returned when the table cannot be written.
	ErrOutputSerialization = errors.New("failed to serialize CSV table")
)

// Table is an ordered set of rows sharing a header. All cells are text.
type Table struct {
	Header  []string
	Records [][]string
}

// Parse reads a delimited table with a mandatory header row from r. A leading byte order
// mark is removed. Duplicate header names get a numeric suffix. Stray quotes inside
// unquoted cells are kept as literal text.
func Parse(r io.Reader, delimiter rune) (*Table, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	reader.Comma = delimiter
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInputUnreadable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: header row is missing", ErrInputUnreadable)
	}

	table := &Table{Records: rows[1:]}
	for _, name := range rows[0] {
		table.Header = append(table.Header, table.uniqueName(name))
	}
	return table, nil
}

// Len returns the number of rows, not counting the header.
func (t *Table) Len() int {
	return len(t.Records)
}

// Head returns a table with the header and at most n rows. Records are shared with t.
func (t *Table) Head(n int) *Table {
	if n > len(t.Records) {
		n = len(t.Records)
	}
	return &Table{Header: t.Header, Records: t.Records[:n]}
}

// Append adds a column at the end of the table and returns the name it was stored under.
// values must hold one cell per row.
func (t *Table) Append(name string, values []string) (string, error) {
	if len(values) != len(t.Records) {
		return "", fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Records))
	}
	name = t.uniqueName(name)
	t.Header = append(t.Header, name)
	for i := range t.Records {
		t.Records[i] = append(t.Records[i], values[i])
	}
	return name, nil
}

// WriteCSV serializes the table including the header row.
func (t *Table) WriteCSV(w io.Writer, delimiter rune) error {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	writer := csv.NewWriter(w)
	writer.Comma = delimiter

	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputSerialization, err)
	}
	if err := writer.WriteAll(t.Records); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputSerialization, err)
	}
	return nil
}

// uniqueName returns name, or name with the lowest free ".N" suffix if the header
// already contains it.
func (t *Table) uniqueName(name string) string {
	if !t.hasColumn(name) {
		return name
	}
	for i := 1; ; i++ {
		candidate := name + "." + strconv.Itoa(i)
		if !t.hasColumn(candidate) {
			return candidate
		}
	}
}

func (t *Table) hasColumn(name string) bool {
	for _, col := range t.Header {
		if col == name {
			return true
		}
	}
	return false
}

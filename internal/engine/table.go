package engine

import (
	"fmt"

	"github.com/google/uuid"
)

// Table is the in-memory representation of one parsed delimited file.
// Rows are aligned to Headers by index; after malformed input a row may be
// shorter or longer than the header, which is why consumers go through
// Cell and RowIsWellFormed instead of indexing blindly.
//
// A Table is a value object: once built it is never mutated. Operations
// that reshape data return new tables.
type Table struct {
	ID        string
	Name      string
	Headers   []string
	Rows      [][]string
	Delimiter rune
	Encoding  string
}

// NewTable builds a table and assigns it a fresh ID.
func NewTable(name string, headers []string, rows [][]string, delimiter rune, encoding string) Table {
	if delimiter == 0 {
		delimiter = ','
	}
	if encoding == "" {
		encoding = "utf-8"
	}
	return Table{
		ID:        uuid.NewString(),
		Name:      name,
		Headers:   headers,
		Rows:      rows,
		Delimiter: delimiter,
		Encoding:  encoding,
	}
}

// HeaderIndex returns the position of the named column.
// Matching is exact and case-sensitive. Duplicate header names are not
// rejected at parse time; the first occurrence wins.
func (t Table) HeaderIndex(name string) (int, error) {
	for i, h := range t.Headers {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q in table %q", ErrColumnNotFound, name, t.Name)
}

// RowIsWellFormed reports whether a row has exactly one cell per header.
func (t Table) RowIsWellFormed(row []string) bool {
	return len(row) == len(t.Headers)
}

// Cell returns the value at the given column index, or "" when the row is
// too short. Out-of-range reads are the normal consequence of ragged input
// and are not an error.
func (t Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// rowByName maps one row's cells by header name. With duplicate header
// names the first occurrence wins, mirroring HeaderIndex.
func (t Table) rowByName(row []string) map[string]string {
	m := make(map[string]string, len(t.Headers))
	for i, h := range t.Headers {
		if _, seen := m[h]; seen {
			continue
		}
		m[h] = t.Cell(row, i)
	}
	return m
}

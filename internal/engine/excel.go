package engine

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ParseWorkbook reads one sheet of an XLSX workbook into a Table. An empty
// sheet name selects the first sheet. The first non-empty row becomes the
// header; data rows are padded to the header width so the rest of the
// pipeline sees well-formed rows.
//
// The caller supplies the reader; the engine does not open files.
func ParseWorkbook(r io.Reader, sheet, name string) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, &EncodingError{Encoding: "xlsx", Detail: err.Error()}
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return Table{}, &EmptyInputError{Source: name}
		}
		sheet = list[0]
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	// Skip leading fully empty rows before the header.
	start := 0
	for start < len(records) && isBlankRow(records[start]) {
		start++
	}
	if start == len(records) {
		return Table{}, &EmptyInputError{Source: name}
	}

	headers := records[start]
	rows := make([][]string, 0, len(records)-start-1)
	for _, rec := range records[start+1:] {
		if isBlankRow(rec) {
			continue
		}
		row := make([]string, len(headers))
		copy(row, rec)
		rows = append(rows, row)
	}

	return NewTable(name, headers, rows, ',', "utf-8"), nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

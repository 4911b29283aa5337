package engine

import "slices"

// MergeAppend concatenates the rows of all tables under the first table's
// headers. Header sequences must be equal across inputs; a mismatch fails
// fast with *SchemaMismatchError instead of producing silently misaligned
// rows.
func MergeAppend(tables ...Table) (Table, error) {
	if len(tables) == 0 {
		return Table{}, &EmptyInputError{Source: "merge"}
	}

	first := tables[0]
	total := 0
	for _, t := range tables[1:] {
		if !slices.Equal(t.Headers, first.Headers) {
			return Table{}, &SchemaMismatchError{Table: t.Name, Want: first.Headers, Got: t.Headers}
		}
	}
	for _, t := range tables {
		total += len(t.Rows)
	}

	rows := make([][]string, 0, total)
	for _, t := range tables {
		rows = append(rows, t.Rows...)
	}

	return NewTable(first.Name, slices.Clone(first.Headers), rows, first.Delimiter, first.Encoding), nil
}

// MergeJoin combines rows across tables matching on joinColumn by value
// equality, inner-join style: only keys present in every input appear.
//
// Output headers are the first table's, followed by each later table's
// headers minus the join column. Row order follows the key order of the
// first table; within one table the first row per key wins.
func MergeJoin(tables []Table, joinColumn string) (Table, error) {
	if len(tables) == 0 {
		return Table{}, &EmptyInputError{Source: "merge"}
	}

	keyIdx := make([]int, len(tables))
	for i, t := range tables {
		idx, err := t.HeaderIndex(joinColumn)
		if err != nil {
			return Table{}, &MissingKeyColumnError{Column: joinColumn, Table: t.Name}
		}
		keyIdx[i] = idx
	}

	first := tables[0]
	headers := slices.Clone(first.Headers)
	for _, t := range tables[1:] {
		for _, h := range t.Headers {
			if h != joinColumn {
				headers = append(headers, h)
			}
		}
	}

	// Key lookup per later table, first row per key wins.
	lookups := make([]map[string][]string, len(tables))
	for i, t := range tables[1:] {
		lookup := make(map[string][]string, len(t.Rows))
		for _, row := range t.Rows {
			key := t.Cell(row, keyIdx[i+1])
			if _, seen := lookup[key]; !seen {
				lookup[key] = row
			}
		}
		lookups[i+1] = lookup
	}

	var rows [][]string
	seen := make(map[string]bool, len(first.Rows))
	for _, row := range first.Rows {
		key := first.Cell(row, keyIdx[0])
		if seen[key] {
			continue
		}
		seen[key] = true

		combined := slices.Clone(row)
		matched := true
		for i, t := range tables[1:] {
			other, ok := lookups[i+1][key]
			if !ok {
				matched = false
				break
			}
			for j, h := range t.Headers {
				if h == joinColumn {
					continue
				}
				combined = append(combined, t.Cell(other, j))
			}
		}
		if matched {
			rows = append(rows, combined)
		}
	}

	return NewTable(first.Name, headers, rows, first.Delimiter, first.Encoding), nil
}

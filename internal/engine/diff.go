package engine

// DiffType classifies one key's row pair across two tables.
type DiffType string

const (
	DiffAdded     DiffType = "added"
	DiffRemoved   DiffType = "removed"
	DiffModified  DiffType = "modified"
	DiffUnchanged DiffType = "unchanged"
)

// DuplicatePolicy decides what happens when one table contains the same
// key value more than once.
type DuplicatePolicy string

const (
	// DuplicateLastWins lets later rows replace earlier ones in the key
	// lookup (the historical behavior).
	DuplicateLastWins DuplicatePolicy = "last-wins"
	// DuplicateError rejects the comparison with *DuplicateKeyError.
	DuplicateError DuplicatePolicy = "error"
)

// DiffOptions configures Compare. The zero value means last-wins.
type DiffOptions struct {
	OnDuplicateKey DuplicatePolicy
}

// DiffEntry is the classification of one key across both tables. Data
// holds the current row (table B's side, or A's for removed keys) keyed by
// header name; OriginalData holds A's row for modified entries.
type DiffEntry struct {
	Type         DiffType          `json:"type"`
	Key          string            `json:"key"`
	Data         map[string]string `json:"data"`
	OriginalData map[string]string `json:"originalData,omitempty"`
}

// Compare classifies every key present in either table against keyColumn.
//
// Cells are matched by header-name correspondence, not position: A's
// "Email" is compared against B's "Email" regardless of column order, and
// only headers present in both tables take part. Tables with zero shared
// headers are legal; overlapping keys then come out modified.
//
// Output order is deterministic: first-seen key order of A, then B-only
// keys in B's order.
func Compare(a, b Table, keyColumn string, opts DiffOptions) ([]DiffEntry, error) {
	if _, err := a.HeaderIndex(keyColumn); err != nil {
		return nil, &MissingKeyColumnError{Column: keyColumn, Table: a.Name}
	}
	if _, err := b.HeaderIndex(keyColumn); err != nil {
		return nil, &MissingKeyColumnError{Column: keyColumn, Table: b.Name}
	}

	aRows, aOrder, err := keyLookup(a, keyColumn, opts.OnDuplicateKey)
	if err != nil {
		return nil, err
	}
	bRows, bOrder, err := keyLookup(b, keyColumn, opts.OnDuplicateKey)
	if err != nil {
		return nil, err
	}

	shared := sharedHeaders(a, b)

	entries := make([]DiffEntry, 0, len(aOrder)+len(bOrder))
	for _, key := range aOrder {
		aRow := a.rowByName(aRows[key])
		bRaw, inB := bRows[key]
		if !inB {
			entries = append(entries, DiffEntry{Type: DiffRemoved, Key: key, Data: aRow})
			continue
		}

		bRow := b.rowByName(bRaw)
		modified := false
		for _, h := range shared {
			if aRow[h] != bRow[h] {
				modified = true
				break
			}
		}
		if modified {
			entries = append(entries, DiffEntry{Type: DiffModified, Key: key, Data: bRow, OriginalData: aRow})
		} else {
			entries = append(entries, DiffEntry{Type: DiffUnchanged, Key: key, Data: bRow})
		}
	}

	for _, key := range bOrder {
		if _, inA := aRows[key]; !inA {
			entries = append(entries, DiffEntry{Type: DiffAdded, Key: key, Data: b.rowByName(bRows[key])})
		}
	}

	return entries, nil
}

// keyLookup builds the key->row map for one table, preserving first-seen
// key order.
func keyLookup(t Table, keyColumn string, policy DuplicatePolicy) (map[string][]string, []string, error) {
	idx, _ := t.HeaderIndex(keyColumn)

	rows := make(map[string][]string, len(t.Rows))
	order := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		key := t.Cell(row, idx)
		if _, seen := rows[key]; seen {
			if policy == DuplicateError {
				return nil, nil, &DuplicateKeyError{Key: key, Table: t.Name}
			}
			rows[key] = row
			continue
		}
		rows[key] = row
		order = append(order, key)
	}
	return rows, order, nil
}

func sharedHeaders(a, b Table) []string {
	inB := make(map[string]bool, len(b.Headers))
	for _, h := range b.Headers {
		inB[h] = true
	}
	var shared []string
	for _, h := range a.Headers {
		if inB[h] {
			shared = append(shared, h)
		}
	}
	return shared
}

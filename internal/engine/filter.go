package engine

import (
	"strconv"
	"strings"
)

// Condition is one comparison a predicate applies to a cell.
type Condition string

const (
	CondContains    Condition = "contains"
	CondEquals      Condition = "equals"
	CondStartsWith  Condition = "starts_with"
	CondEndsWith    Condition = "ends_with"
	CondNotEmpty    Condition = "not_empty"
	CondEmpty       Condition = "empty"
	CondGreaterThan Condition = "greater_than"
	CondLessThan    Condition = "less_than"
)

// Predicate binds one source column to one condition. Multiple predicates
// combine with logical AND in the order given.
type Predicate struct {
	Column    string    `json:"column"`
	Condition Condition `json:"condition"`
	Value     string    `json:"value,omitempty"`
}

// FilterRows returns a new table containing only the rows every predicate
// matches. It is an optional pre-pass before mapping and logically separate
// from it.
//
// The numeric conditions parse the cell as a floating-point number;
// non-numeric cells never compare greater or less than anything, they
// simply don't match. A predicate naming an unknown column matches no row.
func FilterRows(t Table, predicates []Predicate) Table {
	if len(predicates) == 0 {
		return NewTable(t.Name, t.Headers, t.Rows, t.Delimiter, t.Encoding)
	}

	indices := make([]int, len(predicates))
	for i, p := range predicates {
		idx, err := t.HeaderIndex(p.Column)
		if err != nil {
			idx = -1
		}
		indices[i] = idx
	}

	var rows [][]string
	for _, row := range t.Rows {
		keep := true
		for i, p := range predicates {
			if indices[i] < 0 || !matches(t.Cell(row, indices[i]), p) {
				keep = false
				break
			}
		}
		if keep {
			rows = append(rows, row)
		}
	}

	return NewTable(t.Name, t.Headers, rows, t.Delimiter, t.Encoding)
}

func matches(cell string, p Predicate) bool {
	switch p.Condition {
	case CondContains:
		return strings.Contains(cell, p.Value)
	case CondEquals:
		return cell == p.Value
	case CondStartsWith:
		return strings.HasPrefix(cell, p.Value)
	case CondEndsWith:
		return strings.HasSuffix(cell, p.Value)
	case CondNotEmpty:
		return strings.TrimSpace(cell) != ""
	case CondEmpty:
		return strings.TrimSpace(cell) == ""
	case CondGreaterThan:
		a, b, ok := parseNumericPair(cell, p.Value)
		return ok && a > b
	case CondLessThan:
		a, b, ok := parseNumericPair(cell, p.Value)
		return ok && a < b
	default:
		return false
	}
}

func parseNumericPair(cell, value string) (float64, float64, bool) {
	a, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, 0, false
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, 0, false
	}
	return a, b, true
}

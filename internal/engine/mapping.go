package engine

import (
	"regexp"
	"sort"
	"strings"
)

// Transformation is an optional per-cell rewrite applied after a source
// column copy.
type Transformation string

const (
	TransformNone        Transformation = ""
	TransformUppercase   Transformation = "uppercase"
	TransformLowercase   Transformation = "lowercase"
	TransformTrim        Transformation = "trim"
	TransformFormatPhone Transformation = "format_phone"
)

// phoneCountryCode is prepended by format_phone when the digit grouping
// fits. German numbers are the dominant input, matching the regional bias
// already acknowledged by delimiter detection.
const phoneCountryCode = "49"

// ColumnMapping binds one target column to a value source. Resolution
// priority per row: Formula, then SourceColumn (+ Transformation), then
// DefaultValue, then "".
//
// Mappings are ephemeral: a Template defines the target shape, a mapping
// session binds it to one particular source table.
type ColumnMapping struct {
	TemplateColumn string         `json:"templateColumn"`
	SourceColumn   string         `json:"sourceColumn,omitempty"`
	Transformation Transformation `json:"transformation,omitempty"`
	Formula        string         `json:"formula,omitempty"`
	DefaultValue   string         `json:"defaultValue,omitempty"`
}

// ApplyMapping projects a source table into the target schema described by
// the mappings. It never fails: an unresolved column yields an empty
// string, so partial output is always available for preview and export.
func ApplyMapping(source Table, mappings []ColumnMapping) Table {
	headers := make([]string, len(mappings))
	for i, m := range mappings {
		headers[i] = m.TemplateColumn
	}

	// One compiled substituter per formula, shared across rows.
	subs := make([]*formulaSubst, len(mappings))
	srcIdx := make([]int, len(mappings))
	for i, m := range mappings {
		if m.Formula != "" {
			subs[i] = newFormulaSubst(source.Headers)
			srcIdx[i] = -1
			continue
		}
		idx, err := source.HeaderIndex(m.SourceColumn)
		if m.SourceColumn == "" || err != nil {
			idx = -1
		}
		srcIdx[i] = idx
	}

	rows := make([][]string, len(source.Rows))
	for r, row := range source.Rows {
		out := make([]string, len(mappings))
		for i, m := range mappings {
			switch {
			case m.Formula != "":
				out[i] = subs[i].apply(m.Formula, row, source)
			case srcIdx[i] >= 0:
				out[i] = applyTransformation(source.Cell(row, srcIdx[i]), m.Transformation)
			default:
				out[i] = m.DefaultValue
			}
		}
		rows[r] = out
	}

	return NewTable(source.Name, headers, rows, source.Delimiter, source.Encoding)
}

func applyTransformation(value string, t Transformation) string {
	switch t {
	case TransformUppercase:
		return strings.ToUpper(value)
	case TransformLowercase:
		return strings.ToLower(value)
	case TransformTrim:
		return strings.TrimSpace(value)
	case TransformFormatPhone:
		return formatPhone(value)
	default:
		return value
	}
}

// formatPhone strips all non-digits and re-inserts the fixed grouping
// +CC NNNN NNN NNNN. Inputs whose digit count does not fit the grouping
// pass through as the bare digit string.
func formatPhone(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 11 {
		return d
	}
	return "+" + phoneCountryCode + " " + d[:4] + " " + d[4:7] + " " + d[7:]
}

// formulaSubst replaces header-name tokens in a formula with row values.
// This is pure textual templating, not an expression language: whole-word,
// case-insensitive matches only. Headers are substituted in descending
// name length so a header that is a substring of another (Name inside
// Surname) cannot corrupt the longer one.
type formulaSubst struct {
	patterns []*regexp.Regexp
	indices  []int
}

func newFormulaSubst(headers []string) *formulaSubst {
	type headerRef struct {
		name string
		idx  int
	}
	refs := make([]headerRef, 0, len(headers))
	seen := make(map[string]bool, len(headers))
	for i, h := range headers {
		if h == "" || seen[strings.ToLower(h)] {
			continue
		}
		seen[strings.ToLower(h)] = true
		refs = append(refs, headerRef{name: h, idx: i})
	}
	sort.SliceStable(refs, func(i, j int) bool {
		return len(refs[i].name) > len(refs[j].name)
	})

	s := &formulaSubst{
		patterns: make([]*regexp.Regexp, len(refs)),
		indices:  make([]int, len(refs)),
	}
	for i, ref := range refs {
		s.patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(ref.name) + `\b`)
		s.indices[i] = ref.idx
	}
	return s
}

func (s *formulaSubst) apply(formula string, row []string, t Table) string {
	out := formula
	for i, pat := range s.patterns {
		out = pat.ReplaceAllLiteralString(out, t.Cell(row, s.indices[i]))
	}
	return out
}

package engine

import (
	"encoding/csv"
	"strings"
)

// Serialize reconstructs delimited text from a table using its delimiter.
// The engine hands the string back to the caller; writing it to a file,
// download, or HTTP response is the caller's job.
func Serialize(t Table) (string, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	if t.Delimiter != 0 {
		w.Comma = t.Delimiter
	}

	if len(t.Headers) > 0 {
		if err := w.Write(t.Headers); err != nil {
			return "", err
		}
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	return buf.String(), w.Error()
}

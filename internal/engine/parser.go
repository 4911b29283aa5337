package engine

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// DetectSampleLines is the number of non-empty lines sampled for delimiter
// detection.
var DetectSampleLines = 5

// delimiterCandidates in tie-break order: when two candidates score the
// same, the earlier one wins. The semicolon bias of European exports is
// handled by the single-field re-parse in Parse, not here.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseOptions configures Parse. A zero Delimiter triggers detection; a
// zero Encoding means utf-8. HasHeader=false synthesizes positional
// headers so downstream components always see a schema.
type ParseOptions struct {
	Delimiter rune
	Encoding  string
	HasHeader bool
	Name      string
}

// DetectDelimiter infers the delimiter by counting candidate occurrences
// across the first few non-empty lines. A candidate only scores when its
// count is identical and non-zero on every sampled line; the highest such
// count wins. When nothing is consistent the first line alone decides.
func DetectDelimiter(text string) rune {
	lines := sampleLines(text, DetectSampleLines)
	if len(lines) == 0 {
		return ','
	}

	best := ','
	bestScore := 0
	for _, cand := range delimiterCandidates {
		score := strings.Count(lines[0], string(cand))
		for _, line := range lines[1:] {
			if strings.Count(line, string(cand)) != score {
				score = 0
				break
			}
		}
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	if bestScore > 0 {
		return best
	}

	// No candidate is consistent across the sample; fall back to the most
	// frequent candidate on the first line.
	for _, cand := range delimiterCandidates {
		if n := strings.Count(lines[0], string(cand)); n > bestScore {
			best, bestScore = cand, n
		}
	}
	return best
}

// Parse turns raw file bytes into a Table.
//
// Quoted fields may contain the delimiter or newlines; cell content is
// preserved verbatim, including whitespace. Empty input yields
// *EmptyInputError, undecodable bytes *EncodingError.
func Parse(data []byte, opts ParseOptions) (Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Table{}, &EmptyInputError{Source: opts.Name}
	}

	text, encoding, err := decode(data, opts.Encoding)
	if err != nil {
		return Table{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Table{}, &EmptyInputError{Source: opts.Name}
	}

	delim := opts.Delimiter
	detected := false
	if delim == 0 {
		delim = DetectDelimiter(text)
		detected = true
	}

	records, err := readAll(text, delim)
	if err != nil {
		return Table{}, fmt.Errorf("invalid csv: %w", err)
	}

	// Self-correcting second pass: a detected delimiter that collapses the
	// header to a single field containing a semicolon or comma means the
	// sample was misleading; re-parse with the embedded character.
	if detected && len(records) > 0 && len(records[0]) == 1 {
		if alt, ok := embeddedDelimiter(records[0][0], delim); ok {
			if reparsed, err := readAll(text, alt); err == nil {
				records = reparsed
				delim = alt
			}
		}
	}

	if len(records) == 0 {
		return Table{}, &EmptyInputError{Source: opts.Name}
	}

	var headers []string
	var rows [][]string
	if opts.HasHeader {
		headers = records[0]
		rows = records[1:]
	} else {
		headers = make([]string, len(records[0]))
		for i := range headers {
			headers[i] = fmt.Sprintf("Column %d", i+1)
		}
		rows = records
	}

	return NewTable(opts.Name, headers, rows, delim, encoding), nil
}

// decode converts raw bytes to a string under the declared encoding and
// returns the normalized encoding name. A UTF-8 BOM is stripped.
func decode(data []byte, encoding string) (string, string, error) {
	switch strings.ToLower(encoding) {
	case "", "utf-8", "utf8":
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", "", &EncodingError{Encoding: "utf-8"}
		}
		return string(data), "utf-8", nil

	case "latin-1", "iso-8859-1", "iso8859-1":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", "", &EncodingError{Encoding: "iso-8859-1", Detail: err.Error()}
		}
		return string(out), "iso-8859-1", nil

	case "windows-1252", "cp1252":
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return "", "", &EncodingError{Encoding: "windows-1252", Detail: err.Error()}
		}
		return string(out), "windows-1252", nil

	default:
		return "", "", &EncodingError{Encoding: encoding, Detail: "unsupported encoding"}
	}
}

func readAll(text string, delim rune) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}

// embeddedDelimiter checks a collapsed single-field header for the losing
// candidate, semicolon first.
func embeddedDelimiter(field string, current rune) (rune, bool) {
	for _, alt := range []rune{';', ','} {
		if alt != current && strings.ContainsRune(field, alt) {
			return alt, true
		}
	}
	return 0, false
}

func sampleLines(text string, max int) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == max {
			break
		}
	}
	return lines
}

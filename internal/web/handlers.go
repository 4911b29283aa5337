package web

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

// tablePayload is the wire representation of an engine.Table. The
// delimiter travels as a one-character string because JSON has no rune
// type.
type tablePayload struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Headers   []string   `json:"headers"`
	Rows      [][]string `json:"rows"`
	Delimiter string     `json:"delimiter,omitempty"`
	Encoding  string     `json:"encoding,omitempty"`
}

func toPayload(t engine.Table) tablePayload {
	return tablePayload{
		ID:        t.ID,
		Name:      t.Name,
		Headers:   t.Headers,
		Rows:      t.Rows,
		Delimiter: string(t.Delimiter),
		Encoding:  t.Encoding,
	}
}

func fromPayload(p tablePayload) engine.Table {
	t := engine.NewTable(p.Name, p.Headers, p.Rows, delimRune(p.Delimiter), p.Encoding)
	if p.ID != "" {
		t.ID = p.ID
	}
	return t
}

// delimRune converts the wire delimiter to a rune, defaulting to comma.
func delimRune(s string) rune {
	if s == "" {
		return ','
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

type detectRequest struct {
	Content string `json:"content"`
}

type detectResponse struct {
	Delimiter string `json:"delimiter"`
}

// handleDetect reports the delimiter the parser would infer for the given
// text, without parsing it.
func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, detectResponse{
		Delimiter: string(engine.DetectDelimiter(req.Content)),
	})
}

type parseRequest struct {
	Content   string `json:"content"`
	Name      string `json:"name,omitempty"`
	Delimiter string `json:"delimiter,omitempty"`
	Encoding  string `json:"encoding,omitempty"`
	NoHeader  bool   `json:"noHeader,omitempty"`
}

// handleParse parses delimited text into a table. Delimiter and encoding
// are optional; omitted values mean detection and utf-8.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if int64(len(req.Content)) > s.cfg.Engine.MaxInputSize {
		writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "input too large",
			Message: "The file exceeds the maximum accepted size",
			Action:  "Split the file or raise ENGINE_MAX_INPUT_SIZE",
			Code:    "FILE004",
		})
		return
	}

	opts := engine.ParseOptions{
		Encoding:  req.Encoding,
		HasHeader: !req.NoHeader,
		Name:      req.Name,
	}
	if req.Delimiter != "" {
		opts.Delimiter = delimRune(req.Delimiter)
	}

	table, err := engine.Parse([]byte(req.Content), opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(table))
}

type mergeRequest struct {
	Tables     []tablePayload `json:"tables"`
	Mode       string         `json:"mode"` // "append" or "join"
	JoinColumn string         `json:"joinColumn,omitempty"`
}

// handleMerge combines tables either by appending rows (identical headers
// required) or by an inner join on a key column.
func (s *Server) handleMerge(w http.ResponseWriter, r *http.Request) {
	var req mergeRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if len(req.Tables) == 0 {
		respondBadRequest(w, "tables is required")
		return
	}

	tables := make([]engine.Table, len(req.Tables))
	for i, p := range req.Tables {
		tables[i] = fromPayload(p)
	}

	var (
		merged engine.Table
		err    error
	)
	switch strings.ToLower(req.Mode) {
	case "", "append":
		merged, err = engine.MergeAppend(tables...)
	case "join":
		if req.JoinColumn == "" {
			respondBadRequest(w, "joinColumn is required for join mode")
			return
		}
		merged, err = engine.MergeJoin(tables, req.JoinColumn)
	default:
		respondBadRequest(w, "mode must be append or join")
		return
	}
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toPayload(merged))
}

type diffRequest struct {
	A              tablePayload `json:"a"`
	B              tablePayload `json:"b"`
	KeyColumn      string       `json:"keyColumn"`
	OnDuplicateKey string       `json:"onDuplicateKey,omitempty"`
}

type diffResponse struct {
	Entries []engine.DiffEntry `json:"entries"`
	Summary map[string]int     `json:"summary"`
}

// handleDiff compares two tables by a key column and classifies every key
// as added, removed, modified or unchanged.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if req.KeyColumn == "" {
		respondBadRequest(w, "keyColumn is required")
		return
	}

	opts := engine.DiffOptions{
		OnDuplicateKey: engine.DuplicatePolicy(s.cfg.Engine.DiffDuplicatePolicy),
	}
	if req.OnDuplicateKey != "" {
		opts.OnDuplicateKey = engine.DuplicatePolicy(req.OnDuplicateKey)
	}

	entries, err := engine.Compare(fromPayload(req.A), fromPayload(req.B), req.KeyColumn, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	summary := make(map[string]int, 4)
	for _, e := range entries {
		summary[string(e.Type)]++
	}
	writeJSON(w, http.StatusOK, diffResponse{Entries: entries, Summary: summary})
}

type mapRequest struct {
	Table    tablePayload           `json:"table"`
	Mappings []engine.ColumnMapping `json:"mappings"`
	Filters  []engine.Predicate     `json:"filters,omitempty"`
}

// handleMap applies optional row filters and then projects the table into
// the target schema described by the column mappings.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	var req mapRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}
	if len(req.Mappings) == 0 {
		respondBadRequest(w, "mappings is required")
		return
	}

	table := fromPayload(req.Table)
	if len(req.Filters) > 0 {
		table = engine.FilterRows(table, req.Filters)
	}
	writeJSON(w, http.StatusOK, toPayload(engine.ApplyMapping(table, req.Mappings)))
}

type exportRequest struct {
	Table     tablePayload `json:"table"`
	Delimiter string       `json:"delimiter,omitempty"`
}

// handleExport serializes a table back to delimited text and returns it as
// a CSV attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	table := fromPayload(req.Table)
	if req.Delimiter != "" {
		table.Delimiter = delimRune(req.Delimiter)
	}

	text, err := engine.Serialize(table)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	name := table.Name
	if name == "" {
		name = "export"
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`.csv"`)
	_, _ = w.Write([]byte(text))
}

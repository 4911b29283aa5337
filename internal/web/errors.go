package web

// errors.go provides unified error response handling for the API.
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err)
//  3. Error is mapped via engine.MapError to a user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. The mapped message goes to the client; unrecognized errors become a
//     generic ERR000 so internals never leak

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
	"github.com/jahartmann/ollama-flow-sub000/internal/logging"
)

// ErrorResponse represents the JSON structure for API error responses.
// Includes both machine-readable (Code) and human-readable (Message,
// Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// respondError logs the technical error server-side and returns the mapped
// user message with a status derived from the error type.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	userMsg := engine.MapError(err)
	status := statusForError(err)

	logging.FromContext(r.Context()).Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"code", userMsg.Code,
	)

	resp := ErrorResponse{
		Error:   userMsg.Message,
		Message: userMsg.Message,
		Action:  userMsg.Action,
		Code:    userMsg.Code,
	}
	// Known error patterns are safe to show verbatim; anything else stays
	// behind the generic ERR000 message.
	if engine.IsUserFacing(err) {
		resp.Error = err.Error()
	}
	writeJSON(w, status, resp)
}

// statusForError maps engine error types to HTTP status codes.
func statusForError(err error) int {
	var (
		emptyErr    *engine.EmptyInputError
		encErr      *engine.EncodingError
		keyErr      *engine.MissingKeyColumnError
		schemaErr   *engine.SchemaMismatchError
		dupErr      *engine.DuplicateKeyError
		templateErr *engine.InvalidTemplateError
	)

	switch {
	case errors.As(err, &emptyErr),
		errors.As(err, &encErr),
		errors.As(err, &keyErr),
		errors.As(err, &templateErr):
		return http.StatusBadRequest
	case errors.As(err, &schemaErr), errors.As(err, &dupErr):
		return http.StatusConflict
	case errors.Is(err, engine.ErrTemplateNotFound),
		errors.Is(err, engine.ErrColumnNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondBadRequest reports a malformed request body without going through
// the engine error mapping.
func respondBadRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   detail,
		Message: "The request could not be understood",
		Action:  "Check the request body against the API documentation",
		Code:    "REQ001",
	})
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON decodes the request body into v, rejecting unknown fields so
// typos in field names surface instead of silently doing nothing.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

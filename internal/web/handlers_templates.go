package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

// handleListTemplates returns all stored templates sorted by name.
func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.store.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if templates == nil {
		templates = []engine.Template{}
	}
	writeJSON(w, http.StatusOK, templates)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleCreateTemplate validates and stores a new template. Any client
// supplied ID is discarded so creation can never overwrite.
func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var t engine.Template
	if err := decodeJSON(r, &t); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	t.ID = ""
	saved, err := s.store.Save(r.Context(), t)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

// handleUpdateTemplate replaces an existing template. The URL id wins over
// any id in the body.
func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.store.Get(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	var t engine.Template
	if err := decodeJSON(r, &t); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	t.ID = id
	saved, err := s.store.Save(r.Context(), t)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if !deleted {
		s.respondError(w, r, engine.ErrTemplateNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateTemplate(w http.ResponseWriter, r *http.Request) {
	copied, err := s.store.Duplicate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, copied)
}

// handleTemplateHeaderRow exports a template as a single delimited header
// line, ready to be used as a file skeleton. The delimiter comes from the
// optional ?delimiter= query parameter.
func (s *Server) handleTemplateHeaderRow(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	line, err := engine.ExportHeaderRow(t, delimRune(r.URL.Query().Get("delimiter")))
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+t.Name+`.csv"`)
	_, _ = w.Write([]byte(line))
}

type importTemplateRequest struct {
	Content string `json:"content"`
	Name    string `json:"name,omitempty"`
}

// handleImportTemplate builds and stores a template from the header line
// of delimited text. Every column comes in as a generic text column.
func (s *Server) handleImportTemplate(w http.ResponseWriter, r *http.Request) {
	var req importTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, err.Error())
		return
	}

	t, err := engine.ImportHeaderRow(req.Content)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if req.Name != "" {
		t.Name = req.Name
	}

	saved, err := s.store.Save(r.Context(), t)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

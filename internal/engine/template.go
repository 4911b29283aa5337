package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// TemplateColumn defines one target column of a reusable schema.
type TemplateColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Formula  string `json:"formula,omitempty"`
}

// Template is a named, reusable target schema independent of any specific
// source table.
type Template struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Columns     []TemplateColumn `json:"columns"`
}

// clone returns a deep copy so store implementations never hand out
// aliased column slices.
func (t Template) clone() Template {
	out := t
	out.Columns = make([]TemplateColumn, len(t.Columns))
	copy(out.Columns, t.Columns)
	return out
}

// ValidateTemplate enforces store invariants: a non-empty name and a
// non-empty column list in which every column is named.
func ValidateTemplate(t Template) error {
	if strings.TrimSpace(t.Name) == "" {
		return &InvalidTemplateError{Reason: "name is required"}
	}
	if len(t.Columns) == 0 {
		return &InvalidTemplateError{Reason: "at least one column is required"}
	}
	for i, c := range t.Columns {
		if strings.TrimSpace(c.Name) == "" {
			return &InvalidTemplateError{Reason: fmt.Sprintf("column %d has no name", i+1)}
		}
	}
	return nil
}

// ExportHeaderRow serializes a template as a single delimited header line,
// the flat interchange format for template sharing.
func ExportHeaderRow(t Template, delimiter rune) (string, error) {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	tab := Table{Headers: names, Delimiter: delimiter}
	return Serialize(tab)
}

// ImportHeaderRow builds a template from the first line of delimited text.
// Every field becomes a generic text column. The template is not yet saved
// and carries no ID.
func ImportHeaderRow(text string) (Template, error) {
	parsed, err := Parse([]byte(text), ParseOptions{HasHeader: true, Name: "header-row import"})
	if err != nil {
		return Template{}, err
	}

	cols := make([]TemplateColumn, len(parsed.Headers))
	for i, h := range parsed.Headers {
		cols[i] = TemplateColumn{Name: h, Type: "text"}
	}
	return Template{Name: "Imported template", Columns: cols}, nil
}

// TemplateStore is CRUD over named target schemas. The backing store is an
// external collaborator; implementations live with their persistence
// mechanism and are injected into callers, never reached through a global.
type TemplateStore interface {
	List(ctx context.Context) ([]Template, error)
	Get(ctx context.Context, id string) (Template, error)
	// Save validates and persists a template, assigning an ID if absent.
	Save(ctx context.Context, t Template) (Template, error)
	// Duplicate copies a template under a fresh ID with a marker appended
	// to the name.
	Duplicate(ctx context.Context, id string) (Template, error)
	// Delete reports whether a template was actually removed.
	Delete(ctx context.Context, id string) (bool, error)
}

// MemoryStore is the in-process TemplateStore used by tests and
// deployments without a database.
type MemoryStore struct {
	mu        sync.RWMutex
	templates map[string]Template
}

// NewMemoryStore returns an empty in-memory template store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{templates: make(map[string]Template)}
}

func (s *MemoryStore) List(ctx context.Context) ([]Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Template, 0, len(s.templates))
	for _, t := range s.templates {
		out = append(out, t.clone())
	}
	// Sorted by name for consistent listings.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}
	return t.clone(), nil
}

func (s *MemoryStore) Save(ctx context.Context, t Template) (Template, error) {
	if err := ValidateTemplate(t); err != nil {
		return Template{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	s.templates[t.ID] = t.clone()
	return t.clone(), nil
}

func (s *MemoryStore) Duplicate(ctx context.Context, id string) (Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, ok := s.templates[id]
	if !ok {
		return Template{}, ErrTemplateNotFound
	}

	copied := src.clone()
	copied.ID = uuid.NewString()
	copied.Name = src.Name + " (Copy)"
	s.templates[copied.ID] = copied
	return copied.clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[id]; !ok {
		return false, nil
	}
	delete(s.templates, id)
	return true, nil
}

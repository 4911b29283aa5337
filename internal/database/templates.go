package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jahartmann/ollama-flow-sub000/internal/engine"
)

// TemplateStore implements engine.TemplateStore on PostgreSQL.
type TemplateStore struct {
	db DBTX
}

// NewTemplateStore returns a template store backed by db.
func NewTemplateStore(db DBTX) *TemplateStore {
	return &TemplateStore{db: db}
}

func (s *TemplateStore) List(ctx context.Context) ([]engine.Template, error) {
	const q = `
SELECT id, name, description, columns
FROM csv_templates
ORDER BY name, id`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []engine.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("list templates: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

func (s *TemplateStore) Get(ctx context.Context, id string) (engine.Template, error) {
	pgID, err := parseID(id)
	if err != nil {
		return engine.Template{}, engine.ErrTemplateNotFound
	}

	const q = `
SELECT id, name, description, columns
FROM csv_templates
WHERE id = $1`

	t, err := scanTemplate(s.db.QueryRow(ctx, q, pgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return engine.Template{}, engine.ErrTemplateNotFound
	}
	if err != nil {
		return engine.Template{}, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (s *TemplateStore) Save(ctx context.Context, t engine.Template) (engine.Template, error) {
	if err := engine.ValidateTemplate(t); err != nil {
		return engine.Template{}, err
	}

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	pgID, err := parseID(t.ID)
	if err != nil {
		return engine.Template{}, fmt.Errorf("save template: invalid id %q", t.ID)
	}

	cols, err := json.Marshal(t.Columns)
	if err != nil {
		return engine.Template{}, fmt.Errorf("save template: %w", err)
	}

	const q = `
INSERT INTO csv_templates (id, name, description, columns)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE SET
	name        = EXCLUDED.name,
	description = EXCLUDED.description,
	columns     = EXCLUDED.columns,
	updated_at  = now()`

	if _, err := s.db.Exec(ctx, q, pgID, t.Name, t.Description, cols); err != nil {
		return engine.Template{}, fmt.Errorf("save template: %w", err)
	}
	return t, nil
}

func (s *TemplateStore) Duplicate(ctx context.Context, id string) (engine.Template, error) {
	src, err := s.Get(ctx, id)
	if err != nil {
		return engine.Template{}, err
	}

	src.ID = uuid.NewString()
	src.Name += " (Copy)"
	return s.Save(ctx, src)
}

func (s *TemplateStore) Delete(ctx context.Context, id string) (bool, error) {
	pgID, err := parseID(id)
	if err != nil {
		return false, nil
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM csv_templates WHERE id = $1`, pgID)
	if err != nil {
		return false, fmt.Errorf("delete template: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// scanTemplate reads one template row. pgx.Row and pgx.Rows share the Scan
// method, so both Get and List go through here.
func scanTemplate(row pgx.Row) (engine.Template, error) {
	var (
		pgID pgtype.UUID
		t    engine.Template
		cols []byte
	)
	if err := row.Scan(&pgID, &t.Name, &t.Description, &cols); err != nil {
		return engine.Template{}, err
	}

	t.ID = uuid.UUID(pgID.Bytes).String()
	if err := json.Unmarshal(cols, &t.Columns); err != nil {
		return engine.Template{}, fmt.Errorf("decode columns: %w", err)
	}
	return t, nil
}

func parseID(id string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

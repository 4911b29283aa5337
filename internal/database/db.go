// Package database persists templates in PostgreSQL. It is one of the
// engine's external collaborators: the engine defines the TemplateStore
// operations, this package backs them with a csv_templates table.
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Migrate creates the csv_templates table if it does not exist. Column
// definitions are stored as JSONB so template shape changes never require
// a schema migration.
func Migrate(ctx context.Context, db DBTX) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS csv_templates (
	id          UUID PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	columns     JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("migrate csv_templates: %w", err)
	}
	return nil
}

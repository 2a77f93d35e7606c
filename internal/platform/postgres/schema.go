package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

// schemaSQL is embedded so the service can self-bootstrap its schema.
//
//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies schema.sql. Safe to run multiple times.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

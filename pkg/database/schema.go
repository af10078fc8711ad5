package database

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/studydash/pkg/config"
)

//go:embed schema/*.sql
var schemaFiles embed.FS

// Tables in dependency order; resets drop them in reverse.
var tables = []string{"persons", "programs", "modules", "enrollments"}

// Migrate creates missing tables and indexes for the connection's dialect.
// When reset is set every table is dropped first.
func Migrate(ctx context.Context, db *sqlx.DB, reset bool) error {
	dialect := db.DriverName()
	if dialect != config.DriverSQLite && dialect != config.DriverPostgres {
		return fmt.Errorf("migrate: unsupported driver %q", dialect)
	}

	if reset {
		for i := len(tables) - 1; i >= 0; i-- {
			if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+tables[i]); err != nil {
				return fmt.Errorf("drop %s: %w", tables[i], err)
			}
		}
	}

	raw, err := schemaFiles.ReadFile("schema/" + dialect + ".sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}
	for _, stmt := range Statements(string(raw)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

// Statements splits a schema script on semicolons, dropping empty fragments.
func Statements(script string) []string {
	parts := strings.Split(script, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// insertReturningID runs a named INSERT ... RETURNING id and returns the new key.
// Both supported drivers understand RETURNING.
func insertReturningID(ctx context.Context, db *sqlx.DB, query string, arg interface{}) (int64, error) {
	rows, err := db.NamedQueryContext(ctx, query, arg)
	if err != nil {
		return 0, err
	}
	defer rows.Close() //nolint:errcheck

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, sql.ErrNoRows
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, rows.Err()
}

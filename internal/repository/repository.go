package repository

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql operations the repositories need.
// Both *sql.DB and *sql.Tx satisfy it, so the product removal coordinator
// can rebind the same repositories onto a single transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

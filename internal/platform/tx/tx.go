// Package tx holds the small SQL abstractions shared by the database-backed
// repositories.
package tx

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by repositories. Both *sql.DB and
// *sql.Tx satisfy it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Within begins a transaction, runs fn with it, and commits on success. Any
// error or panic rolls the transaction back; panics are rethrown.
func Within(ctx context.Context, db *sql.DB, fn func(ctx context.Context, q DBTX) error) (err error) {
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = t.Rollback()
			panic(p)
		}
		if err != nil {
			_ = t.Rollback()
			return
		}
		err = t.Commit()
	}()

	err = fn(ctx, t)
	return err
}

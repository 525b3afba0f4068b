package repository

import (
	"context"
	"database/sql"

	"github.com/gstbridge/gstr-ledger/internal/infrastructure/persistence/sqlite"
)

// executor interface covers both *sql.DB and *sql.Tx
type executor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// getExecutor returns the context transaction when one is open, else the
// plain connection.
func getExecutor(ctx context.Context, db *sql.DB) executor {
	if tx, ok := sqlite.TxFrom(ctx); ok {
		return tx
	}
	return db
}

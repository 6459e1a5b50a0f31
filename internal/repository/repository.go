package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

// queryer is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repositories hold a queryer so callers can rebind them to an explicit
// transaction with WithTx instead of relying on shared session state.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// mapScanErr converts sql.ErrNoRows into the domain not-found error.
func mapScanErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

// requireAffected turns a zero-row write into a not-found error.
func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fleetstack/fleetpoint/internal/domain"
)

type txRunner struct {
	db *sql.DB
}

// NewTxRunner creates a TxManager over the connection pool.
func NewTxRunner(db *sql.DB) domain.TxManager {
	return &txRunner{db: db}
}

func (r *txRunner) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

package domain

import (
	"context"
	"database/sql"
)

// TxManager runs a function inside a database transaction. The
// transaction is rolled back when fn returns an error and committed
// otherwise, so trip writes and derived deductions are all-or-nothing.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

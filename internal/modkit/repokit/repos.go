// Package repokit binds repositories to a query surface and decorates transactions
package repokit

import (
	"context"

	"babyfood/internal/platform/store"
)

type (
	// Queryer is the read and write surface repos are bound to
	Queryer = store.RowQuerier

	// TxRunner runs a function inside a transaction
	TxRunner = store.TxRunner

	// Rows is a result set
	Rows = store.Rows

	// Row is a single row result
	Row = store.Row

	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// WithTx runs fn inside a transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}

// Package repotest provides a transaction runner for service tests whose repos are in-memory fakes
package repotest

import (
	"context"
	"errors"

	"babyfood/internal/modkit/repokit"
)

// ErrNoSQL is returned by every direct query; fakes bound through a Binder never issue SQL
var ErrNoSQL = errors.New("repotest: direct sql not supported")

// Tx is a TxRunner that records transactions and runs fn inline
// a failing fn leaves Commits unchanged, so tests can assert rollbacks
type Tx struct {
	Begins  int
	Commits int

	// BeginErr fails every Tx before fn runs
	BeginErr error
}

// Tx runs fn and counts the outcome
func (t *Tx) Tx(_ context.Context, fn func(q repokit.Queryer) error) error {
	t.Begins++
	if t.BeginErr != nil {
		return t.BeginErr
	}
	if err := fn(t); err != nil {
		return err
	}
	t.Commits++
	return nil
}

// Exec fails with ErrNoSQL
func (t *Tx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) {
	return nil, ErrNoSQL
}

// Query fails with ErrNoSQL
func (t *Tx) Query(context.Context, string, ...any) (repokit.Rows, error) {
	return nil, ErrNoSQL
}

// QueryRow returns a row whose Scan fails with ErrNoSQL
func (t *Tx) QueryRow(context.Context, string, ...any) repokit.Row { return errRow{} }

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoSQL }

// Binder always binds to repo, whatever Queryer it is given
func Binder[T any](repo T) repokit.Binder[T] {
	return repokit.BindFunc[T](func(repokit.Queryer) T { return repo })
}

// Package guardrails keeps two workers from running the same job at once
package guardrails

import (
	"context"
	"errors"

	"babyfood/internal/modkit/repokit"
	"babyfood/internal/platform/store"
)

// ErrLeaseHeld signals another worker is running the job
var ErrLeaseHeld = errors.New("worker: job lease already held")

// LeaseFunc runs do while holding the lease for job
type LeaseFunc func(ctx context.Context, job string, do func(context.Context) error) error

const tryLockSQL = `SELECT pg_try_advisory_xact_lock(hashtext($1))`

// AdvisoryLease holds a transaction-scoped postgres advisory lock on the job name while do runs
// the lock is released when do returns, whatever the outcome
func AdvisoryLease(db repokit.TxRunner) LeaseFunc {
	return func(ctx context.Context, job string, do func(context.Context) error) error {
		return db.Tx(ctx, func(q repokit.Queryer) error {
			ok, err := store.Scalar[bool](ctx, q, tryLockSQL, "babyfood:"+job)
			if err != nil {
				return err
			}
			if !ok {
				return ErrLeaseHeld
			}
			return do(ctx)
		})
	}
}

// NoLease runs do directly; single-process deployments and tests
func NoLease(ctx context.Context, _ string, do func(context.Context) error) error { return do(ctx) }

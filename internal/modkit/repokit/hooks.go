package repokit

import (
	"context"

	"babyfood/internal/platform/store"
)

// BeginHook runs first inside every transaction, on the transaction's Queryer
type BeginHook func(ctx context.Context, q Queryer) error

// ActorHook exposes the context actor to SQL as current_setting('app.user_id')
func ActorHook() BeginHook { return store.TagActor }

// WithBeginHooks wraps inner so hooks run at the start of every Tx
// plain Exec and Query calls pass straight through
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	if len(hooks) == 0 {
		return inner
	}
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}

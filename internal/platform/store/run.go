package store

import "context"

// SetActorSQL exposes the actor to SQL for the rest of the transaction as current_setting('app.user_id')
const SetActorSQL = `SELECT set_config('app.user_id', $1, true)`

// TagActor applies SetActorSQL when ctx carries an actor
func TagActor(ctx context.Context, q RowQuerier) error {
	uid, ok := Actor(ctx)
	if !ok {
		return nil
	}
	var ignored string
	return q.QueryRow(ctx, SetActorSQL, uid).Scan(&ignored)
}

// RunAs runs fn in a transaction tagged with userID
func RunAs(ctx context.Context, tx TxRunner, userID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithActor(ctx, userID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		if err := TagActor(ctx, q); err != nil {
			return err
		}
		return fn(ctx, q)
	})
}

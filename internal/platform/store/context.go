package store

import "context"

type actorKey struct{}

// WithActor records which user a unit of work runs on behalf of
func WithActor(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, actorKey{}, userID)
}

// Actor returns the user recorded by WithActor
func Actor(ctx context.Context) (string, bool) {
	s, _ := ctx.Value(actorKey{}).(string)
	return s, s != ""
}

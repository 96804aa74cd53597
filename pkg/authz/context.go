package authz

import "context"

// actorCtxKey is an unexported type used as the context key for Actor.
type actorCtxKey struct{}

// WithActor returns a new context with the given Actor attached.
func WithActor(ctx context.Context, a Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey{}, a)
}

// ActorFromContext retrieves the Actor from the context.
// Returns the zero value and false if no actor is set.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorCtxKey{}).(Actor)
	return a, ok
}

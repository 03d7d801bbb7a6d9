package pkg

import "context"

// DefaultActor is recorded when a request does not name its actor.
const DefaultActor = "system"

type actorKey struct{}

// WithActor returns a copy of ctx carrying the acting user's name.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFrom returns the actor stored in ctx, or DefaultActor.
func ActorFrom(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return DefaultActor
}

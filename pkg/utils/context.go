package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// ActorIDKey carries the id of the user acting on the request, as resolved
// by the identity middleware. Authentication itself happens upstream.
const ActorIDKey contextKey = "actor_id"

func GetActorIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	actorVal := ctx.Value(ActorIDKey)
	if actorVal == nil {
		return uuid.Nil, false
	}

	actorStr, ok := actorVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	actorID, err := uuid.Parse(actorStr)
	if err != nil {
		return uuid.Nil, false
	}

	return actorID, true
}

func SetActorContext(ctx context.Context, actorID uuid.UUID) context.Context {
	return context.WithValue(ctx, ActorIDKey, actorID.String())
}

package authz

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context carries the actor identity and lazily cached rank lookups through
// all authorization checks of one request or list operation. Checkers fill
// the caches on first use, so authorizing a list of resources costs the same
// two reads as authorizing a single one.
//
// A Context must not be shared across requests: the cached ranks are only
// valid for the request they were loaded in.
type Context struct {
	ActorID primitive.ObjectID

	actorRank *int
	ranks     map[string]int
}

// NewContext creates an authorization context for the given actor.
func NewContext(actorID primitive.ObjectID) *Context {
	return &Context{ActorID: actorID}
}

// Preload fetches the actor rank and the full rank table up front. List
// views call this once before iterating.
func (a *Context) Preload(ctx context.Context, store *HierarchyStore) error {
	if _, err := a.resolveActorRank(ctx, store); err != nil {
		return err
	}
	_, err := a.rankTable(ctx, store)
	return err
}

// resolveActorRank returns the cached actor rank, fetching it once if needed.
func (a *Context) resolveActorRank(ctx context.Context, store *HierarchyStore) (int, error) {
	if a.actorRank != nil {
		return *a.actorRank, nil
	}

	rank, err := store.ActorRank(ctx, a.ActorID)
	if err != nil {
		return RankUnknown, err
	}
	a.actorRank = &rank
	return rank, nil
}

// rankTable returns the cached rank table, fetching it once if needed.
func (a *Context) rankTable(ctx context.Context, store *HierarchyStore) (map[string]int, error) {
	if a.ranks != nil {
		return a.ranks, nil
	}

	ranks, err := store.Ranks(ctx)
	if err != nil {
		return nil, err
	}
	a.ranks = ranks
	return ranks, nil
}

package authz

import (
	"context"
	"log"

	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClientFacts are the ownership and state facts a client check needs.
type ClientFacts struct {
	OwnerID *primitive.ObjectID // assigned user, nil = unassigned
	Deleted bool
}

// ClientChecker decides grant/deny for client operations.
type ClientChecker struct {
	store      *HierarchyStore
	logDenials bool
}

// NewClientChecker creates a ClientChecker that logs denials.
func NewClientChecker(store *HierarchyStore) *ClientChecker {
	return &ClientChecker{store: store, logDenials: true}
}

// Silent returns a copy that does not log denials, for checks that are an
// expected branch of UI rendering rather than a rejected request.
func (c *ClientChecker) Silent() *ClientChecker {
	return &ClientChecker{store: c.store}
}

// CanRead grants newcomer-or-above for non-deleted clients and
// managing_advisor-or-above for deleted ones.
func (c *ClientChecker) CanRead(ctx context.Context, actx *Context, facts ClientFacts) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	minimum := models.RoleNewcomer
	if facts.Deleted {
		minimum = models.RoleManagingAdvisor
	}
	if satisfiesRole(ranks, actorRank, minimum) {
		return true, nil
	}
	return c.deny(actx, "read client"), nil
}

// CanCreate grants advisor-or-above.
func (c *ClientChecker) CanCreate(ctx context.Context, actx *Context) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleAdvisor) {
		return true, nil
	}
	return c.deny(actx, "create client"), nil
}

// CanUpdate grants the assigned user at advisor-or-above, or
// managing_advisor-or-above for any client. Deleted clients are only
// updatable by managing_advisor-or-above.
func (c *ClientChecker) CanUpdate(ctx context.Context, actx *Context, facts ClientFacts) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
		return true, nil
	}
	if facts.Deleted {
		return c.deny(actx, "update deleted client"), nil
	}
	if satisfiesRole(ranks, actorRank, models.RoleAdvisor) &&
		facts.OwnerID != nil && *facts.OwnerID == actx.ActorID {
		return true, nil
	}
	return c.deny(actx, "update client"), nil
}

// CanDelete grants managing_advisor-or-above.
func (c *ClientChecker) CanDelete(ctx context.Context, actx *Context, facts ClientFacts) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
		return true, nil
	}
	return c.deny(actx, "delete client"), nil
}

// CanAssignUser grants advisor-or-above for assigning a client to themself
// or leaving it unassigned, and managing_advisor-or-above for assigning to
// anyone else.
func (c *ClientChecker) CanAssignUser(ctx context.Context, actx *Context, assigneeID *primitive.ObjectID) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
		return true, nil
	}
	if satisfiesRole(ranks, actorRank, models.RoleAdvisor) &&
		(assigneeID == nil || *assigneeID == actx.ActorID) {
		return true, nil
	}
	return c.deny(actx, "assign client"), nil
}

func (c *ClientChecker) resolve(ctx context.Context, actx *Context) (int, map[string]int, error) {
	actorRank, err := actx.resolveActorRank(ctx, c.store)
	if err != nil {
		return RankUnknown, nil, err
	}
	ranks, err := actx.rankTable(ctx, c.store)
	if err != nil {
		return RankUnknown, nil, err
	}
	return actorRank, ranks, nil
}

func (c *ClientChecker) deny(actx *Context, action string) bool {
	if c.logDenials {
		log.Printf("authorization denied: actor %s may not %s", actx.ActorID.Hex(), action)
	}
	return false
}

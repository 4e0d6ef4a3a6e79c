package authz

import (
	"context"
	"log"

	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserFacts identify the target user of a user-resource check.
type UserFacts struct {
	ID   primitive.ObjectID
	Rank int // the target's hierarchy rank
}

// UserChecker decides grant/deny for operations on user accounts.
type UserChecker struct {
	store      *HierarchyStore
	logDenials bool
}

// NewUserChecker creates a UserChecker that logs denials.
func NewUserChecker(store *HierarchyStore) *UserChecker {
	return &UserChecker{store: store, logDenials: true}
}

// Silent returns a copy that does not log denials.
func (c *UserChecker) Silent() *UserChecker {
	return &UserChecker{store: c.store}
}

// CanRead grants managing_advisor-or-above for any user, and every actor for
// their own profile.
func (c *UserChecker) CanRead(ctx context.Context, actx *Context, target UserFacts) (bool, error) {
	if target.ID == actx.ActorID {
		return true, nil
	}

	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
		return true, nil
	}
	return c.deny(actx, "read user"), nil
}

// CanCreate grants managing_advisor-or-above. Self-registration runs outside
// this check.
func (c *UserChecker) CanCreate(ctx context.Context, actx *Context) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) {
		return true, nil
	}
	return c.deny(actx, "create user"), nil
}

// CanUpdate grants the actor themself, admin for anyone, and
// managing_advisor-or-above for targets ranked advisor-or-lower.
func (c *UserChecker) CanUpdate(ctx context.Context, actx *Context, target UserFacts) (bool, error) {
	if target.ID == actx.ActorID {
		return true, nil
	}

	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleAdmin) {
		return true, nil
	}
	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) &&
		atMostRole(ranks, target.Rank, models.RoleAdvisor) {
		return true, nil
	}
	return c.deny(actx, "update user"), nil
}

// CanDelete grants self-deletion for every actor, admin for anyone, and
// managing_advisor-or-above for targets ranked advisor-or-lower.
func (c *UserChecker) CanDelete(ctx context.Context, actx *Context, target UserFacts) (bool, error) {
	if target.ID == actx.ActorID {
		return true, nil
	}

	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleAdmin) {
		return true, nil
	}
	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) &&
		atMostRole(ranks, target.Rank, models.RoleAdvisor) {
		return true, nil
	}
	return c.deny(actx, "delete user"), nil
}

// CanAssignRole grants an actor ranked strictly above managing_advisor
// (admin) any assignment. A managing_advisor may only hand out roles ranked
// advisor-or-lower, and only to targets themselves ranked advisor-or-lower:
// they can never promote or demote another managing_advisor or an admin.
func (c *UserChecker) CanAssignRole(ctx context.Context, actx *Context, target UserFacts, newRoleRank int) (bool, error) {
	actorRank, ranks, err := c.resolve(ctx, actx)
	if err != nil {
		return false, err
	}

	managingRank, ok := ranks[models.RoleManagingAdvisor]
	if !ok {
		// A required role missing from the rank table denies.
		return c.deny(actx, "assign role"), nil
	}
	if actorRank < managingRank {
		return true, nil
	}
	if actorRank == managingRank &&
		atMostRole(ranks, newRoleRank, models.RoleAdvisor) &&
		atMostRole(ranks, target.Rank, models.RoleAdvisor) {
		return true, nil
	}
	return c.deny(actx, "assign role"), nil
}

func (c *UserChecker) resolve(ctx context.Context, actx *Context) (int, map[string]int, error) {
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

func (c *UserChecker) deny(actx *Context, action string) bool {
	if c.logDenials {
		log.Printf("authorization denied: actor %s may not %s", actx.ActorID.Hex(), action)
	}
	return false
}

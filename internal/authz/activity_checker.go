package authz

import (
	"context"
	"log"

	"casetrack/internal/models"
)

// ActivityChecker decides grant/deny for reading user activity logs.
type ActivityChecker struct {
	store      *HierarchyStore
	logDenials bool
}

// NewActivityChecker creates an ActivityChecker that logs denials.
func NewActivityChecker(store *HierarchyStore) *ActivityChecker {
	return &ActivityChecker{store: store, logDenials: true}
}

// Silent returns a copy that does not log denials.
func (c *ActivityChecker) Silent() *ActivityChecker {
	return &ActivityChecker{store: c.store}
}

// CanRead grants every actor their own activity, admin anyone's, and
// managing_advisor-or-above the activity of targets ranked
// managing_advisor-or-lower.
func (c *ActivityChecker) CanRead(ctx context.Context, actx *Context, target UserFacts) (bool, error) {
	if target.ID == actx.ActorID {
		return true, nil
	}

	actorRank, err := actx.resolveActorRank(ctx, c.store)
	if err != nil {
		return false, err
	}
	ranks, err := actx.rankTable(ctx, c.store)
	if err != nil {
		return false, err
	}

	if satisfiesRole(ranks, actorRank, models.RoleAdmin) {
		return true, nil
	}
	if satisfiesRole(ranks, actorRank, models.RoleManagingAdvisor) &&
		atMostRole(ranks, target.Rank, models.RoleManagingAdvisor) {
		return true, nil
	}
	return c.deny(actx, "read user activity"), nil
}

func (c *ActivityChecker) deny(actx *Context, action string) bool {
	if c.logDenials {
		log.Printf("authorization denied: actor %s may not %s", actx.ActorID.Hex(), action)
	}
	return false
}

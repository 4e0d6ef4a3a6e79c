package authz

import (
	"context"

	"casetrack/internal/models"
)

// RoleChecker answers the one universal question of the authorization model:
// does the actor hold at least the given role?
type RoleChecker struct {
	store *HierarchyStore
}

// NewRoleChecker creates a new RoleChecker.
func NewRoleChecker(store *HierarchyStore) *RoleChecker {
	return &RoleChecker{store: store}
}

// IsAuthorizedByRole reports whether the actor's rank is at or above the
// minimum required role. Lower-or-equal rank means equal-or-higher privilege.
func (c *RoleChecker) IsAuthorizedByRole(ctx context.Context, actx *Context, minimumRole string) (bool, error) {
	actorRank, err := actx.resolveActorRank(ctx, c.store)
	if err != nil {
		return false, err
	}

	ranks, err := actx.rankTable(ctx, c.store)
	if err != nil {
		return false, err
	}

	// An unknown required role denies rather than granting.
	return satisfiesRole(ranks, actorRank, minimumRole), nil
}

// IsAdvisorOrAbove is a shorthand for the most common minimum-role check.
func (c *RoleChecker) IsAdvisorOrAbove(ctx context.Context, actx *Context) (bool, error) {
	return c.IsAuthorizedByRole(ctx, actx, models.RoleAdvisor)
}

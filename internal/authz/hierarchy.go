// Package authz implements the role-hierarchy authorization model.
//
// Every decision reduces to comparing integer hierarchy ranks: a lower rank
// means more privilege, and an actor satisfies a requirement when their rank
// is lower than or equal to the required role's rank. Ranks are stored data,
// read from the roles collection on every check so role changes take effect
// on the actor's next request.
package authz

import (
	"context"
	"errors"
	"log"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RankUnknown is the rank assigned to unknown or absent actors and to users
// with a dangling role id. It is larger than any real rank, so a holder of
// it satisfies no minimum-role requirement: absence of a row means lowest
// privilege, not an error. Required roles missing from the rank table are a
// separate case, handled by satisfiesRole and atMostRole denying outright.
const RankUnknown = 1000

// HierarchyStore resolves actors and roles to hierarchy ranks.
type HierarchyStore struct {
	users repository.UserRepository
	roles repository.RoleRepository
}

// NewHierarchyStore creates a new HierarchyStore.
func NewHierarchyStore(users repository.UserRepository, roles repository.RoleRepository) *HierarchyStore {
	return &HierarchyStore{
		users: users,
		roles: roles,
	}
}

// ActorRank returns the hierarchy rank of the given actor. A zero actor id
// is logged as an error (checks should only run post-authentication) and a
// missing user or role row yields RankUnknown; neither is an error.
func (s *HierarchyStore) ActorRank(ctx context.Context, actorID primitive.ObjectID) (int, error) {
	if actorID.IsZero() {
		log.Printf("ERROR: authorization check invoked without an actor id")
		return RankUnknown, nil
	}

	user, err := s.users.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return RankUnknown, nil
		}
		return RankUnknown, err
	}

	return s.RankForRoleID(ctx, user.RoleID)
}

// RankForRoleID returns the rank of a role id, RankUnknown if the role
// does not exist.
func (s *HierarchyStore) RankForRoleID(ctx context.Context, roleID primitive.ObjectID) (int, error) {
	role, err := s.roles.FindByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrRoleNotFound) {
			return RankUnknown, nil
		}
		return RankUnknown, err
	}
	return role.Hierarchy, nil
}

// Ranks returns all hierarchy ranks keyed by role name.
func (s *HierarchyStore) Ranks(ctx context.Context) (map[string]int, error) {
	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ranks := make(map[string]int, len(roles))
	for _, role := range roles {
		ranks[role.Name] = role.Hierarchy
	}
	return ranks, nil
}

// RanksByID returns all hierarchy ranks keyed by role id hex.
func (s *HierarchyStore) RanksByID(ctx context.Context) (map[string]int, error) {
	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ranks := make(map[string]int, len(roles))
	for _, role := range roles {
		ranks[role.ID.Hex()] = role.Hierarchy
	}
	return ranks, nil
}

// RoleIDByName returns the id of the named role.
func (s *HierarchyStore) RoleIDByName(ctx context.Context, name string) (primitive.ObjectID, error) {
	role, err := s.roles.FindByName(ctx, name)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return role.ID, nil
}

// satisfiesRole reports whether an actor rank meets the named minimum role.
// A minimum role missing from the rank table denies rather than granting.
func satisfiesRole(ranks map[string]int, actorRank int, minimum string) bool {
	required, ok := ranks[minimum]
	if !ok {
		return false
	}
	return actorRank <= required
}

// atMostRole reports whether a rank carries at most the privilege of the
// named role, that is, sits at the role's rank or numerically above it. A
// role missing from the rank table denies rather than granting.
func atMostRole(ranks map[string]int, rank int, ceiling string) bool {
	limit, ok := ranks[ceiling]
	if !ok {
		return false
	}
	return rank >= limit
}

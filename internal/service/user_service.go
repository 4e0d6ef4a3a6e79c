package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"casetrack/internal/authz"
	"casetrack/internal/cache"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/queue"
	"casetrack/internal/repository"
	"casetrack/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const userCacheTTL = 15 * time.Minute

// UserService handles business logic for user operations.
type UserService struct {
	users      repository.UserRepository
	roles      repository.RoleRepository
	store      *authz.HierarchyStore
	checker    *authz.UserChecker
	determiner *authz.PrivilegeDeterminer
	cache      cache.Cache
	tokenStore cache.RefreshTokenStore
	queue      queue.Queue
}

// UserServiceConfig holds the dependencies for creating a UserService.
type UserServiceConfig struct {
	Users      repository.UserRepository
	Roles      repository.RoleRepository
	Store      *authz.HierarchyStore
	Checker    *authz.UserChecker
	Determiner *authz.PrivilegeDeterminer
	Cache      cache.Cache
	TokenStore cache.RefreshTokenStore
	Queue      queue.Queue
}

// NewUserService creates a new UserService.
func NewUserService(cfg UserServiceConfig) *UserService {
	return &UserService{
		users:      cfg.Users,
		roles:      cfg.Roles,
		store:      cfg.Store,
		checker:    cfg.Checker,
		determiner: cfg.Determiner,
		cache:      cfg.Cache,
		tokenStore: cfg.TokenStore,
		queue:      cfg.Queue,
	}
}

// ListUsers returns the users the actor may read, with their roles expanded.
// Below managing advisor an actor only sees their own account.
func (s *UserService) ListUsers(ctx context.Context, actorID primitive.ObjectID) (*models.UserListResponse, error) {
	actx := authz.NewContext(actorID)
	if err := actx.Preload(ctx, s.store); err != nil {
		return nil, err
	}

	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	roleByID, err := s.roleIndex(ctx)
	if err != nil {
		return nil, err
	}

	// Visibility filtering is part of rendering, so checks run silently.
	silent := s.checker.Silent()
	items := make([]models.UserWithRole, 0, len(users))
	for i := range users {
		u := users[i]
		role, rank := roleByID[u.RoleID], authz.RankUnknown
		if role != nil {
			rank = role.Hierarchy
		}

		ok, err := silent.CanRead(ctx, actx, authz.UserFacts{ID: u.ID, Rank: rank})
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		items = append(items, models.UserWithRole{User: u, Role: role})
	}

	return &models.UserListResponse{Items: items}, nil
}

// GetUser returns a single user with the actor's computed privilege.
func (s *UserService) GetUser(ctx context.Context, actorID, id primitive.ObjectID) (*models.UserResponse, error) {
	actx := authz.NewContext(actorID)

	user, err := s.findCached(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil && !errors.Is(err, apperrors.ErrRoleNotFound) {
		return nil, err
	}

	facts := authz.UserFacts{ID: user.ID, Rank: authz.RankUnknown}
	if role != nil {
		facts.Rank = role.Hierarchy
	}

	ok, err := s.checker.CanRead(ctx, actx, facts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	priv, err := s.determiner.UserPrivilege(ctx, actx, facts)
	if err != nil {
		return nil, err
	}

	return &models.UserResponse{
		User:      models.UserWithRole{User: *user, Role: role},
		Privilege: priv.String(),
	}, nil
}

// GetUserPrivilege returns the privilege the actor holds over the target
// user. All checks run silently; an actor without any grant gets "none"
// instead of a denial.
func (s *UserService) GetUserPrivilege(ctx context.Context, actorID, id primitive.ObjectID) (*models.PrivilegeResponse, error) {
	actx := authz.NewContext(actorID)

	_, facts, err := s.findWithFacts(ctx, id)
	if err != nil {
		return nil, err
	}

	priv, err := s.determiner.UserPrivilege(ctx, actx, facts)
	if err != nil {
		return nil, err
	}

	return &models.PrivilegeResponse{Privilege: priv.String()}, nil
}

// CreateUser creates a user account on behalf of the actor. The new user
// starts as a newcomer; roles are assigned separately.
func (s *UserService) CreateUser(ctx context.Context, actorID primitive.ObjectID, req *models.CreateUserRequest) (*models.UserWithRole, error) {
	actx := authz.NewContext(actorID)

	ok, err := s.checker.CanCreate(ctx, actx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	existing, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrUserAlreadyExists
	}

	role, err := s.roles.FindByName(ctx, models.RoleNewcomer)
	if err != nil {
		return nil, err
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleID:    role.ID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	recordActivity(s.queue, actorID, models.ActionCreated, models.ResourceUser, user.ID,
		fmt.Sprintf("Created user %s %s", user.FirstName, user.LastName))

	return &models.UserWithRole{User: *user, Role: role}, nil
}

// UpdateUser updates a user's profile fields.
func (s *UserService) UpdateUser(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	actx := authz.NewContext(actorID)

	target, facts, err := s.findWithFacts(ctx, id)
	if err != nil {
		return nil, err
	}

	ok, err := s.checker.CanUpdate(ctx, actx, facts)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	updated, err := s.users.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(id.Hex()))

	recordActivity(s.queue, actorID, models.ActionUpdated, models.ResourceUser, id,
		fmt.Sprintf("Updated user %s %s", target.FirstName, target.LastName))

	return updated, nil
}

// AssignRole changes a user's role. Who may hand out which role depends on
// the actor's own rank, the target's current rank and the new role's rank.
func (s *UserService) AssignRole(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignRoleRequest) (*models.UserWithRole, error) {
	actx := authz.NewContext(actorID)

	target, facts, err := s.findWithFacts(ctx, id)
	if err != nil {
		return nil, err
	}

	role, err := s.roles.FindByName(ctx, req.RoleName)
	if err != nil {
		return nil, err
	}

	ok, err := s.checker.CanAssignRole(ctx, actx, facts, role.Hierarchy)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	if err := s.users.UpdateRole(ctx, id, role.ID); err != nil {
		return nil, err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(id.Hex()))

	recordActivity(s.queue, actorID, models.ActionAssigned, models.ResourceUser, id,
		fmt.Sprintf("Assigned role %s to %s %s", role.Name, target.FirstName, target.LastName))

	target.RoleID = role.ID
	return &models.UserWithRole{User: *target, Role: role}, nil
}

// DeleteUser soft-deletes a user and revokes all of their sessions.
func (s *UserService) DeleteUser(ctx context.Context, actorID, id primitive.ObjectID) error {
	actx := authz.NewContext(actorID)

	target, facts, err := s.findWithFacts(ctx, id)
	if err != nil {
		return err
	}

	ok, err := s.checker.CanDelete(ctx, actx, facts)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrForbidden
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}

	_ = s.cache.Delete(ctx, cache.UserCacheKey(id.Hex()))
	if s.tokenStore != nil {
		_ = s.tokenStore.DeleteAllByUserID(ctx, id.Hex())
	}

	recordActivity(s.queue, actorID, models.ActionDeleted, models.ResourceUser, id,
		fmt.Sprintf("Deleted user %s %s", target.FirstName, target.LastName))

	return nil
}

// findCached retrieves a user by ID, trying the cache first.
func (s *UserService) findCached(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	cacheKey := cache.UserCacheKey(id.Hex())

	var cached models.User
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err == nil && found {
		return &cached, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Cache is best effort.
	_ = s.cache.Set(ctx, cacheKey, user, userCacheTTL)

	return user, nil
}

// findWithFacts loads a user together with the facts the checkers need.
func (s *UserService) findWithFacts(ctx context.Context, id primitive.ObjectID) (*models.User, authz.UserFacts, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, authz.UserFacts{}, err
	}

	rank, err := s.store.RankForRoleID(ctx, user.RoleID)
	if err != nil {
		return nil, authz.UserFacts{}, err
	}

	return user, authz.UserFacts{ID: user.ID, Rank: rank}, nil
}

// roleIndex returns all roles keyed by their ID.
func (s *UserService) roleIndex(ctx context.Context) (map[primitive.ObjectID]*models.Role, error) {
	roles, err := s.roles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[primitive.ObjectID]*models.Role, len(roles))
	for i := range roles {
		index[roles[i].ID] = &roles[i]
	}
	return index, nil
}

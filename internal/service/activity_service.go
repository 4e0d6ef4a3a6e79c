package service

import (
	"context"

	"casetrack/internal/authz"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityService handles reading the audit log. Writing happens
// asynchronously through the queue recorder.
type ActivityService struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
	store      *authz.HierarchyStore
	checker    *authz.ActivityChecker
}

// NewActivityService creates a new ActivityService.
func NewActivityService(activities repository.ActivityRepository, users repository.UserRepository, store *authz.HierarchyStore, checker *authz.ActivityChecker) *ActivityService {
	return &ActivityService{
		activities: activities,
		users:      users,
		store:      store,
		checker:    checker,
	}
}

// ListUserActivity returns a page of a user's activity log. Actors may read
// their own log; reading someone else's requires rank over the target.
func (s *ActivityService) ListUserActivity(ctx context.Context, actorID, userID primitive.ObjectID, page, limit int) (*models.ActivityListResponse, error) {
	actx := authz.NewContext(actorID)

	target, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rank, err := s.store.RankForRoleID(ctx, target.RoleID)
	if err != nil {
		return nil, err
	}

	ok, err := s.checker.CanRead(ctx, actx, authz.UserFacts{ID: target.ID, Rank: rank})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.ErrForbidden
	}

	activities, total, err := s.activities.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	return &models.ActivityListResponse{
		Items:      activities,
		Pagination: paginate(page, limit, total),
	}, nil
}

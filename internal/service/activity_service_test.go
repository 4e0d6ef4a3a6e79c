package service

import (
	"context"
	"testing"
	"time"

	"casetrack/internal/authz"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

type activityServiceFixture struct {
	svc        *ActivityService
	activities *mocks.MockActivityRepository
	users      *mocks.MockUserRepository
	roleSet    []models.Role
}

func newActivityServiceFixture(t *testing.T) *activityServiceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	activities := mocks.NewMockActivityRepository(ctrl)
	users := mocks.NewMockUserRepository(ctrl)
	roles := mocks.NewMockRoleRepository(ctrl)

	roleSet := testRoles()
	seedRoles(roles, roleSet)

	store := authz.NewHierarchyStore(users, roles)
	svc := NewActivityService(activities, users, store, authz.NewActivityChecker(store))

	return &activityServiceFixture{svc: svc, activities: activities, users: users, roleSet: roleSet}
}

func (f *activityServiceFixture) role(name string) models.Role {
	return roleNamed(f.roleSet, name)
}

func TestActivityService_ListUserActivity(t *testing.T) {
	ctx := context.Background()

	entries := func(userID primitive.ObjectID, n int) []models.Activity {
		items := make([]models.Activity, n)
		for i := range items {
			items[i] = models.Activity{
				ID:        primitive.NewObjectID(),
				UserID:    userID,
				Action:    models.ActionUpdated,
				Resource:  models.ResourceClient,
				CreatedAt: time.Now(),
			}
		}
		return items
	}

	t.Run("actors read their own log", func(t *testing.T) {
		f := newActivityServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		f.activities.EXPECT().FindByUserID(gomock.Any(), newcomer.ID, 1, 10).
			Return(entries(newcomer.ID, 10), 25, nil)

		resp, err := f.svc.ListUserActivity(ctx, newcomer.ID, newcomer.ID, 1, 10)
		require.NoError(t, err)
		assert.Len(t, resp.Items, 10)
		assert.Equal(t, 25, resp.Pagination.TotalItems)
		assert.Equal(t, 3, resp.Pagination.TotalPages)
	})

	t.Run("newcomer may not read a foreign log", func(t *testing.T) {
		f := newActivityServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))

		_, err := f.svc.ListUserActivity(ctx, newcomer.ID, advisor.ID, 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("managing advisor reads a newcomer's log", func(t *testing.T) {
		f := newActivityServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		f.activities.EXPECT().FindByUserID(gomock.Any(), newcomer.ID, 1, 10).
			Return(entries(newcomer.ID, 2), 2, nil)

		resp, err := f.svc.ListUserActivity(ctx, managing.ID, newcomer.ID, 1, 10)
		require.NoError(t, err)
		assert.Len(t, resp.Items, 2)
	})

	t.Run("managing advisor may not read an admin's log", func(t *testing.T) {
		f := newActivityServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))
		admin := seedUser(f.users, f.role(models.RoleAdmin))

		_, err := f.svc.ListUserActivity(ctx, managing.ID, admin.ID, 1, 10)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

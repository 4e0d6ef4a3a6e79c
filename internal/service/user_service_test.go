package service

import (
	"context"
	"testing"
	"time"

	"casetrack/internal/authz"
	"casetrack/internal/cache"
	cachemocks "casetrack/internal/cache/mocks"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type userServiceFixture struct {
	svc        *UserService
	users      *mocks.MockUserRepository
	roles      *mocks.MockRoleRepository
	tokenStore *fakeTokenStore
	roleSet    []models.Role
}

func newUserServiceFixture(t *testing.T) *userServiceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	roles := mocks.NewMockRoleRepository(ctrl)

	roleSet := testRoles()
	seedRoles(roles, roleSet)

	cacheMock := cachemocks.NewMockCache(ctrl)
	cacheMock.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil).AnyTimes()
	cacheMock.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	cacheMock.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	store := authz.NewHierarchyStore(users, roles)
	tokenStore := newFakeTokenStore()

	svc := NewUserService(UserServiceConfig{
		Users:      users,
		Roles:      roles,
		Store:      store,
		Checker:    authz.NewUserChecker(store),
		Determiner: authz.NewPrivilegeDeterminer(store),
		Cache:      cacheMock,
		TokenStore: tokenStore,
	})

	return &userServiceFixture{svc: svc, users: users, roles: roles, tokenStore: tokenStore, roleSet: roleSet}
}

func (f *userServiceFixture) role(name string) models.Role {
	return roleNamed(f.roleSet, name)
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("admin sees everyone", func(t *testing.T) {
		f := newUserServiceFixture(t)
		admin := seedUser(f.users, f.role(models.RoleAdmin))
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		f.users.EXPECT().FindAll(gomock.Any()).Return([]models.User{*admin, *advisor, *newcomer}, nil)

		resp, err := f.svc.ListUsers(ctx, admin.ID)
		require.NoError(t, err)
		assert.Len(t, resp.Items, 3)
		assert.Equal(t, models.RoleAdmin, resp.Items[0].Role.Name)
	})

	t.Run("newcomer only sees themselves", func(t *testing.T) {
		f := newUserServiceFixture(t)
		admin := seedUser(f.users, f.role(models.RoleAdmin))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		f.users.EXPECT().FindAll(gomock.Any()).Return([]models.User{*admin, *newcomer}, nil)

		resp, err := f.svc.ListUsers(ctx, newcomer.ID)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, newcomer.ID, resp.Items[0].ID)
	})
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()

	t.Run("self read includes delete privilege", func(t *testing.T) {
		f := newUserServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		resp, err := f.svc.GetUser(ctx, newcomer.ID, newcomer.ID)
		require.NoError(t, err)
		assert.Equal(t, newcomer.ID, resp.User.ID)
		// Everyone may delete their own account.
		assert.Equal(t, "delete", resp.Privilege)
	})

	t.Run("newcomer may not read others", func(t *testing.T) {
		f := newUserServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))

		_, err := f.svc.GetUser(ctx, newcomer.ID, advisor.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("managing advisor reads others", func(t *testing.T) {
		f := newUserServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		resp, err := f.svc.GetUser(ctx, managing.ID, newcomer.ID)
		require.NoError(t, err)
		assert.Equal(t, "delete", resp.Privilege)
	})
}

func TestUserService_GetUserPrivilege(t *testing.T) {
	ctx := context.Background()

	t.Run("newcomer holds none over a foreign user", func(t *testing.T) {
		f := newUserServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))

		resp, err := f.svc.GetUserPrivilege(ctx, newcomer.ID, advisor.ID)
		require.NoError(t, err)
		assert.Equal(t, "none", resp.Privilege)
	})

	t.Run("managing advisor holds delete over a newcomer", func(t *testing.T) {
		f := newUserServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		resp, err := f.svc.GetUserPrivilege(ctx, managing.ID, newcomer.ID)
		require.NoError(t, err)
		assert.Equal(t, "delete", resp.Privilege)
	})
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("managing advisor creates a newcomer", func(t *testing.T) {
		f := newUserServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))

		f.users.EXPECT().FindByEmail(gomock.Any(), "new@example.com").Return(nil, apperrors.ErrUserNotFound)
		f.users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(passthroughCreate())

		created, err := f.svc.CreateUser(ctx, managing.ID, &models.CreateUserRequest{
			Email:     "new@example.com",
			Password:  "secret12345",
			FirstName: "Jonas",
			LastName:  "Weber",
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleNewcomer, created.Role.Name)
	})

	t.Run("advisor may not create users", func(t *testing.T) {
		f := newUserServiceFixture(t)
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))

		_, err := f.svc.CreateUser(ctx, advisor.ID, &models.CreateUserRequest{
			Email:     "new@example.com",
			Password:  "secret12345",
			FirstName: "Jonas",
			LastName:  "Weber",
		})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestUserService_AssignRole(t *testing.T) {
	ctx := context.Background()

	t.Run("managing advisor promotes newcomer to advisor", func(t *testing.T) {
		f := newUserServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		advisorRole := f.role(models.RoleAdvisor)

		f.users.EXPECT().UpdateRole(gomock.Any(), newcomer.ID, advisorRole.ID).Return(nil)

		updated, err := f.svc.AssignRole(ctx, managing.ID, newcomer.ID, &models.AssignRoleRequest{RoleName: models.RoleAdvisor})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdvisor, updated.Role.Name)
	})

	t.Run("managing advisor may not hand out admin", func(t *testing.T) {
		f := newUserServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		_, err := f.svc.AssignRole(ctx, managing.ID, newcomer.ID, &models.AssignRoleRequest{RoleName: models.RoleAdmin})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("managing advisor may not touch an admin", func(t *testing.T) {
		f := newUserServiceFixture(t)
		managing := seedUser(f.users, f.role(models.RoleManagingAdvisor))
		admin := seedUser(f.users, f.role(models.RoleAdmin))

		_, err := f.svc.AssignRole(ctx, managing.ID, admin.ID, &models.AssignRoleRequest{RoleName: models.RoleAdvisor})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("admin may assign any role", func(t *testing.T) {
		f := newUserServiceFixture(t)
		admin := seedUser(f.users, f.role(models.RoleAdmin))
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))
		managingRole := f.role(models.RoleManagingAdvisor)

		f.users.EXPECT().UpdateRole(gomock.Any(), advisor.ID, managingRole.ID).Return(nil)

		updated, err := f.svc.AssignRole(ctx, admin.ID, advisor.ID, &models.AssignRoleRequest{RoleName: models.RoleManagingAdvisor})
		require.NoError(t, err)
		assert.Equal(t, models.RoleManagingAdvisor, updated.Role.Name)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()
	newName := "Renamed"

	t.Run("self update allowed", func(t *testing.T) {
		f := newUserServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		f.users.EXPECT().Update(gomock.Any(), newcomer.ID, gomock.Any()).
			Return(&models.User{ID: newcomer.ID, FirstName: newName}, nil)

		updated, err := f.svc.UpdateUser(ctx, newcomer.ID, newcomer.ID, &models.UpdateUserRequest{FirstName: &newName})
		require.NoError(t, err)
		assert.Equal(t, newName, updated.FirstName)
	})

	t.Run("newcomer may not update others", func(t *testing.T) {
		f := newUserServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))

		_, err := f.svc.UpdateUser(ctx, newcomer.ID, advisor.ID, &models.UpdateUserRequest{FirstName: &newName})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("self delete revokes sessions", func(t *testing.T) {
		f := newUserServiceFixture(t)
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		family := &cache.RefreshTokenData{UserID: newcomer.ID.Hex(), ExpiresAt: time.Now().Add(time.Hour)}
		require.NoError(t, f.tokenStore.Create(ctx, "family-1", family, time.Hour))
		f.users.EXPECT().SoftDelete(gomock.Any(), newcomer.ID).Return(nil)

		require.NoError(t, f.svc.DeleteUser(ctx, newcomer.ID, newcomer.ID))
		assert.Empty(t, f.tokenStore.families)
	})

	t.Run("advisor may not delete others", func(t *testing.T) {
		f := newUserServiceFixture(t)
		advisor := seedUser(f.users, f.role(models.RoleAdvisor))
		newcomer := seedUser(f.users, f.role(models.RoleNewcomer))

		err := f.svc.DeleteUser(ctx, advisor.ID, newcomer.ID)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}

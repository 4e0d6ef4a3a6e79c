package service

import (
	"context"

	"casetrack/internal/models"
	"casetrack/internal/repository/mocks"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

// Role fixtures shared across the service tests. Ranks ascend as privilege
// descends.
func testRoles() []models.Role {
	return []models.Role{
		{ID: primitive.NewObjectID(), Name: models.RoleAdmin, Hierarchy: 1},
		{ID: primitive.NewObjectID(), Name: models.RoleManagingAdvisor, Hierarchy: 2},
		{ID: primitive.NewObjectID(), Name: models.RoleAdvisor, Hierarchy: 3},
		{ID: primitive.NewObjectID(), Name: models.RoleNewcomer, Hierarchy: 4},
	}
}

// seedRoles wires a role repository mock to serve the given fixtures.
func seedRoles(repo *mocks.MockRoleRepository, roles []models.Role) {
	repo.EXPECT().FindAll(gomock.Any()).Return(roles, nil).AnyTimes()
	for i := range roles {
		r := roles[i]
		repo.EXPECT().FindByID(gomock.Any(), r.ID).Return(&r, nil).AnyTimes()
		repo.EXPECT().FindByName(gomock.Any(), r.Name).Return(&r, nil).AnyTimes()
	}
}

// roleNamed returns the fixture with the given name.
func roleNamed(roles []models.Role, name string) models.Role {
	for _, r := range roles {
		if r.Name == name {
			return r
		}
	}
	return models.Role{}
}

// seedUser registers a user with the given role on the user repository mock
// and returns it.
func seedUser(repo *mocks.MockUserRepository, role models.Role) *models.User {
	user := &models.User{
		ID:        primitive.NewObjectID(),
		Email:     primitive.NewObjectID().Hex() + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		RoleID:    role.ID,
	}
	repo.EXPECT().FindByID(gomock.Any(), user.ID).Return(user, nil).AnyTimes()
	return user
}

// passthroughCreate assigns an ID on create the way the real repositories do.
func passthroughCreate() func(ctx context.Context, user *models.User) error {
	return func(_ context.Context, user *models.User) error {
		user.ID = primitive.NewObjectID()
		return nil
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"casetrack/internal/cache"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/repository/mocks"
	"casetrack/pkg/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

// fakeTokenStore is an in-memory RefreshTokenStore for driving the rotation
// flow without Redis.
type fakeTokenStore struct {
	families map[string]*cache.RefreshTokenData
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{families: make(map[string]*cache.RefreshTokenData)}
}

func (s *fakeTokenStore) Create(_ context.Context, familyID string, data *cache.RefreshTokenData, _ time.Duration) error {
	copied := *data
	s.families[familyID] = &copied
	return nil
}

func (s *fakeTokenStore) Get(_ context.Context, familyID string) (*cache.RefreshTokenData, error) {
	data, ok := s.families[familyID]
	if !ok {
		return nil, nil
	}
	copied := *data
	return &copied, nil
}

func (s *fakeTokenStore) Rotate(_ context.Context, familyID, newTokenHash string, _ time.Duration) error {
	data, ok := s.families[familyID]
	if !ok {
		return cache.ErrRefreshTokenFamilyNotFound
	}
	data.PreviousTokenHash = data.CurrentTokenHash
	data.CurrentTokenHash = newTokenHash
	return nil
}

func (s *fakeTokenStore) Delete(_ context.Context, familyID string) error {
	delete(s.families, familyID)
	return nil
}

func (s *fakeTokenStore) DeleteAllByUserID(_ context.Context, userID string) error {
	for familyID, data := range s.families {
		if data.UserID == userID {
			delete(s.families, familyID)
		}
	}
	return nil
}

func newTestAuthService(t *testing.T) (*AuthService, *mocks.MockUserRepository, *mocks.MockRoleRepository, *fakeTokenStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	roles := mocks.NewMockRoleRepository(ctrl)
	store := newFakeTokenStore()

	svc := NewAuthService(AuthServiceConfig{
		Users:           users,
		Roles:           roles,
		TokenStore:      store,
		JWTManager:      auth.NewJWTManager("test-secret", 15*time.Minute),
		TokenGenerator:  auth.NewRefreshTokenGenerator(),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	return svc, users, roles, store
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	roleSet := testRoles()
	newcomer := roleNamed(roleSet, models.RoleNewcomer)

	t.Run("creates newcomer and returns token pair", func(t *testing.T) {
		svc, users, roles, store := newTestAuthService(t)
		seedRoles(roles, roleSet)

		users.EXPECT().FindByEmail(gomock.Any(), "new@example.com").Return(nil, apperrors.ErrUserNotFound)
		users.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(passthroughCreate())

		resp, err := svc.Register(ctx, &models.CreateUserRequest{
			Email:     "new@example.com",
			Password:  "secret12345",
			FirstName: "Maria",
			LastName:  "Keller",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, int((15 * time.Minute).Seconds()), resp.ExpiresIn)
		assert.Equal(t, newcomer.ID, resp.User.RoleID)
		assert.Len(t, store.families, 1)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, users, _, _ := newTestAuthService(t)

		users.EXPECT().FindByEmail(gomock.Any(), "taken@example.com").
			Return(&models.User{ID: primitive.NewObjectID()}, nil)

		_, err := svc.Register(ctx, &models.CreateUserRequest{
			Email:     "taken@example.com",
			Password:  "secret12345",
			FirstName: "Maria",
			LastName:  "Keller",
		})
		assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hashed, err := auth.HashPassword("secret12345")
	require.NoError(t, err)

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "advisor@example.com",
		Password: hashed,
	}

	t.Run("valid credentials", func(t *testing.T) {
		svc, users, _, store := newTestAuthService(t)
		users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: "secret12345"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Len(t, store.families, 1)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, users, _, _ := newTestAuthService(t)
		users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

		_, err := svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: "nope"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, users, _, _ := newTestAuthService(t)
		users.EXPECT().FindByEmail(gomock.Any(), "ghost@example.com").Return(nil, apperrors.ErrUserNotFound)

		_, err := svc.Login(ctx, &models.LoginRequest{Email: "ghost@example.com", Password: "secret12345"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()
	hashed, err := auth.HashPassword("secret12345")
	require.NoError(t, err)

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "advisor@example.com",
		Password: hashed,
	}

	login := func(t *testing.T, svc *AuthService, users *mocks.MockUserRepository) *models.AuthResponse {
		t.Helper()
		users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)
		resp, err := svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: "secret12345"})
		require.NoError(t, err)
		return resp
	}

	t.Run("rotation issues a new pair", func(t *testing.T) {
		svc, users, _, _ := newTestAuthService(t)
		first := login(t, svc, users)

		second, err := svc.Refresh(ctx, &models.RefreshRequest{RefreshToken: first.RefreshToken})
		require.NoError(t, err)
		assert.NotEmpty(t, second.AccessToken)
		assert.NotEmpty(t, second.RefreshToken)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	})

	t.Run("rotated token still valid once, reuse revokes family", func(t *testing.T) {
		svc, users, _, store := newTestAuthService(t)
		first := login(t, svc, users)

		_, err := svc.Refresh(ctx, &models.RefreshRequest{RefreshToken: first.RefreshToken})
		require.NoError(t, err)

		// Presenting the superseded token again is reuse.
		_, err = svc.Refresh(ctx, &models.RefreshRequest{RefreshToken: first.RefreshToken})
		assert.ErrorIs(t, err, apperrors.ErrRefreshTokenReused)
		assert.Empty(t, store.families)
	})

	t.Run("expired family", func(t *testing.T) {
		svc, users, _, store := newTestAuthService(t)
		first := login(t, svc, users)

		for _, data := range store.families {
			data.ExpiresAt = time.Now().Add(-time.Minute)
		}

		_, err := svc.Refresh(ctx, &models.RefreshRequest{RefreshToken: first.RefreshToken})
		assert.ErrorIs(t, err, apperrors.ErrRefreshTokenExpired)
		assert.Empty(t, store.families)
	})

	t.Run("unknown family", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService(t)

		_, err := svc.Refresh(ctx, &models.RefreshRequest{RefreshToken: "rt_0123456789abcdef_deadbeef"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		svc, _, _, _ := newTestAuthService(t)

		_, err := svc.Refresh(ctx, &models.RefreshRequest{RefreshToken: "not-a-refresh-token"})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	hashed, err := auth.HashPassword("secret12345")
	require.NoError(t, err)

	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "advisor@example.com",
		Password: hashed,
	}

	t.Run("revokes the token family", func(t *testing.T) {
		svc, users, _, store := newTestAuthService(t)
		users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil)

		resp, err := svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: "secret12345"})
		require.NoError(t, err)

		require.NoError(t, svc.Logout(ctx, &models.LogoutRequest{RefreshToken: resp.RefreshToken}))
		assert.Empty(t, store.families)

		_, err = svc.Refresh(ctx, &models.RefreshRequest{RefreshToken: resp.RefreshToken})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
	})

	t.Run("logout all ends every session of the user", func(t *testing.T) {
		svc, users, _, store := newTestAuthService(t)
		users.EXPECT().FindByEmail(gomock.Any(), user.Email).Return(user, nil).Times(2)

		_, err := svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: "secret12345"})
		require.NoError(t, err)
		_, err = svc.Login(ctx, &models.LoginRequest{Email: user.Email, Password: "secret12345"})
		require.NoError(t, err)
		require.Len(t, store.families, 2)

		require.NoError(t, svc.LogoutAll(ctx, user.ID))
		assert.Empty(t, store.families)
	})
}

package service

import (
	"context"
	"errors"
	"time"

	"casetrack/internal/cache"
	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"
	"casetrack/internal/repository"
	"casetrack/pkg/auth"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService handles registration, login and refresh token rotation.
// Refresh tokens live in Redis as families: each rotation replaces the
// current token hash and remembers the previous one, so presenting a
// superseded token is detected as reuse and revokes the whole family.
type AuthService struct {
	users           repository.UserRepository
	roles           repository.RoleRepository
	tokenStore      cache.RefreshTokenStore
	jwtManager      auth.TokenManager
	tokenGenerator  auth.RefreshTokenGenerator
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// AuthServiceConfig holds the dependencies for creating an AuthService.
type AuthServiceConfig struct {
	Users           repository.UserRepository
	Roles           repository.RoleRepository
	TokenStore      cache.RefreshTokenStore
	JWTManager      auth.TokenManager
	TokenGenerator  auth.RefreshTokenGenerator
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		users:           cfg.Users,
		roles:           cfg.Roles,
		tokenStore:      cfg.TokenStore,
		jwtManager:      cfg.JWTManager,
		tokenGenerator:  cfg.TokenGenerator,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
	}
}

// Register creates a new user account with the newcomer role and returns
// an initial token pair.
func (s *AuthService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
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

	return s.generateAuthResponse(ctx, user)
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := auth.CheckPassword(req.Password, user.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.generateAuthResponse(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair, rotating the
// family. Presenting the previous token of a family is treated as reuse:
// the family is revoked and the caller must log in again.
func (s *AuthService) Refresh(ctx context.Context, req *models.RefreshRequest) (*models.RefreshResponse, error) {
	familyID, err := s.tokenGenerator.ExtractFamilyID(req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	stored, err := s.tokenStore.Get(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.tokenStore.Delete(ctx, familyID)
		return nil, apperrors.ErrRefreshTokenExpired
	}

	presentedHash := s.tokenGenerator.Hash(req.RefreshToken)

	if s.tokenGenerator.CompareHashes(presentedHash, stored.CurrentTokenHash) {
		return s.performRotation(ctx, familyID, stored)
	}

	if stored.PreviousTokenHash != "" && s.tokenGenerator.CompareHashes(presentedHash, stored.PreviousTokenHash) {
		// Reuse of an already-rotated token. Revoke the entire family.
		_ = s.tokenStore.Delete(ctx, familyID)
		return nil, apperrors.ErrRefreshTokenReused
	}

	return nil, apperrors.ErrInvalidRefreshToken
}

// performRotation issues a new token pair within the same family.
func (s *AuthService) performRotation(ctx context.Context, familyID string, stored *cache.RefreshTokenData) (*models.RefreshResponse, error) {
	newToken, err := s.tokenGenerator.GenerateWithFamily(familyID)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwtManager.GenerateToken(stored.UserID)
	if err != nil {
		return nil, err
	}

	newHash := s.tokenGenerator.Hash(newToken)
	if err := s.tokenStore.Rotate(ctx, familyID, newHash, s.refreshTokenTTL); err != nil {
		if errors.Is(err, cache.ErrRefreshTokenFamilyNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, err
	}

	return &models.RefreshResponse{
		AccessToken:  accessToken,
		RefreshToken: newToken,
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
	}, nil
}

// Logout revokes the refresh token family of the presented token.
func (s *AuthService) Logout(ctx context.Context, req *models.LogoutRequest) error {
	familyID, err := s.tokenGenerator.ExtractFamilyID(req.RefreshToken)
	if err != nil {
		return apperrors.ErrInvalidRefreshToken
	}

	return s.tokenStore.Delete(ctx, familyID)
}

// LogoutAll revokes every refresh token family of a user, ending all of
// their sessions.
func (s *AuthService) LogoutAll(ctx context.Context, userID primitive.ObjectID) error {
	return s.tokenStore.DeleteAllByUserID(ctx, userID.Hex())
}

// generateAuthResponse issues a fresh token pair and a new token family
// for the given user.
func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.Hex())
	if err != nil {
		return nil, err
	}

	refreshToken, familyID, err := s.tokenGenerator.Generate()
	if err != nil {
		return nil, err
	}

	data := &cache.RefreshTokenData{
		UserID:           user.ID.Hex(),
		CurrentTokenHash: s.tokenGenerator.Hash(refreshToken),
		ExpiresAt:        time.Now().Add(s.refreshTokenTTL),
		CreatedAt:        time.Now(),
	}
	if err := s.tokenStore.Create(ctx, familyID, data, s.refreshTokenTTL); err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
		User:         *user,
	}, nil
}

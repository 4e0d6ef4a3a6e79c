// Package models defines data structures for the application.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account in the system.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty" example:"507f1f77bcf86cd799439011"`
	Email     string             `json:"email" bson:"email" example:"advisor@example.com"`
	Password  string             `json:"-" bson:"password"` // "-" = never include in JSON response
	FirstName string             `json:"firstName" bson:"firstName" example:"Maria"`
	LastName  string             `json:"lastName" bson:"lastName" example:"Keller"`
	RoleID    primitive.ObjectID `json:"roleId" bson:"roleId" example:"507f1f77bcf86cd799439012"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt" example:"2024-01-15T09:30:00Z"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt" example:"2024-01-15T09:30:00Z"`
	DeletedAt *time.Time         `json:"deletedAt,omitempty" bson:"deletedAt,omitempty"`
}

// UserWithRole is a user with the role document expanded for responses.
type UserWithRole struct {
	User
	Role *Role `json:"role,omitempty"`
}

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email" example:"advisor@example.com"`
	Password  string `json:"password" binding:"required,min=8" example:"secret12345"`
	FirstName string `json:"firstName" binding:"required,min=2" example:"Maria"`
	LastName  string `json:"lastName" binding:"required,min=2" example:"Keller"`
}

// UpdateUserRequest is the payload for updating a user.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email" example:"new@example.com"`
	FirstName *string `json:"firstName" binding:"omitempty,min=2" example:"Maria"`
	LastName  *string `json:"lastName" binding:"omitempty,min=2" example:"Keller"`
}

// AssignRoleRequest is the payload for assigning a role to a user.
type AssignRoleRequest struct {
	RoleName string `json:"roleName" binding:"required,oneof=newcomer advisor managing_advisor admin" example:"advisor"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"advisor@example.com"`
	Password string `json:"password" binding:"required" example:"secret12345"`
}

// AuthResponse is the response after successful registration or login.
type AuthResponse struct {
	AccessToken  string `json:"accessToken" example:"eyJhbGciOiJIUzI1NiIs..."`
	RefreshToken string `json:"refreshToken" example:"rt_a1b2c3d4e5f60718_..."`
	ExpiresIn    int    `json:"expiresIn" example:"900"`
	User         User   `json:"user"`
}

// RefreshRequest is the payload for refreshing an access token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshResponse is the response for a token refresh.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn" example:"900"`
}

// LogoutRequest is the payload for logging out.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserListResponse is the response for listing users.
type UserListResponse struct {
	Items []UserWithRole `json:"items"`
}

// UserResponse wraps a user with the privilege computed for the requesting actor.
type UserResponse struct {
	User      UserWithRole `json:"user"`
	Privilege string       `json:"privilege" example:"update"`
}

// PrivilegeResponse carries a bare computed privilege for the UI.
type PrivilegeResponse struct {
	Privilege string `json:"privilege" example:"update"`
}

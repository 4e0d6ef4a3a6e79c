// Package service contains business logic for the application.
package service

import (
	"context"

	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthServicer defines the interface for authentication operations.
type AuthServicer interface {
	Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Refresh(ctx context.Context, req *models.RefreshRequest) (*models.RefreshResponse, error)
	Logout(ctx context.Context, req *models.LogoutRequest) error
	LogoutAll(ctx context.Context, userID primitive.ObjectID) error
}

// UserServicer defines the interface for user operations.
type UserServicer interface {
	ListUsers(ctx context.Context, actorID primitive.ObjectID) (*models.UserListResponse, error)
	GetUser(ctx context.Context, actorID, id primitive.ObjectID) (*models.UserResponse, error)
	GetUserPrivilege(ctx context.Context, actorID, id primitive.ObjectID) (*models.PrivilegeResponse, error)
	CreateUser(ctx context.Context, actorID primitive.ObjectID, req *models.CreateUserRequest) (*models.UserWithRole, error)
	UpdateUser(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error)
	AssignRole(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignRoleRequest) (*models.UserWithRole, error)
	DeleteUser(ctx context.Context, actorID, id primitive.ObjectID) error
}

// ClientServicer defines the interface for client operations.
type ClientServicer interface {
	CreateClient(ctx context.Context, actorID primitive.ObjectID, req *models.CreateClientRequest) (*models.Client, error)
	ListClients(ctx context.Context, actorID primitive.ObjectID, page, limit int) (*models.ClientListResponse, error)
	GetClient(ctx context.Context, actorID, id primitive.ObjectID) (*models.ClientDetailResponse, error)
	UpdateClient(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateClientRequest) (*models.Client, error)
	AssignClient(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignClientRequest) (*models.Client, error)
	DeleteClient(ctx context.Context, actorID, id primitive.ObjectID) error
}

// NoteServicer defines the interface for note operations.
type NoteServicer interface {
	CreateNote(ctx context.Context, actorID, clientID primitive.ObjectID, req *models.CreateNoteRequest) (*models.CreateNoteResponse, error)
	ListNotes(ctx context.Context, actorID, clientID primitive.ObjectID) (*models.NoteListResponse, error)
	GetNote(ctx context.Context, actorID, id primitive.ObjectID) (*models.NoteWithPrivilege, error)
	UpdateNote(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateNoteRequest) (*models.Note, error)
	DeleteNote(ctx context.Context, actorID, id primitive.ObjectID) error
}

// ActivityServicer defines the interface for activity log operations.
type ActivityServicer interface {
	ListUserActivity(ctx context.Context, actorID, userID primitive.ObjectID, page, limit int) (*models.ActivityListResponse, error)
}

// Ensure concrete types implement interfaces
var (
	_ AuthServicer     = (*AuthService)(nil)
	_ UserServicer     = (*UserService)(nil)
	_ ClientServicer   = (*ClientService)(nil)
	_ NoteServicer     = (*NoteService)(nil)
	_ ActivityServicer = (*ActivityService)(nil)
)

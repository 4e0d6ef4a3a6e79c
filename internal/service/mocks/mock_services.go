// Package mocks provides mock implementations of service interfaces for testing.
package mocks

import (
	"context"

	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockAuthService is a mock implementation of AuthServicer.
type MockAuthService struct {
	RegisterFunc  func(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error)
	LoginFunc     func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	RefreshFunc   func(ctx context.Context, req *models.RefreshRequest) (*models.RefreshResponse, error)
	LogoutFunc    func(ctx context.Context, req *models.LogoutRequest) error
	LogoutAllFunc func(ctx context.Context, userID primitive.ObjectID) error
}

func (m *MockAuthService) Register(ctx context.Context, req *models.CreateUserRequest) (*models.AuthResponse, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, req *models.RefreshRequest) (*models.RefreshResponse, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockAuthService) Logout(ctx context.Context, req *models.LogoutRequest) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, req)
	}
	return nil
}

func (m *MockAuthService) LogoutAll(ctx context.Context, userID primitive.ObjectID) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

// MockUserService is a mock implementation of UserServicer.
type MockUserService struct {
	ListUsersFunc        func(ctx context.Context, actorID primitive.ObjectID) (*models.UserListResponse, error)
	GetUserFunc          func(ctx context.Context, actorID, id primitive.ObjectID) (*models.UserResponse, error)
	GetUserPrivilegeFunc func(ctx context.Context, actorID, id primitive.ObjectID) (*models.PrivilegeResponse, error)
	CreateUserFunc       func(ctx context.Context, actorID primitive.ObjectID, req *models.CreateUserRequest) (*models.UserWithRole, error)
	UpdateUserFunc       func(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error)
	AssignRoleFunc       func(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignRoleRequest) (*models.UserWithRole, error)
	DeleteUserFunc       func(ctx context.Context, actorID, id primitive.ObjectID) error
}

func (m *MockUserService) ListUsers(ctx context.Context, actorID primitive.ObjectID) (*models.UserListResponse, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc(ctx, actorID)
	}
	return nil, nil
}

func (m *MockUserService) GetUser(ctx context.Context, actorID, id primitive.ObjectID) (*models.UserResponse, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, actorID, id)
	}
	return nil, nil
}

func (m *MockUserService) GetUserPrivilege(ctx context.Context, actorID, id primitive.ObjectID) (*models.PrivilegeResponse, error) {
	if m.GetUserPrivilegeFunc != nil {
		return m.GetUserPrivilegeFunc(ctx, actorID, id)
	}
	return nil, nil
}

func (m *MockUserService) CreateUser(ctx context.Context, actorID primitive.ObjectID, req *models.CreateUserRequest) (*models.UserWithRole, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, actorID, req)
	}
	return nil, nil
}

func (m *MockUserService) UpdateUser(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, actorID, id, req)
	}
	return nil, nil
}

func (m *MockUserService) AssignRole(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignRoleRequest) (*models.UserWithRole, error) {
	if m.AssignRoleFunc != nil {
		return m.AssignRoleFunc(ctx, actorID, id, req)
	}
	return nil, nil
}

func (m *MockUserService) DeleteUser(ctx context.Context, actorID, id primitive.ObjectID) error {
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(ctx, actorID, id)
	}
	return nil
}

// MockClientService is a mock implementation of ClientServicer.
type MockClientService struct {
	CreateClientFunc func(ctx context.Context, actorID primitive.ObjectID, req *models.CreateClientRequest) (*models.Client, error)
	ListClientsFunc  func(ctx context.Context, actorID primitive.ObjectID, page, limit int) (*models.ClientListResponse, error)
	GetClientFunc    func(ctx context.Context, actorID, id primitive.ObjectID) (*models.ClientDetailResponse, error)
	UpdateClientFunc func(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateClientRequest) (*models.Client, error)
	AssignClientFunc func(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignClientRequest) (*models.Client, error)
	DeleteClientFunc func(ctx context.Context, actorID, id primitive.ObjectID) error
}

func (m *MockClientService) CreateClient(ctx context.Context, actorID primitive.ObjectID, req *models.CreateClientRequest) (*models.Client, error) {
	if m.CreateClientFunc != nil {
		return m.CreateClientFunc(ctx, actorID, req)
	}
	return nil, nil
}

func (m *MockClientService) ListClients(ctx context.Context, actorID primitive.ObjectID, page, limit int) (*models.ClientListResponse, error) {
	if m.ListClientsFunc != nil {
		return m.ListClientsFunc(ctx, actorID, page, limit)
	}
	return nil, nil
}

func (m *MockClientService) GetClient(ctx context.Context, actorID, id primitive.ObjectID) (*models.ClientDetailResponse, error) {
	if m.GetClientFunc != nil {
		return m.GetClientFunc(ctx, actorID, id)
	}
	return nil, nil
}

func (m *MockClientService) UpdateClient(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateClientRequest) (*models.Client, error) {
	if m.UpdateClientFunc != nil {
		return m.UpdateClientFunc(ctx, actorID, id, req)
	}
	return nil, nil
}

func (m *MockClientService) AssignClient(ctx context.Context, actorID, id primitive.ObjectID, req *models.AssignClientRequest) (*models.Client, error) {
	if m.AssignClientFunc != nil {
		return m.AssignClientFunc(ctx, actorID, id, req)
	}
	return nil, nil
}

func (m *MockClientService) DeleteClient(ctx context.Context, actorID, id primitive.ObjectID) error {
	if m.DeleteClientFunc != nil {
		return m.DeleteClientFunc(ctx, actorID, id)
	}
	return nil
}

// MockNoteService is a mock implementation of NoteServicer.
type MockNoteService struct {
	CreateNoteFunc func(ctx context.Context, actorID, clientID primitive.ObjectID, req *models.CreateNoteRequest) (*models.CreateNoteResponse, error)
	ListNotesFunc  func(ctx context.Context, actorID, clientID primitive.ObjectID) (*models.NoteListResponse, error)
	GetNoteFunc    func(ctx context.Context, actorID, id primitive.ObjectID) (*models.NoteWithPrivilege, error)
	UpdateNoteFunc func(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateNoteRequest) (*models.Note, error)
	DeleteNoteFunc func(ctx context.Context, actorID, id primitive.ObjectID) error
}

func (m *MockNoteService) CreateNote(ctx context.Context, actorID, clientID primitive.ObjectID, req *models.CreateNoteRequest) (*models.CreateNoteResponse, error) {
	if m.CreateNoteFunc != nil {
		return m.CreateNoteFunc(ctx, actorID, clientID, req)
	}
	return nil, nil
}

func (m *MockNoteService) ListNotes(ctx context.Context, actorID, clientID primitive.ObjectID) (*models.NoteListResponse, error) {
	if m.ListNotesFunc != nil {
		return m.ListNotesFunc(ctx, actorID, clientID)
	}
	return nil, nil
}

func (m *MockNoteService) GetNote(ctx context.Context, actorID, id primitive.ObjectID) (*models.NoteWithPrivilege, error) {
	if m.GetNoteFunc != nil {
		return m.GetNoteFunc(ctx, actorID, id)
	}
	return nil, nil
}

func (m *MockNoteService) UpdateNote(ctx context.Context, actorID, id primitive.ObjectID, req *models.UpdateNoteRequest) (*models.Note, error) {
	if m.UpdateNoteFunc != nil {
		return m.UpdateNoteFunc(ctx, actorID, id, req)
	}
	return nil, nil
}

func (m *MockNoteService) DeleteNote(ctx context.Context, actorID, id primitive.ObjectID) error {
	if m.DeleteNoteFunc != nil {
		return m.DeleteNoteFunc(ctx, actorID, id)
	}
	return nil
}

// MockActivityService is a mock implementation of ActivityServicer.
type MockActivityService struct {
	ListUserActivityFunc func(ctx context.Context, actorID, userID primitive.ObjectID, page, limit int) (*models.ActivityListResponse, error)
}

func (m *MockActivityService) ListUserActivity(ctx context.Context, actorID, userID primitive.ObjectID, page, limit int) (*models.ActivityListResponse, error) {
	if m.ListUserActivityFunc != nil {
		return m.ListUserActivityFunc(ctx, actorID, userID, page, limit)
	}
	return nil, nil
}

// Package repository provides MongoDB-backed data access.
package repository

import (
	"context"
	"errors"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:generate mockgen -destination=mocks/mock_role_repository.go -package=mocks casetrack/internal/repository RoleRepository

// RoleRepository defines the interface for role data operations.
// Role ranks are read fresh for every authorization check: a role change
// takes effect on the actor's next request.
type RoleRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error)
	FindByName(ctx context.Context, name string) (*models.Role, error)
	FindAll(ctx context.Context) ([]models.Role, error)
}

type roleRepository struct {
	collection *mongo.Collection
}

// NewRoleRepository creates a new RoleRepository.
func NewRoleRepository(db *mongo.Database) RoleRepository {
	return &roleRepository{
		collection: db.Collection("roles"),
	}
}

// FindByID returns a role by its id.
func (r *roleRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Role, error) {
	var role models.Role
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindByName returns a role by its name.
func (r *roleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.collection.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRoleNotFound
		}
		return nil, err
	}
	return &role, nil
}

// FindAll returns all roles.
func (r *roleRepository) FindAll(ctx context.Context) ([]models.Role, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var roles []models.Role
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}

	if roles == nil {
		roles = []models.Role{}
	}

	return roles, nil
}

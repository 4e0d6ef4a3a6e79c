package repository

import (
	"context"
	"errors"
	"time"

	apperrors "casetrack/internal/errors"
	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:generate mockgen -destination=mocks/mock_user_repository.go -package=mocks casetrack/internal/repository UserRepository

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error)
	UpdateRole(ctx context.Context, id, roleID primitive.ObjectID) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type userRepository struct {
	collection *mongo.Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *mongo.Database) UserRepository {
	return &userRepository{
		collection: db.Collection("users"),
	}
}

// Create inserts a new user. Fails if the email is already taken.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.ErrUserAlreadyExists
	}

	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err = r.collection.InsertOne(ctx, user)
	return err
}

// FindByID returns a non-deleted user by id.
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	filter := bson.M{"_id": id, "deletedAt": bson.M{"$exists": false}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a non-deleted user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	filter := bson.M{"email": email, "deletedAt": bson.M{"$exists": false}}

	var user models.User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindAll returns all non-deleted users.
func (r *userRepository) FindAll(ctx context.Context) ([]models.User, error) {
	filter := bson.M{"deletedAt": bson.M{"$exists": false}}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}

	if users == nil {
		users = []models.User{}
	}

	return users, nil
}

// Update applies the non-nil fields of req and returns the updated user.
func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateUserRequest) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.FirstName != nil {
		set["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		set["lastName"] = *req.LastName
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrUserNotFound
	}

	return r.FindByID(ctx, id)
}

// UpdateRole changes a user's role.
func (r *userRepository) UpdateRole(ctx context.Context, id, roleID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"roleId": roleID, "updatedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SoftDelete marks a user as deleted.
func (r *userRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"deletedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

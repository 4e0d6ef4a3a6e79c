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
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -destination=mocks/mock_client_repository.go -package=mocks casetrack/internal/repository ClientRepository

// ClientRepository defines the interface for client data operations.
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error)
	FindAll(ctx context.Context, includeDeleted bool, page, limit int) ([]models.Client, int, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateClientRequest) (*models.Client, error)
	AssignUser(ctx context.Context, id primitive.ObjectID, userID *primitive.ObjectID) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type clientRepository struct {
	collection *mongo.Collection
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db *mongo.Database) ClientRepository {
	return &clientRepository{
		collection: db.Collection("clients"),
	}
}

// Create inserts a new client.
func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	client.ID = primitive.NewObjectID()
	client.CreatedAt = time.Now()
	client.UpdatedAt = client.CreatedAt

	_, err := r.collection.InsertOne(ctx, client)
	return err
}

// FindByID returns a client by id, including soft-deleted ones. Whether the
// actor may see a deleted client is an authorization decision, not a data one.
func (r *clientRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

// FindAll returns paginated clients, newest first.
func (r *clientRepository) FindAll(ctx context.Context, includeDeleted bool, page, limit int) ([]models.Client, int, error) {
	filter := bson.M{}
	if !includeDeleted {
		filter["deletedAt"] = bson.M{"$exists": false}
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.M{"createdAt": -1}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var clients []models.Client
	if err := cursor.All(ctx, &clients); err != nil {
		return nil, 0, err
	}

	if clients == nil {
		clients = []models.Client{}
	}

	return clients, int(total), nil
}

// Update applies the non-nil fields of req and returns the updated client.
func (r *clientRepository) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateClientRequest) (*models.Client, error) {
	set := bson.M{"updatedAt": time.Now()}
	if req.FirstName != nil {
		set["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		set["lastName"] = *req.LastName
	}
	if req.Birthdate != nil {
		birthdate, err := time.Parse("2006-01-02", *req.Birthdate)
		if err == nil {
			set["birthdate"] = birthdate
		}
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrClientNotFound
	}

	return r.FindByID(ctx, id)
}

// AssignUser sets or clears the assigned user.
func (r *clientRepository) AssignUser(ctx context.Context, id primitive.ObjectID, userID *primitive.ObjectID) error {
	var update bson.M
	if userID == nil {
		update = bson.M{
			"$unset": bson.M{"userId": ""},
			"$set":   bson.M{"updatedAt": time.Now()},
		}
	} else {
		update = bson.M{
			"$set": bson.M{"userId": *userID, "updatedAt": time.Now()},
		}
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrClientNotFound
	}
	return nil
}

// SoftDelete marks a client as deleted.
func (r *clientRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"deletedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrClientNotFound
	}
	return nil
}

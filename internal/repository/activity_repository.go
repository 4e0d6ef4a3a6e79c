package repository

import (
	"context"
	"time"

	"casetrack/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

//go:generate mockgen -destination=mocks/mock_activity_repository.go -package=mocks casetrack/internal/repository ActivityRepository

// ActivityRepository defines the interface for activity log operations.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Activity, int, error)
}

type activityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ActivityRepository {
	return &activityRepository{
		collection: db.Collection("activities"),
	}
}

// Create inserts a new activity entry.
func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	activity.ID = primitive.NewObjectID()
	activity.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, activity)
	return err
}

// FindByUserID returns paginated activity entries of a user, newest first.
func (r *activityRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID, page, limit int) ([]models.Activity, int, error) {
	filter := bson.M{"userId": userID}

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

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, 0, err
	}

	if activities == nil {
		activities = []models.Activity{}
	}

	return activities, int(total), nil
}

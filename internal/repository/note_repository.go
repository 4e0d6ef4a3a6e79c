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

//go:generate mockgen -destination=mocks/mock_note_repository.go -package=mocks casetrack/internal/repository NoteRepository

// NoteRepository defines the interface for note data operations.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Note, error)
	FindByClientID(ctx context.Context, clientID primitive.ObjectID) ([]models.Note, error)
	FindMainByClientID(ctx context.Context, clientID primitive.ObjectID) (*models.Note, error)
	Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateNoteRequest) (*models.Note, error)
	SetAttachmentKey(ctx context.Context, id primitive.ObjectID, key string) error
	SoftDelete(ctx context.Context, id primitive.ObjectID) error
}

type noteRepository struct {
	collection *mongo.Collection
}

// NewNoteRepository creates a new NoteRepository.
func NewNoteRepository(db *mongo.Database) NoteRepository {
	return &noteRepository{
		collection: db.Collection("notes"),
	}
}

// Create inserts a new note.
func (r *noteRepository) Create(ctx context.Context, note *models.Note) error {
	note.ID = primitive.NewObjectID()
	note.CreatedAt = time.Now()
	note.UpdatedAt = note.CreatedAt

	_, err := r.collection.InsertOne(ctx, note)
	return err
}

// FindByID returns a note by id, including soft-deleted ones. Reading a
// deleted note is gated by authorization, not filtered here.
func (r *noteRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Note, error) {
	var note models.Note
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindByClientID returns all notes of a client, main note first, then newest
// first. Includes hidden and deleted notes; visibility is the caller's
// authorization concern.
func (r *noteRepository) FindByClientID(ctx context.Context, clientID primitive.ObjectID) ([]models.Note, error) {
	filter := bson.M{"clientId": clientID}
	opts := options.Find().SetSort(bson.D{
		{Key: "isMain", Value: -1},
		{Key: "createdAt", Value: -1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var notes []models.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []models.Note{}
	}

	return notes, nil
}

// FindMainByClientID returns the client's main note.
func (r *noteRepository) FindMainByClientID(ctx context.Context, clientID primitive.ObjectID) (*models.Note, error) {
	filter := bson.M{"clientId": clientID, "isMain": true}

	var note models.Note
	err := r.collection.FindOne(ctx, filter).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// Update applies the non-nil fields of req and returns the updated note.
func (r *noteRepository) Update(ctx context.Context, id primitive.ObjectID, req *models.UpdateNoteRequest) (*models.Note, error) {
	set := bson.M{"updatedAt": time.Now()}
	if req.Message != nil {
		set["message"] = *req.Message
	}
	if req.Hidden != nil {
		set["hidden"] = *req.Hidden
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperrors.ErrNoteNotFound
	}

	return r.FindByID(ctx, id)
}

// SetAttachmentKey stores the S3 object key of the note's attachment.
func (r *noteRepository) SetAttachmentKey(ctx context.Context, id primitive.ObjectID, key string) error {
	update := bson.M{"$set": bson.M{"attachmentKey": key, "updatedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

// SoftDelete marks a note as deleted.
func (r *noteRepository) SoftDelete(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"deletedAt": time.Now()}}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNoteNotFound
	}
	return nil
}

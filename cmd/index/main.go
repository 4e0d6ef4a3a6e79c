package main

import (
	"context"
	"log"
	"time"

	"casetrack/internal/config"
	"casetrack/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("Starting migration...")

	cfg := config.Load()

	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	createIndexes(ctx, mongoDB.Database)

	log.Println("Migration completed successfully!")
}

func createIndexes(ctx context.Context, db *mongo.Database) {
	// Roles indexes
	createIndex(ctx, db, "roles", bson.D{{Key: "name", Value: 1}}, &options.IndexOptions{
		Unique: ptrBool(true),
	})
	createIndex(ctx, db, "roles", bson.D{{Key: "hierarchy", Value: 1}}, nil)

	// Users indexes
	createIndex(ctx, db, "users", bson.D{{Key: "email", Value: 1}}, &options.IndexOptions{
		Unique: ptrBool(true),
	})
	createIndex(ctx, db, "users", bson.D{{Key: "roleId", Value: 1}}, nil)
	createIndex(ctx, db, "users", bson.D{{Key: "deletedAt", Value: 1}}, nil)

	// Clients indexes
	createIndex(ctx, db, "clients", bson.D{{Key: "userId", Value: 1}}, nil)
	createIndex(ctx, db, "clients", bson.D{{Key: "deletedAt", Value: 1}}, nil)
	createIndex(ctx, db, "clients", bson.D{{Key: "createdAt", Value: -1}}, nil)

	// Notes indexes
	createIndex(ctx, db, "notes", bson.D{
		{Key: "clientId", Value: 1},
		{Key: "isMain", Value: -1},
		{Key: "createdAt", Value: -1},
	}, nil)

	// Activities indexes
	createIndex(ctx, db, "activities", bson.D{
		{Key: "userId", Value: 1},
		{Key: "createdAt", Value: -1},
	}, nil)
}

func createIndex(ctx context.Context, db *mongo.Database, collection string, keys bson.D, opts *options.IndexOptions) {
	model := mongo.IndexModel{Keys: keys}
	if opts != nil {
		model.Options = opts
	}

	name, err := db.Collection(collection).Indexes().CreateOne(ctx, model)
	if err != nil {
		log.Fatalf("Failed to create index on %s: %v", collection, err)
	}
	log.Printf("Created index %s on %s", name, collection)
}

func ptrBool(b bool) *bool {
	return &b
}

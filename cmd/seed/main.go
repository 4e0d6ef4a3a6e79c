package main

import (
	"context"
	"log"
	"time"

	"casetrack/internal/config"
	"casetrack/internal/database"
	"casetrack/internal/models"
	"casetrack/pkg/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	log.Println("Starting seed...")

	// Load config
	cfg := config.Load()

	// Connect to MongoDB
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	ctx := context.Background()

	// Seed roles first, users reference them by ID
	roleIDs := seedRoles(ctx, mongoDB.Database)

	// Seed users
	userIDs := seedUsers(ctx, mongoDB.Database, roleIDs)

	// Seed clients, each with its main note
	seedClients(ctx, mongoDB.Database, userIDs)

	log.Println("Seed completed successfully!")
}

// seedRoles inserts the four roles with their hierarchy ranks.
// A lower rank means more privilege.
func seedRoles(ctx context.Context, db *mongo.Database) map[string]primitive.ObjectID {
	collection := db.Collection("roles")

	// Clear existing roles
	_, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to clear roles: %v", err)
	}

	roles := []models.Role{
		{Name: models.RoleAdmin, Hierarchy: 1},
		{Name: models.RoleManagingAdvisor, Hierarchy: 2},
		{Name: models.RoleAdvisor, Hierarchy: 3},
		{Name: models.RoleNewcomer, Hierarchy: 4},
	}

	docs := make([]interface{}, len(roles))
	for i, role := range roles {
		docs[i] = role
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}

	log.Printf("Seeded %d roles", len(result.InsertedIDs))

	roleIDs := make(map[string]primitive.ObjectID, len(roles))
	for i, id := range result.InsertedIDs {
		roleIDs[roles[i].Name] = id.(primitive.ObjectID)
	}

	return roleIDs
}

func seedUsers(ctx context.Context, db *mongo.Database, roleIDs map[string]primitive.ObjectID) []primitive.ObjectID {
	collection := db.Collection("users")

	// Clear existing users
	_, err := collection.DeleteMany(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to clear users: %v", err)
	}

	// Hash passwords
	adminPassword, _ := auth.HashPassword("admin123456")
	password, _ := auth.HashPassword("password123")

	now := time.Now()

	users := []interface{}{
		models.User{
			Email:     "admin@example.com",
			Password:  adminPassword,
			FirstName: "Astrid",
			LastName:  "Vogel",
			RoleID:    roleIDs[models.RoleAdmin],
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.User{
			Email:     "marta@example.com",
			Password:  password,
			FirstName: "Marta",
			LastName:  "Brunner",
			RoleID:    roleIDs[models.RoleManagingAdvisor],
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.User{
			Email:     "david@example.com",
			Password:  password,
			FirstName: "David",
			LastName:  "Frei",
			RoleID:    roleIDs[models.RoleAdvisor],
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.User{
			Email:     "nora@example.com",
			Password:  password,
			FirstName: "Nora",
			LastName:  "Steiner",
			RoleID:    roleIDs[models.RoleNewcomer],
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	result, err := collection.InsertMany(ctx, users)
	if err != nil {
		log.Fatalf("Failed to seed users: %v", err)
	}

	log.Printf("Seeded %d users", len(result.InsertedIDs))

	var userIDs []primitive.ObjectID
	for _, id := range result.InsertedIDs {
		userIDs = append(userIDs, id.(primitive.ObjectID))
	}

	return userIDs
}

// seedClients inserts sample clients and the main note each client
// carries from creation on.
func seedClients(ctx context.Context, db *mongo.Database, userIDs []primitive.ObjectID) {
	clients := db.Collection("clients")
	notes := db.Collection("notes")

	// Clear existing clients and notes
	if _, err := clients.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear clients: %v", err)
	}
	if _, err := notes.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear notes: %v", err)
	}

	now := time.Now()
	birthdate1 := time.Date(1987, time.March, 14, 0, 0, 0, 0, time.UTC)
	birthdate2 := time.Date(1994, time.November, 2, 0, 0, 0, 0, time.UTC)

	// advisor David owns the first client, the second one is unassigned
	advisorID := userIDs[2]

	seed := []struct {
		client   models.Client
		mainNote string
	}{
		{
			client: models.Client{
				FirstName: "Jonas",
				LastName:  "Weber",
				Birthdate: &birthdate1,
				Phone:     "+41 76 123 45 67",
				Email:     "jonas@example.com",
				UserID:    &advisorID,
				CreatedAt: now.Add(-72 * time.Hour),
				UpdatedAt: now.Add(-72 * time.Hour),
			},
			mainNote: "Intake done. Looking for part-time work, needs help with the CV first.",
		},
		{
			client: models.Client{
				FirstName: "Leila",
				LastName:  "Haddad",
				Birthdate: &birthdate2,
				Phone:     "+41 79 987 65 43",
				CreatedAt: now.Add(-24 * time.Hour),
				UpdatedAt: now.Add(-24 * time.Hour),
			},
			mainNote: "Walk-in registration, no advisor assigned yet. Speaks French and Arabic.",
		},
	}

	for _, s := range seed {
		result, err := clients.InsertOne(ctx, s.client)
		if err != nil {
			log.Fatalf("Failed to seed client: %v", err)
		}
		clientID := result.InsertedID.(primitive.ObjectID)

		author := advisorID
		if s.client.UserID != nil {
			author = *s.client.UserID
		}
		note := models.Note{
			ClientID:  clientID,
			UserID:    author,
			Message:   s.mainNote,
			IsMain:    true,
			CreatedAt: s.client.CreatedAt,
			UpdatedAt: s.client.CreatedAt,
		}
		if _, err := notes.InsertOne(ctx, note); err != nil {
			log.Fatalf("Failed to seed main note: %v", err)
		}
	}

	log.Printf("Seeded %d clients with main notes", len(seed))
}

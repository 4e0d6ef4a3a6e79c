package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"casetrack/internal/authz"
	"casetrack/internal/cache"
	"casetrack/internal/config"
	"casetrack/internal/database"
	"casetrack/internal/handler"
	"casetrack/internal/queue"
	"casetrack/internal/repository"
	"casetrack/internal/router"
	"casetrack/internal/service"
	"casetrack/internal/storage"
	"casetrack/internal/validator"
	"casetrack/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title           CaseTrack API
// @version         1.0
// @description     A case management REST API with role-hierarchy authorization, built with Gin, MongoDB, and Redis.

// @contact.name    API Support
// @contact.email   support@example.com

// @host            localhost:8080
// @BasePath        /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter your bearer token in the format: Bearer {token}

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded")

	// Register custom validators
	validator.RegisterCustomValidators()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Database
	mongoDB := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	defer mongoDB.Close()

	// Redis Cache
	redisCache := cache.NewRedis(cfg.RedisURI)
	defer redisCache.Close()

	// S3 Storage
	s3Client := storage.NewS3Client(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)

	// JWT Manager and refresh token generator
	jwtManager := auth.NewJWTManager(cfg.AccessTokenSecret, cfg.AccessTokenExpiry)
	tokenGenerator := auth.NewRefreshTokenGenerator()

	// Repository layer
	roleRepo := repository.NewRoleRepository(mongoDB.Database)
	userRepo := repository.NewUserRepository(mongoDB.Database)
	clientRepo := repository.NewClientRepository(mongoDB.Database)
	noteRepo := repository.NewNoteRepository(mongoDB.Database)
	activityRepo := repository.NewActivityRepository(mongoDB.Database)

	// Refresh token store (Redis-backed, keyed by token family)
	tokenStore := cache.NewRefreshTokenStore(redisCache)

	// Authorization: the hierarchy store resolves actor ranks, the
	// checkers and the determiner decide per resource.
	hierarchyStore := authz.NewHierarchyStore(userRepo, roleRepo)
	userChecker := authz.NewUserChecker(hierarchyStore)
	clientChecker := authz.NewClientChecker(hierarchyStore)
	noteChecker := authz.NewNoteChecker(hierarchyStore)
	activityChecker := authz.NewActivityChecker(hierarchyStore)
	roleChecker := authz.NewRoleChecker(hierarchyStore)
	determiner := authz.NewPrivilegeDeterminer(hierarchyStore)

	// Activity log queue and recorder
	activityQueue := queue.NewMemoryQueue(cfg.ActivityQueueSize)
	activityRecorder := queue.NewRecorder(activityQueue, activityRepo, cfg.ActivityWorkers)

	// Service layer
	authService := service.NewAuthService(service.AuthServiceConfig{
		Users:           userRepo,
		Roles:           roleRepo,
		TokenStore:      tokenStore,
		JWTManager:      jwtManager,
		TokenGenerator:  tokenGenerator,
		AccessTokenTTL:  cfg.AccessTokenExpiry,
		RefreshTokenTTL: cfg.RefreshTokenExpiry,
	})
	userService := service.NewUserService(service.UserServiceConfig{
		Users:      userRepo,
		Roles:      roleRepo,
		Store:      hierarchyStore,
		Checker:    userChecker,
		Determiner: determiner,
		Cache:      redisCache,
		TokenStore: tokenStore,
		Queue:      activityQueue,
	})
	clientService := service.NewClientService(service.ClientServiceConfig{
		Clients:     clientRepo,
		Notes:       noteRepo,
		Users:       userRepo,
		Store:       hierarchyStore,
		Checker:     clientChecker,
		NoteChecker: noteChecker,
		RoleChecker: roleChecker,
		Determiner:  determiner,
		Storage:     s3Client,
		Queue:       activityQueue,
	})
	noteService := service.NewNoteService(service.NoteServiceConfig{
		Notes:       noteRepo,
		Clients:     clientRepo,
		Checker:     noteChecker,
		RoleChecker: roleChecker,
		Determiner:  determiner,
		Storage:     s3Client,
		Queue:       activityQueue,
	})
	activityService := service.NewActivityService(activityRepo, userRepo, hierarchyStore, activityChecker)

	// Handler layer
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	clientHandler := handler.NewClientHandler(clientService)
	noteHandler := handler.NewNoteHandler(noteService)
	activityHandler := handler.NewActivityHandler(activityService)

	// Router
	r := router.Setup(&router.Config{
		AuthHandler:     authHandler,
		UserHandler:     userHandler,
		ClientHandler:   clientHandler,
		NoteHandler:     noteHandler,
		ActivityHandler: activityHandler,
		JWTManager:      jwtManager,
		RoleChecker:     roleChecker,
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start the activity recorder workers
	activityRecorder.Start(ctx)

	// Create HTTP server for graceful shutdown support
	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutdown signal received")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Shutdown HTTP server first (drain connections)
	log.Println("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	// Cancel context to signal recorder shutdown
	cancel()

	// Stop the activity recorder (waits for workers to drain)
	log.Println("Stopping activity recorder...")
	activityRecorder.Stop()

	log.Println("Server shutdown complete")
}

// Package router sets up HTTP routes for the API.
package router

import (
	"net/http"

	_ "casetrack/swagger" // Import generated swagger docs

	"casetrack/internal/authz"
	"casetrack/internal/handler"
	"casetrack/internal/middleware"
	"casetrack/internal/models"
	"casetrack/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Config holds all dependencies needed to set up routes.
type Config struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	ClientHandler   *handler.ClientHandler
	NoteHandler     *handler.NoteHandler
	ActivityHandler *handler.ActivityHandler
	JWTManager      *auth.JWTManager
	RoleChecker     *authz.RoleChecker
}

// Setup creates and configures the Gin router.
func Setup(cfg *Config) *gin.Engine {
	r := gin.Default()

	// Global middleware
	r.Use(middleware.CORS())

	// Swagger docs at /docs
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/register", cfg.AuthHandler.Register)
			authRoutes.POST("/login", cfg.AuthHandler.Login)
			authRoutes.POST("/refresh", cfg.AuthHandler.Refresh)
			authRoutes.POST("/logout", cfg.AuthHandler.Logout)
		}

		// Auth routes (protected)
		authProtected := v1.Group("/auth")
		authProtected.Use(middleware.Auth(cfg.JWTManager))
		{
			authProtected.POST("/logout-all", cfg.AuthHandler.LogoutAll)
		}

		// User routes (protected). Creating accounts on behalf of others is
		// guarded up front; finer decisions live in the services.
		users := v1.Group("/users")
		users.Use(middleware.Auth(cfg.JWTManager))
		{
			users.GET("", cfg.UserHandler.ListUsers)
			users.POST("", middleware.RequireRole(cfg.RoleChecker, models.RoleManagingAdvisor), cfg.UserHandler.CreateUser)
			users.GET("/:userId", cfg.UserHandler.GetUser)
			users.PUT("/:userId", cfg.UserHandler.UpdateUser)
			users.PUT("/:userId/role", cfg.UserHandler.AssignRole)
			users.GET("/:userId/privileges", cfg.UserHandler.GetUserPrivilege)
			users.DELETE("/:userId", cfg.UserHandler.DeleteUser)
			users.GET("/:userId/activity", cfg.ActivityHandler.ListUserActivity)
		}

		// Client routes (protected)
		clients := v1.Group("/clients")
		clients.Use(middleware.Auth(cfg.JWTManager))
		{
			clients.GET("", cfg.ClientHandler.ListClients)
			clients.POST("", cfg.ClientHandler.CreateClient)
			clients.GET("/:clientId", cfg.ClientHandler.GetClient)
			clients.PUT("/:clientId", cfg.ClientHandler.UpdateClient)
			clients.PUT("/:clientId/assign", cfg.ClientHandler.AssignClient)
			clients.DELETE("/:clientId", middleware.RequireRole(cfg.RoleChecker, models.RoleManagingAdvisor), cfg.ClientHandler.DeleteClient)

			// Notes of a client
			clients.GET("/:clientId/notes", cfg.NoteHandler.ListNotes)
			clients.POST("/:clientId/notes", cfg.NoteHandler.CreateNote)
		}

		// Note routes (protected)
		notes := v1.Group("/notes")
		notes.Use(middleware.Auth(cfg.JWTManager))
		{
			notes.GET("/:noteId", cfg.NoteHandler.GetNote)
			notes.PUT("/:noteId", cfg.NoteHandler.UpdateNote)
			notes.DELETE("/:noteId", cfg.NoteHandler.DeleteNote)
		}
	}

	return r
}

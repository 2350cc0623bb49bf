package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/kawasemi/project-collab-api/internal/config"
	"github.com/kawasemi/project-collab-api/internal/constants"
	"github.com/kawasemi/project-collab-api/internal/database"
	"github.com/kawasemi/project-collab-api/internal/handlers"
	"github.com/kawasemi/project-collab-api/internal/logging"
	"github.com/kawasemi/project-collab-api/internal/middleware"
	"github.com/kawasemi/project-collab-api/internal/repository"
	"github.com/kawasemi/project-collab-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logging.Init(cfg.LogFile)
	log := logging.Logger

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if cfg.DBDriver == "postgres" {
		if err := database.AddIndexes(database.GetDB()); err != nil {
			log.Fatalf("Failed to add indexes: %v", err)
		}
	}

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	inviteRepo := repository.NewProjectInviteRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize services
	authorizer := services.NewAuthorizer(memberRepo)
	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, memberRepo, userRepo, authorizer)
	inviteService := services.NewInviteService(inviteRepo, projectRepo, memberRepo, userRepo, authorizer)
	taskService := services.NewTaskService(taskRepo, projectRepo, authorizer)

	// Initialize Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	inviteHandler := handlers.NewInviteHandler(inviteService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Collaboration API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.GET("/:id/members", projectHandler.GetMembers)
			projects.PATCH("/:id/members/:user_id", projectHandler.UpdateMemberRole)

			projects.POST("/:id/invites", inviteHandler.CreateInvite)
			projects.GET("/:id/invites", inviteHandler.ListProjectInvites)

			projects.GET("/:id/tasks", taskHandler.ListTasks)
			projects.POST("/:id/tasks", taskHandler.CreateTask)
			projects.GET("/:id/tasks/:task_id", taskHandler.GetTask)
			projects.PATCH("/:id/tasks/:task_id", taskHandler.UpdateTask)
			projects.PATCH("/:id/tasks/:task_id/status", taskHandler.UpdateTaskStatus)
			projects.DELETE("/:id/tasks/:task_id", taskHandler.DeleteTask)
		}

		// Invite routes for the invited user (protected)
		invites := api.Group("/invites")
		invites.Use(middleware.RequireAuth())
		{
			invites.GET("", inviteHandler.ListMyInvites)
			invites.POST("/:id/accept", inviteHandler.AcceptInvite)
			invites.POST("/:id/decline", inviteHandler.DeclineInvite)
			invites.DELETE("/:id", inviteHandler.DeleteInvite)
		}
	}

	// Start server
	log.Infof("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

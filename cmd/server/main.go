package main

import (
	"time"

	"project_manager/internal/config"
	"project_manager/internal/database"
	"project_manager/internal/handlers"
	"project_manager/internal/middleware"
	"project_manager/internal/models"
	"project_manager/internal/redis"
	"project_manager/internal/repository"
	"project_manager/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sessionRepo := repository.NewWorkSessionRepository(db)

	// Initialize services
	validator := services.NewValidator(projectRepo, moduleRepo, taskRepo, userRepo)
	progressService := services.NewProgressService(taskRepo, moduleRepo, projectRepo, redisClient, cacheTTL)
	userService := services.NewUserService(userRepo, sessionRepo, taskRepo, moduleRepo, projectRepo, validator)
	authService := services.NewAuthService(
		userRepo,
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLHours)*time.Hour,
		time.Duration(cfg.RefreshTokenTTLHours)*time.Hour,
	)
	projectService := services.NewProjectService(projectRepo, moduleRepo, taskRepo, validator, redisClient)
	moduleService := services.NewModuleService(moduleRepo, projectRepo, validator, redisClient)
	taskService := services.NewTaskService(
		db, taskRepo, sessionRepo, moduleRepo, projectRepo, userRepo,
		validator, progressService, redisClient, cacheTTL,
	)
	dashboardService := services.NewDashboardService(projectRepo, moduleRepo, taskRepo, userRepo, redisClient, cacheTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	moduleHandler := handlers.NewModuleHandler(moduleService)
	taskHandler := handlers.NewTaskHandler(taskService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Setup routes
	router := gin.Default()

	auth := router.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/change-password", authHandler.ChangePassword)
	}

	authorized := router.Group("/")
	authorized.Use(middleware.AuthRequired(cfg.JWTSecret))

	lead := middleware.RequireRoles(string(models.RoleManager), string(models.RoleTeamLead))

	users := authorized.Group("/users")
	{
		users.POST("/create", lead, userHandler.Create)
		users.GET("/all", userHandler.FindAll)
		users.GET("/team/:id", userHandler.Team)
		users.GET("/:id", userHandler.FindOne)
		users.PATCH("/:id", lead, userHandler.Update)
		users.DELETE("/:id", lead, userHandler.Delete)
	}

	projects := authorized.Group("/project")
	{
		projects.POST("/create", lead, projectHandler.Create)
		projects.GET("/all", projectHandler.FindAll)
		projects.GET("/:id", projectHandler.FindOne)
		projects.PATCH("/:id", lead, projectHandler.Update)
		projects.DELETE("/:id", lead, projectHandler.Delete)
		projects.GET("/:id/members", projectHandler.Members)
	}

	modules := authorized.Group("/module")
	{
		modules.POST("/create", lead, moduleHandler.Create)
		modules.GET("/all", moduleHandler.FindAll)
		modules.GET("/project/:id", moduleHandler.FindByProject)
		modules.GET("/:id", moduleHandler.FindOne)
		modules.PATCH("/:id", lead, moduleHandler.Update)
		modules.DELETE("/:id", lead, moduleHandler.Delete)
		modules.GET("/:id/developers", moduleHandler.AssignedDevelopers)
	}

	tasks := authorized.Group("/task")
	{
		tasks.POST("/create", taskHandler.Create)
		tasks.GET("/all", taskHandler.FindAll)
		tasks.GET("/management/dashboard", taskHandler.ManagementDashboard)
		tasks.GET("/project/:id", taskHandler.FindByProject)
		tasks.GET("/module/:id", taskHandler.FindByModule)
		tasks.GET("/my/:id", taskHandler.MyTasks)
		tasks.GET("/my/:id/completed", taskHandler.MyCompletedTasks)
		tasks.POST("/start/:id", taskHandler.Start)
		tasks.POST("/end/:id", taskHandler.End)
		tasks.GET("/:id", taskHandler.FindOne)
		tasks.PATCH("/:id", taskHandler.Update)
		tasks.DELETE("/:id", taskHandler.Delete)
	}

	dashboard := authorized.Group("/dashboard")
	{
		dashboard.GET("/teamlead/:id", lead, dashboardHandler.TeamLead)
		dashboard.GET("/manager", middleware.RequireRoles(string(models.RoleManager)), dashboardHandler.Manager)
		dashboard.GET("/developer", middleware.RequireRoles(string(models.RoleDeveloper)), dashboardHandler.Developer)
	}

	// Start server
	logger.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

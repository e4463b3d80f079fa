package main

import (
	"fmt"
	"net/http"
	"os"

	"assetvault/internal/config"
	"assetvault/internal/database"
	"assetvault/internal/handlers"
	"assetvault/internal/identity"
	"assetvault/internal/logger"
	"assetvault/internal/middleware"
	"assetvault/internal/services"
	"assetvault/internal/storage"
	"assetvault/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "assetvault/internal/docs" // Import swagger docs
)

// @title           AssetVault API
// @version         1.0
// @description     AssetVault tracks personal assets, their purchase prices and current values, and summarizes the portfolio they form.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	db := dbManager.DB()

	// Asset storage
	kv, err := storage.Open(appConfig, db)
	if err != nil {
		return fmt.Errorf("failed to open asset storage: %w", err)
	}
	defer func() {
		if err := kv.Close(); err != nil {
			log.Warnw("failed to close asset storage", "error", err)
		}
	}()
	binder := identity.NewBinder(kv, appConfig.StorageBaseKey, appConfig.SeedDemoData)

	// Initialize services
	userService := services.NewUserService(db)
	sessionService := services.NewSessionService(userService, middleware.GenerateAccessToken)
	assetService := services.NewAssetService(binder, services.WithCurrency(appConfig.Currency))
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessionService, userService, auditService)
	assetHandler := handlers.NewAssetHandler(assetService, auditService, appConfig.RecentLimit)
	categoryHandler := handlers.NewCategoryHandler()
	maintenanceHandler := handlers.NewMaintenanceHandler(assetService)

	validator.Register()

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1.GET("/categories", categoryHandler.ListCategories)
	v1.GET("/categories/:id", categoryHandler.GetCategory)
	v1.GET("/conditions", categoryHandler.ListConditions)

	// Guest namespace
	handlers.RegisterAssetRoutes(v1.Group("/guest"), assetHandler)

	// Scheduled jobs
	maintenance := v1.Group("/maintenance")
	maintenance.Use(middleware.MaintenanceAuthMiddleware(appConfig.MaintenanceAPIKey))
	maintenance.POST("/revalue", maintenanceHandler.Revalue)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(sessionService))

	protected.POST("/auth/logout", authHandler.Logout)

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile", authHandler.UpdateProfile)
	protected.PUT("/profile/password", authHandler.ChangePassword)
	protected.GET("/profile/activity", authHandler.GetActivity)

	// Asset routes
	handlers.RegisterAssetRoutes(protected, assetHandler)

	log.Infow("Starting AssetVault server",
		"port", appConfig.Port,
		"db_driver", appConfig.DBDriver,
		"storage_backend", appConfig.StorageBackend,
	)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"catalog-service/internal/cache"
	"catalog-service/internal/config"
	"catalog-service/internal/events"
	"catalog-service/internal/handlers"
	"catalog-service/internal/middleware"
	"catalog-service/internal/repository"
	"catalog-service/internal/services"
)

func main() {
	// Check if running health check
	if len(os.Args) > 1 && os.Args[1] == "health" {
		resp, err := http.Get("http://localhost:8080/health")
		if err != nil || resp.StatusCode != http.StatusOK {
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load .env in development; ignore when absent
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	sqlDB, _ := db.DB()
	defer sqlDB.Close()

	// Initialize Redis permission cache
	permCache, err := cache.NewPermissionCache(
		cfg.RedisHost,
		cfg.RedisPort,
		cfg.RedisPassword,
		cfg.RedisDB,
		cfg.CacheTTL,
	)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize permission cache, continuing without caching")
	} else if permCache.IsAvailable() {
		logger.Info("Permission cache initialized")
		defer permCache.Close()
	} else {
		logger.Warn("Permission cache unavailable (Redis not connected), continuing without caching")
	}

	// Initialize NATS events publisher; the service stays up without it, a
	// nil publisher drops events
	publisher, err := events.NewPublisher(cfg.NATSURL, logger)
	if err != nil {
		logger.WithError(err).Warn("Failed to initialize events publisher, events won't be published")
		publisher = nil
	} else {
		logger.Info("NATS events publisher initialized")
		defer publisher.Close()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	permRepo := repository.NewPermissionRepository(db)
	productRepo := repository.NewProductRepository(db)
	assetRepo := repository.NewAssetRepository(db)

	// Initialize services
	tokenService := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	accountService := services.NewAccountService(userRepo, permCache, publisher, logger)
	permissionService := services.NewPermissionService(userRepo, permRepo, permCache, publisher, logger)

	// Seed the platform administrator
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := accountService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		cancel()
		log.Fatal("Failed to seed platform administrator:", err)
	}
	cancel()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(userRepo, tokenService, logger)
	accountHandler := handlers.NewAccountHandler(accountService)
	permissionHandler := handlers.NewPermissionHandler(permissionService)
	productHandler := handlers.NewProductHandler(productRepo)
	assetHandler := handlers.NewAssetHandler(assetRepo)

	// Initialize guard middleware
	authMW := middleware.NewAuthMiddleware(tokenService, userRepo, logger)
	rbacMW := middleware.NewRBACMiddleware(permRepo, permCache, logger)

	router := setupRouter(cfg, healthHandler, authHandler, accountHandler,
		permissionHandler, productHandler, assetHandler, authMW, rbacMW,
		productRepo, assetRepo)

	logger.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	}).Info("Catalog service starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func setupRouter(
	cfg *config.Config,
	healthHandler *handlers.HealthHandler,
	authHandler *handlers.AuthHandler,
	accountHandler *handlers.AccountHandler,
	permissionHandler *handlers.PermissionHandler,
	productHandler *handlers.ProductHandler,
	assetHandler *handlers.AssetHandler,
	authMW *middleware.AuthMiddleware,
	rbacMW *middleware.RBACMiddleware,
	productRepo repository.ProductRepository,
	assetRepo repository.AssetRepository,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoints (no auth required)
	router.GET("/health", healthHandler.Health)
	router.GET("/livez", healthHandler.Livez)
	router.GET("/readyz", healthHandler.Readyz)

	// Public auth routes
	router.POST("/api/v1/auth/login", authHandler.Login)

	// Every route below resolves the principal and tenant scope first.
	// Routes addressing a resource by id validate ownership before the
	// permission check, so a cross-tenant probe sees 404 and never learns
	// whether the id exists or which permission it lacks.
	api := router.Group("/api/v1")
	api.Use(authMW.Authenticate())
	{
		api.GET("/auth/me", authHandler.Me)

		// Owner accounts (platform administrators)
		owners := api.Group("/owners")
		{
			owners.GET("", accountHandler.ListOwners)
			owners.POST("", accountHandler.CreateOwner)
			owners.GET("/:id", accountHandler.GetOwner)
			owners.PUT("/:id", accountHandler.UpdateOwner)
			owners.DELETE("/:id", accountHandler.DeleteOwner)
		}

		// Staff accounts and their permission grants (tenant owners)
		staff := api.Group("/staff")
		{
			staff.GET("", accountHandler.ListStaff)
			staff.POST("", accountHandler.CreateStaff)
			staff.GET("/:id", accountHandler.GetStaff)
			staff.PUT("/:id", accountHandler.UpdateStaff)
			staff.DELETE("/:id", accountHandler.DeleteStaff)

			staff.GET("/:id/permissions", permissionHandler.List)
			staff.POST("/:id/permissions", permissionHandler.Grant)
			staff.POST("/:id/permissions/bulk", permissionHandler.BulkGrant)
			staff.DELETE("/:id/permissions/:resource/:action", permissionHandler.Revoke)
		}

		// Products (tenant-scoped catalog data)
		products := api.Group("/products")
		{
			products.GET("", rbacMW.RequirePermission("products", "read"), productHandler.List)
			products.POST("", rbacMW.RequirePermission("products", "create"), productHandler.Create)
			products.GET("/:id",
				middleware.RequireOwnership(productRepo),
				rbacMW.RequirePermission("products", "read"),
				productHandler.Get)
			products.PUT("/:id",
				middleware.RequireOwnership(productRepo),
				rbacMW.RequirePermission("products", "update"),
				productHandler.Update)
			products.DELETE("/:id",
				middleware.RequireOwnership(productRepo),
				rbacMW.RequirePermission("products", "delete"),
				productHandler.Delete)
		}

		// Assets (tenant-scoped catalog data)
		assets := api.Group("/assets")
		{
			assets.GET("", rbacMW.RequirePermission("assets", "read"), assetHandler.List)
			assets.POST("", rbacMW.RequirePermission("assets", "create"), assetHandler.Create)
			assets.GET("/:id",
				middleware.RequireOwnership(assetRepo),
				rbacMW.RequirePermission("assets", "read"),
				assetHandler.Get)
			assets.PUT("/:id",
				middleware.RequireOwnership(assetRepo),
				rbacMW.RequirePermission("assets", "update"),
				assetHandler.Update)
			assets.DELETE("/:id",
				middleware.RequireOwnership(assetRepo),
				rbacMW.RequirePermission("assets", "delete"),
				assetHandler.Delete)
		}
	}

	return router
}

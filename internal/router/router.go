package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/moxuanli/frs/backend/internal/handlers"
	"github.com/moxuanli/frs/backend/internal/middleware"
	"github.com/moxuanli/frs/backend/internal/models"
	"github.com/moxuanli/frs/backend/internal/registry"
	"github.com/moxuanli/frs/backend/internal/repositories"
	"github.com/moxuanli/frs/backend/internal/services"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Error != nil {
				evt = log.Error().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	log.Info().Msg("Global middleware configured")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.FoodItem{},
		&models.Restaurant{},
		&models.Review{},
		&models.CollectionItem{},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to auto migrate models")
	}
	log.Info().Msg("Auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	foodRepo := repositories.NewPostgresFoodRepository(db)
	restaurantRepo := repositories.NewPostgresRestaurantRepository(db)
	reviewRepo := repositories.NewPostgresReviewRepository(db)
	collectionRepo := repositories.NewPostgresCollectionRepository(db)

	// --- Entity registry and collection service ---
	entityRegistry := registry.New(postRepo, foodRepo, restaurantRepo)
	collectionService := services.NewCollectionService(collectionRepo, entityRegistry)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Info().Msg("Auth routes configured")

	// --- Public routes (optional authentication for collection flags) ---
	public := e.Group("/api/v1")
	public.Use(middleware.OptionalJWTAuthMiddleware())

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Info().Msg("JWT authentication middleware applied to /api/v1 group")

	// User profile routes
	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterProfileRoutes(api)

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, collectionService)
	postHandler.RegisterPostRoutes(public, api)

	// Food and review routes
	foodHandler := handlers.NewFoodHandler(foodRepo, reviewRepo, collectionService)
	foodHandler.RegisterFoodRoutes(public, api)

	// Restaurant routes
	restaurantHandler := handlers.NewRestaurantHandler(restaurantRepo, collectionService)
	restaurantHandler.RegisterRestaurantRoutes(public)

	// Collection routes
	collectionHandler := handlers.NewCollectionHandler(collectionService)
	collectionHandler.RegisterCollectionRoutes(api)

	log.Info().Msg("All routes configured")
}

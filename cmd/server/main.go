package main

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/moxuanli/frs/backend/internal/router"
	"github.com/moxuanli/frs/backend/pkg/config"
	"github.com/moxuanli/frs/backend/pkg/logging"
	"github.com/moxuanli/frs/backend/validators"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.Env)

	// Initialize database connection
	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.CloseDB() // Ensure database connection is closed when main exits

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupRoutes(e, db.Postgres)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

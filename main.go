package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"mixtrip-api/config"
	"mixtrip-api/database"
	"mixtrip-api/jobs"
	"mixtrip-api/middleware"
	"mixtrip-api/routes"
	"mixtrip-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed database with starter locations (optional - for development)
	if err := database.SeedData(db); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(routes.SetupCORS())
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))

	// Email service for password resets
	emailService := services.NewEmailService(cfg)

	// Setup routes
	routes.SetupRoutes(router, db, cfg, emailService)

	// Keep location usage counters in step with trip edits
	usageJob := jobs.NewLocationUsageJob(db, time.Hour)
	usageJob.Start()
	defer usageJob.Stop()

	// Start server
	log.Printf("Starting MixTrip API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"mixtrip-api/config"
	"mixtrip-api/controllers"
	"mixtrip-api/middleware"
	"mixtrip-api/services"
)

// SetupCORS allows the web client to call the API from another origin.
func SetupCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, emailService *services.EmailService) {
	// Controllers
	authController := controllers.NewAuthController(db, cfg.JWTSecret, cfg.AppBaseURL, emailService)
	userController := controllers.NewUserController(db)
	tripController := controllers.NewTripController(db)
	locationController := controllers.NewLocationController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// API version 1
	v1 := r.Group("/api/v1")

	// Auth routes (public)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/logout", authController.Logout)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// Public reads carry an identity when a token is present so that
	// privacy checks and view counting see who is asking.
	public := v1.Group("/")
	public.Use(middleware.OptionalAuthMiddleware(cfg.JWTSecret))
	{
		public.GET("/trips/explore", tripController.Explore)
		public.GET("/trips/:id", tripController.Get)
		public.GET("/locations/search", locationController.Search)
		public.GET("/locations/nearby", locationController.Nearby)
		public.GET("/locations/:id", locationController.Get)
		public.GET("/users/:id", userController.GetProfile)
		public.GET("/users/:id/trips", userController.GetUserTrips)
	}

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		auth := protected.Group("/auth")
		{
			auth.GET("/me", authController.Me)
		}

		users := protected.Group("/users")
		{
			users.PUT("/profile", userController.UpdateProfile)
		}

		trips := protected.Group("/trips")
		{
			trips.GET("/", tripController.MyTrips)
			trips.POST("/", tripController.Create)
			trips.PUT("/:id", tripController.Update)
			trips.DELETE("/:id", tripController.Delete)
			trips.POST("/:id/like", tripController.ToggleLike)
			trips.POST("/:id/locations/:locationId", tripController.AddLocation)
			trips.DELETE("/:id/locations/:locationId", tripController.RemoveLocation)
			trips.POST("/:id/itinerary/:day/activities", tripController.AddActivity)
		}

		locations := protected.Group("/locations")
		{
			locations.POST("/", locationController.Create)
			locations.PUT("/:id", locationController.Update)
			locations.DELETE("/:id", locationController.Delete)
		}
	}
}

package main

import (
	"log"
	"os"
	"time"

	"github.com/annadaan/annadaan-backend/internal/database"
	"github.com/annadaan/annadaan-backend/internal/handlers"
	"github.com/annadaan/annadaan-backend/internal/middleware"
	"github.com/annadaan/annadaan-backend/internal/service"
	"github.com/annadaan/annadaan-backend/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// Redis is optional; availability tracking degrades to a no-op without it
	if err := services.InitRedis(); err != nil {
		log.Printf("Redis initialization warning: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	userService := service.NewUserService(db)
	donationService := service.NewDonationService(db)
	statsService := service.NewStatsService(db)

	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	r.Use(cors.New(config))

	// Serve locally stored donation photos
	r.Static("/uploads", "/app/uploads")

	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(userService))
			auth.POST("/login", handlers.Login(userService))
		}

		api.GET("/stats", handlers.GetImpactStats(statsService))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			users := protected.Group("/users")
			{
				users.GET("/:userType", handlers.GetUsersByRole(userService))
				// Serves GET /users/id/:id; gin cannot mix a literal "id"
				// segment with the :userType wildcard above.
				users.GET("/:userType/:id", handlers.GetUserByID(userService))
			}

			donations := protected.Group("/donations")
			{
				donations.GET("", handlers.GetDonations(donationService))
				donations.POST("", handlers.CreateDonation(donationService))
				donations.GET("/:id", handlers.GetDonation(donationService))
				donations.PATCH("/:id", handlers.UpdateDonation(donationService))
				donations.POST("/:id/request", handlers.RequestDonation(donationService))
				donations.POST("/:id/accept-pickup", handlers.AcceptPickup(donationService))
				donations.POST("/:id/photo", handlers.UploadDonationPhoto(donationService))
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

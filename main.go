package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"crypto-tracker/config"
	"crypto-tracker/handlers"
	"crypto-tracker/middleware"
	"crypto-tracker/models"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	// Initialize PostgreSQL and Redis connections.
	config.InitDB()
	config.InitRedis()

	sqlDB, err := config.DB.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}
	defer sqlDB.Close()

	// Auto-migrate models.
	if err := config.DB.AutoMigrate(&models.User{}, &models.Portfolio{}, &models.Holding{}, &models.Trade{}); err != nil {
		log.Fatal("Failed to migrate models:", err)
	}

	router := gin.Default()

	// Public routes
	router.POST("/signup", handlers.Signup)
	router.POST("/login", handlers.Login)
	router.GET("/crypto/prices", handlers.GetCryptoPrices)

	// Protected routes
	auth := router.Group("/")
	auth.Use(middleware.JWTAuth())
	{
		auth.GET("/portfolio", handlers.GetPortfolio)
		auth.POST("/trading/execute", handlers.ExecuteTrade)
		auth.GET("/trading/history", handlers.GetTradeHistory)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	router.Run(":" + port)
}

package main

import (
	"net/http"
	"os"
	"strings"

	"fixmydistrict-be/config"
	"fixmydistrict-be/logger"
	"fixmydistrict-be/models"
	"fixmydistrict-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}
	logger.Init()

	db := config.ConnectDB()
	if db == nil {
		logrus.Fatal("Failed to connect to MongoDB")
	}
	config.ConnectRedis()

	if err := models.EnsureUserIndexes(config.GetCollection("users")); err != nil {
		logrus.Warnf("Failed to ensure user indexes: %v", err)
	}
	if err := models.EnsureNotificationIndexes(config.GetCollection("notifications")); err != nil {
		logrus.Warnf("Failed to ensure notification indexes: %v", err)
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	routes.AuthRoutes(r)
	routes.ProfileRoutes(r)
	routes.ReportRoutes(r)
	routes.HelpRequestRoutes(r)
	routes.NotificationRoutes(r)
	routes.MLARoutes(r)
	routes.AdminRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}

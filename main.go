package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"tech-shop/config"
	_ "tech-shop/docs"
	"tech-shop/middleware"
	"tech-shop/repositories"
	"tech-shop/routes"
	"tech-shop/services"
)

// @title Tech Shop API
// @version 1.0
// @description REST API for the Tech Shop e-commerce backend
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	config.LoadConfig()

	if config.AppConfig.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	config.ConnectDB()
	defer config.CloseDB()

	config.RunMigrations()

	config.InitRedis()
	defer config.CloseRedis()

	if config.AppConfig.SeedDB {
		if err := config.SeedDatabase(); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	if err := os.MkdirAll(config.AppConfig.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("Failed to create upload directory: %v", err)
	}

	var mailer services.Mailer
	if emailService, err := services.NewEmailService(); err != nil {
		log.Printf("Email disabled: %v", err)
	} else {
		mailer = emailService
	}

	go pruneExpiredResetTokens()

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	routes.SetupRoutes(router, mailer)

	port := ":" + config.AppConfig.Port
	log.Printf("Server starting on port %s", port)
	log.Printf("Environment: %s", config.AppConfig.AppEnv)
	log.Printf("Swagger UI: http://localhost:%s/swagger/index.html", config.AppConfig.Port)

	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// pruneExpiredResetTokens removes stale password reset codes once an hour.
func pruneExpiredResetTokens() {
	tokens := repositories.NewResetTokenRepository()
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := tokens.DeleteExpired(context.Background()); err != nil {
			log.Printf("Failed to prune expired reset tokens: %v", err)
		}
	}
}

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillora/skillora-backend/config"
	"github.com/skillora/skillora-backend/internal/app/controller"
	"github.com/skillora/skillora-backend/internal/app/repository"
	"github.com/skillora/skillora-backend/internal/app/service"
	"github.com/skillora/skillora-backend/internal/db"
	"github.com/skillora/skillora-backend/internal/middleware"
	"github.com/skillora/skillora-backend/internal/router"
	"github.com/skillora/skillora-backend/internal/storage"
	"github.com/skillora/skillora-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Skillora Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Demo accounts only exist in development
	if cfg.Server.Environment == "development" {
		if err := db.Seed(); err != nil {
			logger.Warn("Failed to seed database", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	profileRepo := repository.NewProfileRepository(db.GetDB())
	offerRepo := repository.NewOfferRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	reviewRepo := repository.NewReviewRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(userRepo, db.GetDB(), cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	profileService := service.NewProfileService(profileRepo, db.GetDB())
	offerService := service.NewOfferService(offerRepo, profileRepo, db.GetDB())
	orderService := service.NewOrderService(orderRepo, offerRepo, profileRepo, userRepo)
	reviewService := service.NewReviewService(reviewRepo, profileRepo, userRepo)
	statsService := service.NewStatsService(reviewRepo, profileRepo, offerRepo)

	// Initialize S3 storage for avatar and offer image uploads
	s3Storage, err := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	if err != nil {
		logger.Fatal("Failed to initialize S3 storage", err)
	}

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	profileController := controller.NewProfileController(profileService)
	offerController := controller.NewOfferController(offerService)
	orderController := controller.NewOrderController(orderService)
	reviewController := controller.NewReviewController(reviewService)
	statsController := controller.NewStatsController(statsService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		profileController,
		offerController,
		orderController,
		reviewController,
		statsController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

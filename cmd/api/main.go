package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/ursa-team/ursa-go-api/internal/config"
	"github.com/ursa-team/ursa-go-api/internal/database"
	"github.com/ursa-team/ursa-go-api/internal/handler"
	"github.com/ursa-team/ursa-go-api/internal/middleware"
	"github.com/ursa-team/ursa-go-api/internal/models"
	"github.com/ursa-team/ursa-go-api/internal/repository"
	"github.com/ursa-team/ursa-go-api/internal/router"
	"github.com/ursa-team/ursa-go-api/internal/scoring"
	"github.com/ursa-team/ursa-go-api/internal/service"
	cloud "github.com/ursa-team/ursa-go-api/pkg/cloudinary"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.Student{}, &models.Document{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	uploader, err := cloud.New(cloud.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryUploadFolder,
	}, logger)
	if err != nil {
		log.Fatalf("failed to create cloudinary client: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	rules := scoring.NewFileProvider(cfg.ScoringRulesPath, logger)

	studentRepo := repository.NewStudentRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	achievementService := service.NewAchievementService(documentRepo, studentRepo, rules, validate, uploader, logger)
	ratingService := service.NewRatingService(studentRepo, redisClient, cfg.RatingCacheTTL, logger)
	reviewService := service.NewReviewService(documentRepo, ratingService, validate, logger)
	profileService := service.NewStudentProfileService(studentRepo, rules, logger)

	achievementHandler := handler.NewAchievementHandler(achievementService, logger)
	reviewHandler := handler.NewReviewHandler(reviewService, logger)
	studentHandler := handler.NewStudentHandler(profileService, ratingService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AchievementHandler: achievementHandler,
		ReviewHandler:      reviewHandler,
		StudentHandler:     studentHandler,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		SubmitLimiter:      middleware.RateLimit("submit", cfg.SubmitRateLimit, cfg.SubmitRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}

package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/psmolich79/healthy-meal/config"
	"github.com/psmolich79/healthy-meal/internal/api"
	"github.com/psmolich79/healthy-meal/internal/database"
	"github.com/psmolich79/healthy-meal/internal/middleware"
	"github.com/psmolich79/healthy-meal/internal/router"
	"github.com/psmolich79/healthy-meal/internal/server"
	"github.com/psmolich79/healthy-meal/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis backs the auth endpoint throttle; the app still works without it.
	var authLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, auth rate limiting disabled: %v", err)
	} else {
		authLimiter = middleware.NewAuthRateLimiter(redisClient)
	}

	// S3 backs profile picture uploads; optional in local development.
	var imageService *service.ImageService
	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("S3 unavailable, profile picture uploads disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Config)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	recipeService := service.NewRecipeService(db)
	usageService := service.NewUsageService(db)
	llmService := service.NewLLMService(cfg.OpenAIAPIKey, cfg.OpenAIAPIURL, cfg.OpenAIModel)
	generationService := service.NewGenerationService(db, llmService, profileService, cfg.OpenAIModel)

	handlers := router.Handlers{
		Auth:    api.NewAuthHandler(authService),
		Profile: api.NewProfileHandler(profileService, imageService),
		Recipe:  api.NewRecipeHandler(recipeService, generationService),
		Usage:   api.NewUsageHandler(usageService),
	}

	engine := router.SetupRouter(handlers, authService, authLimiter)
	srv := server.New(engine, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-talentpool-backend/config"
	_ "go-talentpool-backend/docs" // Important for Swagger
	v1 "go-talentpool-backend/internal/delivery/http/v1"
	"go-talentpool-backend/internal/repository/postgres"
	"go-talentpool-backend/internal/usecase"
	"go-talentpool-backend/pkg/database"
	"go-talentpool-backend/pkg/logger"
	"go-talentpool-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Talent Pool Backend API
// @version         1.0
// @description     User registration/login and student talent-pool profiles.
// @host            localhost:4000
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talent pool backend", "port", cfg.Port)

	// 3. Migrate and connect to the database
	if err := database.Migrate(cfg.DBUrl); err != nil {
		logger.Log.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional, rate limiter falls back to memory)
	redisClient, err := redis.New(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	if err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting will use in-memory fallback", "error", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)

	// 6. Setup UseCases
	validate := validator.New()
	authUC := usecase.NewAuthUsecase(userRepo, cfg.BcryptCost)
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:    authUC,
		ProfileUC: profileUC,
		Redis:     redisClient,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

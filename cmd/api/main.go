package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/larder/backend/config"
	"github.com/pageza/larder/backend/internal/database"
	"github.com/pageza/larder/backend/internal/logging"
	"github.com/pageza/larder/backend/internal/provider/mealdb"
	"github.com/pageza/larder/backend/internal/provider/spoonacular"
	"github.com/pageza/larder/backend/internal/router"
	"github.com/pageza/larder/backend/internal/server"
	"github.com/pageza/larder/backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger := logging.SetDefault("api", cfg.LogLevel)
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}()

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		revoker     service.TokenRevoker = service.NoopTokenRevoker{}
	)
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer redisClient.Close()
		revoker = service.NewRedisTokenRevoker(redisClient)
	} else {
		logger.Warn("REDIS_URL not set; logged out tokens stay valid until they expire")
	}

	var photoStore service.IPhotoStore
	if cfg.S3BucketName != "" {
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		photoStore = service.NewS3PhotoStore(s3Cfg)
	} else {
		logger.Info("S3_BUCKET_NAME not set; photo uploads disabled")
	}

	external := service.NewExternalRecipeService(
		&spoonacular.Client{APIKey: cfg.SpoonacularAPIKey, BaseURL: cfg.SpoonacularBaseURL},
		&mealdb.Client{APIKey: cfg.MealDBAPIKey, BaseURL: cfg.MealDBBaseURL},
	)

	engine := router.SetupRouter(router.Dependencies{
		DB:              db,
		Redis:           redisClient,
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		AuthService:     service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, revoker),
		RecipeService:   service.NewRecipeService(db),
		PantryService:   service.NewPantryService(db),
		ExternalService: external,
		PhotoStore:      photoStore,
	})

	return server.New(cfg.Addr(), engine, logger).Run(ctx)
}

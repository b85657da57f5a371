package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"mock-auth/internal/config"
	apihttp "mock-auth/internal/http"
	"mock-auth/internal/repository"
	"mock-auth/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Snapshot durable: Postgres si hay DATABASE_URL, archivo JSON si no.
	var snapshot repository.SnapshotStore = repository.NewFileSnapshotStore(cfg.StorePath)
	if cfg.DatabaseURL != "" {
		pool, err := repository.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		pgSnap, err := repository.NewPgSnapshotStore(ctx, pool, repository.CollectionName)
		if err != nil {
			logger.Fatal("snapshot schema", zap.Error(err))
		}
		snapshot = pgSnap
	}

	store := repository.NewUserStore(ctx, logger, snapshot)

	var tracker service.IssuedTokenTracker
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			tracker = service.NewRedisIssuedTokenTracker(redisClient)
		}
		cancel()
	}

	tokenSvc := service.NewTokenService(time.Duration(cfg.TokenTTLSeconds)*time.Second, tracker)
	authSvc := service.NewAuthService(logger, store, tokenSvc, cfg.DefaultUserName)
	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	router := apihttp.NewRouter(logger, authHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting mock auth server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("users", store.Len()),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweetshop/inventory-system/internal/api"
	"github.com/sweetshop/inventory-system/internal/core/service"
	"github.com/sweetshop/inventory-system/internal/infrastructure/config"
	mongodb "github.com/sweetshop/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/sweetshop/inventory-system/internal/infrastructure/db/redis"
	"github.com/sweetshop/inventory-system/pkg/logger"
)

// @title           Sweet Shop Inventory API
// @version         1.0
// @description     REST backend for sweet inventory management: accounts, sweets CRUD, purchase and restock.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect failed")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	sweetRepo := mongodb.NewSweetRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user indexes failed")
	}
	if err := sweetRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("sweet indexes failed")
	}

	e := api.NewRouter(db, rdb, cfg.JWTSecret, log)

	if cfg.Admin.Password != "" {
		authService := service.NewAuthService(userRepo, nil, cfg.JWTSecret, 24*time.Hour, log)
		if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("admin seeding failed")
		}
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}

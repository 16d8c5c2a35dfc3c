package main

import (
	"context"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/tair/population/internal/user"
	"github.com/tair/population/internal/user/domain"
	"github.com/tair/population/pkg/auth"
	"github.com/tair/population/pkg/config"
	"github.com/tair/population/pkg/database"
	"github.com/tair/population/pkg/logger"
	"github.com/tair/population/pkg/middleware"
	"github.com/tair/population/pkg/server"
	"github.com/tair/population/pkg/tracing"
)

func main() {
	cfg, err := config.Load(config.Defaults{
		ServiceName: "user-service",
		HTTPPort:    "8080",
		DBName:      "userdb",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Name, cfg.App.Environment, cfg.App.LogLevel)
	logger.Logger.Info().
		Str("service", cfg.App.Name).
		Str("environment", cfg.App.Environment).
		Msg("Starting user service")

	tp, err := tracing.Init(cfg.App.Name, cfg.Tracing)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	db, err := database.NewGormConnection(cfg.DB)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := db.AutoMigrate(&domain.User{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	redisClient, err := auth.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unavailable - logout revocation is process local")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	handler, err := user.InitializeHTTPHandler(
		db,
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		auth.NewRevocationStore(redisClient),
		prometheus.DefaultRegisterer,
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	router := mux.NewRouter()
	middleware.Register(router, middleware.Config{
		ServiceName:     cfg.App.Name,
		EnableTracing:   cfg.Tracing.Enabled,
		TimeoutDuration: cfg.HTTP.RequestTimeout,
	})
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, sqlDB)
	router.Handle("/metrics", promhttp.Handler())

	if err := server.Run(cfg.HTTP.Port, router, cfg.HTTP.RequestTimeout); err != nil {
		logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
	}
	logger.Logger.Info().Msg("User service stopped")
}

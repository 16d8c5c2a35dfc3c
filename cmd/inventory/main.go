package main

import (
	"context"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/tair/population/docs"
	"github.com/tair/population/internal/inventory"
	httpDelivery "github.com/tair/population/internal/inventory/delivery/http"
	"github.com/tair/population/internal/inventory/domain"
	"github.com/tair/population/kafka"
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
		ServiceName: "inventory-service",
		HTTPPort:    "8082",
		DBName:      "inventorydb",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.App.Name, cfg.App.Environment, cfg.App.LogLevel)
	logger.Logger.Info().
		Str("service", cfg.App.Name).
		Str("environment", cfg.App.Environment).
		Str("log_level", cfg.App.LogLevel).
		Msg("Starting inventory service")

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

	if err := db.AutoMigrate(&domain.Ingredient{}, &domain.Item{}, &domain.ItemIngredient{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Str("driver", cfg.DB.Driver).Msg("Database initialized successfully")

	var publisher domain.EventPublisher = domain.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Kafka unavailable - inventory events disabled")
		} else {
			defer kafkaPublisher.Close()
			publisher = kafkaPublisher
		}
	}

	redisClient, err := auth.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Redis unavailable - revoked tokens are tracked in process only")
	}
	if redisClient != nil {
		defer redisClient.Close()
	}
	authenticator := middleware.NewAuthenticator(
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		auth.NewRevocationStore(redisClient),
	)

	handler, err := inventory.InitializeHTTPHandler(db, publisher, authenticator, prometheus.DefaultRegisterer)
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

	docs.SwaggerInfo.Host = "localhost:" + cfg.HTTP.Port
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	if err := server.Run(cfg.HTTP.Port, router, cfg.HTTP.RequestTimeout); err != nil {
		logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
	}
	logger.Logger.Info().Msg("Inventory service stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/pos-backoffice/docs"
	"github.com/tair/pos-backoffice/internal/app"
	"github.com/tair/pos-backoffice/internal/invoice/renderer"
	"github.com/tair/pos-backoffice/kafka"
	"github.com/tair/pos-backoffice/pkg/auth"
	"github.com/tair/pos-backoffice/pkg/breaker"
	"github.com/tair/pos-backoffice/pkg/cache"
	"github.com/tair/pos-backoffice/pkg/config"
	"github.com/tair/pos-backoffice/pkg/database"
	"github.com/tair/pos-backoffice/pkg/logger"
	"github.com/tair/pos-backoffice/pkg/middleware"
	"github.com/tair/pos-backoffice/pkg/ratelimit"
	"github.com/tair/pos-backoffice/pkg/storage"
	"github.com/tair/pos-backoffice/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.App.Name, cfg.App.IsDevelopment())
	logger.SetLevel(cfg.App.LogLevel)

	logger.Logger.Info().
		Str("environment", cfg.App.Env).
		Str("log_level", cfg.App.LogLevel).
		Msg("Starting POS back office")

	// Initialize tracer
	tp, err := tracing.InitTracer(cfg.App.Name, cfg.Tracing)
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

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := app.Migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis backs the report cache and the rate limiter; both degrade to no-ops without it
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, continuing")
		}
		defer redisClient.Close()
	}
	reports := cache.New(redisClient, "day-sales", cfg.Redis.ReportTTL)

	var publisher kafka.EventPublisher = kafka.NopPublisher{}
	if cfg.Kafka.Enabled {
		p, err := kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create Kafka publisher")
		}
		defer p.Close()
		publisher = p

		startReportConsumer(ctx, cfg, reports)
	}

	var store storage.ObjectStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3Store(ctx, cfg.Storage)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create object store")
		}
		if err := s3Store.EnsureBucket(ctx); err != nil {
			logger.Logger.Fatal().Err(err).Str("bucket", cfg.Storage.Bucket).Msg("Failed to prepare bucket")
		}
		store = s3Store
	}

	chrome := renderer.NewChromeRenderer(cfg.Renderer)
	defer chrome.Close()
	pdfRenderer := renderer.NewGuardedRenderer(chrome,
		breaker.New("invoice-renderer", cfg.Renderer.BreakerFailures, cfg.Renderer.BreakerCooldown))

	// Initialize handlers with Wire DI
	handlers, err := app.InitializeHandlers(db, cfg, publisher, reports, store, pdfRenderer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handlers")
	}

	router := app.NewRouter(handlers, app.RouterConfig{
		DB:         sqlDB,
		Tokens:     auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer),
		Limiter:    ratelimit.New(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window).Middleware,
		Swagger:    httpSwagger.WrapHandler,
		Middleware: middleware.DefaultConfig(),
	})

	server := &http.Server{
		Addr:              ":" + cfg.App.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.App.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Server forced to shutdown")
	}
}

// startReportConsumer joins a per-instance group so every replica drops its cached reports
func startReportConsumer(ctx context.Context, cfg *config.Config, reports *cache.Cache) {
	groupID := cfg.Kafka.GroupID
	if host, err := os.Hostname(); err == nil {
		groupID += "-" + host
	}

	consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, groupID, []string{kafka.TopicInvoices})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create Kafka consumer, report cache relies on TTL")
		return
	}
	app.SubscribeReportInvalidation(consumer, reports)
	consumer.Start(ctx)

	go func() {
		<-ctx.Done()
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}()
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"concertly/api/routes"
	"concertly/internal/notifications"
	"concertly/internal/shared/config"
	"concertly/internal/shared/database"
	"concertly/pkg/logger"
	"concertly/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		appLogger.Error("failed to connect:", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	// Rate limiter
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled && db.Redis != nil {
		rateLimiterConfig := &ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			WindowDuration:    cfg.RateLimit.WindowDuration,
			DefaultRequests:   cfg.RateLimit.DefaultRequests,
			PublicRequests:    cfg.RateLimit.PublicRequests,
			AuthRequests:      cfg.RateLimit.AuthRequests,
			SelectionRequests: cfg.RateLimit.SelectionRequests,
			BookingRequests:   cfg.RateLimit.BookingRequests,
			AdminRequests:     cfg.RateLimit.AdminRequests,
			HealthRequests:    cfg.RateLimit.HealthRequests,
			WhitelistedIPs:    cfg.RateLimit.WhitelistedIPs,
		}
		rateLimiter = ratelimit.NewRateLimiter(db.GetRedisClient(), rateLimiterConfig)
		appLogger.Info("Rate limiter initialized",
			slog.Duration("window", cfg.RateLimit.WindowDuration),
			slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
		)
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Booking event producer and notification consumer
	var producer notifications.Producer = notifications.NewNoopProducer()
	if cfg.Kafka.Enabled {
		kafkaProducer, err := notifications.NewKafkaBookingProducer(cfg.Kafka)
		if err != nil {
			appLogger.Error("Failed to initialize Kafka producer, booking events disabled", slog.Any("error", err))
		} else {
			producer = kafkaProducer
			defer kafkaProducer.Close()
		}

		consumer, err := notifications.NewBookingEventConsumer(cfg.Kafka, notifications.NewLogNotifier())
		if err != nil {
			appLogger.Error("Failed to initialize Kafka consumer, notifications disabled", slog.Any("error", err))
		} else {
			consumer.Start(context.Background())
			defer func() {
				if err := consumer.Stop(); err != nil {
					appLogger.Error("Error stopping consumer", slog.Any("error", err))
				}
			}()
		}
	}

	appRouter := routes.NewRouter(cfg, db, producer)
	defer appRouter.Close()
	engine := setupEngine(cfg, rateLimiter)
	appRouter.SetupRoutes(engine)

	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        engine,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("version", cfg.APIVersion),
			slog.Bool("redis_cache", db.Redis != nil),
			slog.Bool("kafka_events", cfg.Kafka.Enabled),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupEngine(cfg *config.Config, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	engine.Use(RequestLoggerMiddleware(appLogger), gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-RateLimit-*"},
		ExposeHeaders:    []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	return engine
}

func RequestLoggerMiddleware(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		l.LogHTTPRequest(c, duration)
	}
}

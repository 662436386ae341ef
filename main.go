package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"

	"fyyur/internal/config"
	"fyyur/internal/database"
	"fyyur/internal/database/migrations"
	"fyyur/internal/flash"
	"fyyur/internal/kafka"
	"fyyur/internal/logger"
	"fyyur/internal/server"
	"fyyur/internal/web"
)

func prepareSchema(ctx context.Context, cfg *config.Config, bunDB *bun.DB, logger *logger.Logger) {
	if cfg.Database.Driver == database.DriverPostgres {
		if !cfg.Database.AutoMigrate {
			logger.Info("MIGRATE", "AUTO_MIGRATE disabled, skipping migrations")
			return
		}
		runner := migrations.NewRunner(cfg.Database.PostgresDSN, migrations.MigrateOptions{MigrationsDir: cfg.Database.MigrationsDir}, logger)
		if err := runner.RunMigrations(); err != nil {
			logger.Fatal("MIGRATE", fmt.Sprintf("Failed to run migrations: %v", err))
		}
		logger.Info("MIGRATE", "✅ Migrations applied")
	} else {
		if err := database.CreateSchema(ctx, bunDB); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Failed to create schema: %v", err))
		}
		logger.LogDatabase("CREATE", "venues, artists, shows", "✅ SQLite schema ready")
	}

	if cfg.Database.SeedData {
		wrote, err := database.SeedIfEmpty(ctx, bunDB)
		if err != nil {
			logger.Error("DATABASE", fmt.Sprintf("Failed to seed sample data: %v", err))
		} else if wrote {
			logger.LogDatabase("SEED", "venues, artists, shows", "Sample data loaded")
		}
	}
}

func flashStore(ctx context.Context, cfg config.RedisConfig, logger *logger.Logger) (flash.Store, func()) {
	if cfg.Addr == "" {
		logger.Warn("REDIS", "REDIS_ADDR not set, keeping flash messages in process memory")
		return flash.NewMemoryStore(cfg.FlashTTL), func() {}
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal("REDIS", fmt.Sprintf("Redis connection error: %v", err))
	}
	logger.Info("REDIS", fmt.Sprintf("✅ Redis connection successful to %s (DB: %d)", cfg.Addr, redisClient.Options().DB))
	return flash.NewRedisStore(redisClient, cfg.FlashTTL), func() { redisClient.Close() }
}

func eventProducer(ctx context.Context, cfg config.KafkaConfig, logger *logger.Logger) *kafka.Producer {
	if !cfg.Enabled {
		logger.Info("KAFKA", "KAFKA_ENABLED is false, domain events will not be published")
		return nil
	}

	logger.Info("KAFKA", fmt.Sprintf("Using Kafka brokers: %v", cfg.Brokers))
	if err := kafka.EnsureTopicsExist(ctx, cfg.Brokers, cfg.Topics.All(), logger); err != nil {
		logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	} else {
		logger.Info("KAFKA", "Required topics ensured successfully")
	}
	return kafka.NewProducer(cfg, logger)
}

func main() {
	envErr := godotenv.Load()
	cfg := config.Load()

	logger := logger.NewLogger(cfg.Log)
	defer logger.Close()

	logger.Info("APP", "Starting Fyyur initialization")
	if envErr != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	ctx := context.Background()

	bunDB, err := database.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to open database: %v", err))
	}
	defer bunDB.Close()
	logger.Info("DATABASE", fmt.Sprintf("✅ Connected using the %s driver", cfg.Database.Driver))

	prepareSchema(ctx, cfg, bunDB, logger)

	store, closeStore := flashStore(ctx, cfg.Redis, logger)
	defer closeStore()

	producer := eventProducer(ctx, cfg.Kafka, logger)
	defer producer.Close()

	renderer, err := web.NewRenderer(store, logger)
	if err != nil {
		logger.Fatal("HTTP", fmt.Sprintf("Failed to parse templates: %v", err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	logger.Info("HTTP", "Setting up router and middleware")
	handler := server.NewRouter(server.Deps{
		DB:       bunDB,
		Renderer: renderer,
		Logger:   logger,
		Events:   producer,
		Registry: reg,
		BaseURL:  cfg.Server.PublicBaseURL,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("🚀 Fyyur running on %s", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server Shutdown Failed: %v", err))
	} else {
		logger.Info("HTTP", "✅ Fyyur shutdown complete")
	}
}

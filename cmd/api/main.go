package main

// @title Dyrt Campground Scraper API
// @version 1.0.0
// @description Service that scrapes US campgrounds from The Dyrt search API and serves the reconciled data set. Fetching uses an adaptive quadtree over the continental US bounding box; persistence is an idempotent upsert with tag and photo replacement plus a per-run audit log.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/aysenurarslann/dyrt-campground-scraper/docs"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	httpDelivery "github.com/aysenurarslann/dyrt-campground-scraper/internal/delivery/http"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/delivery/http/handler"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/infrastructure/geocode"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/infrastructure/thedyrt"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/logger"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/repository/cache"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/repository/postgres"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Dyrt Campground Scraper API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks and schema
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	if err := db.InitSchema(ctx); err != nil {
		log.Fatal("Failed to initialize database schema", zap.Error(err))
	}

	log.Info("All connections healthy, schema ready")

	// 6. Initialize repositories
	campRepo := postgres.NewCampgroundRepository(db)
	logRepo := postgres.NewScrapeLogRepository(db)
	lockRepo := cache.NewLockRepository(redisClient)
	searchRepo := thedyrt.NewClient(&cfg.Dyrt, &cfg.Scraper, log)
	geocoderRepo := geocode.NewNominatimClient(&cfg.Geocoder, log)

	log.Info("Repositories initialized")

	// 7. Initialize use cases
	partitioner := usecase.NewPartitioner(searchRepo, log, &cfg.Scraper)
	normalizer := usecase.NewNormalizer(geocoderRepo, cfg.Geocoder.Enabled, log)
	reconciler := usecase.NewReconciler(campRepo, logRepo, log)

	scrapeUC := usecase.NewScrapeUseCase(
		partitioner,
		normalizer,
		reconciler,
		lockRepo,
		log,
		&cfg.Scraper,
	)
	campUC := usecase.NewCampgroundUseCase(campRepo, logRepo, log)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP handlers and server
	campgroundHandler := handler.NewCampgroundHandler(campUC, log)
	scrapeHandler := handler.NewScrapeHandler(scrapeUC, campUC, log)

	server := httpDelivery.NewServer(cfg, log, campgroundHandler, scrapeHandler)

	log.Info("HTTP server initialized")

	// 9. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 10. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/infrastructure/geocode"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/infrastructure/thedyrt"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/logger"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/repository/cache"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/repository/postgres"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/worker"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/worker/scrape"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Scraper.Enabled {
		fmt.Println("Scraper is disabled in configuration. Set SCRAPER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Dyrt Campground Scrape Worker")
	log.Info("Configuration loaded",
		zap.Duration("schedule_interval", cfg.Scraper.ScheduleInterval),
		zap.Int("page_size", cfg.Scraper.PageSize),
		zap.Int("max_depth", cfg.Scraper.MaxDepth),
		zap.Int("concurrency", cfg.Scraper.Concurrency),
		zap.String("branch_policy", string(cfg.Scraper.BranchPolicy)))

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

	// 5. Ensure schema
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.InitSchema(ctx); err != nil {
		cancel()
		log.Fatal("Failed to initialize database schema", zap.Error(err))
	}
	cancel()

	// 6. Initialize repositories
	campRepo := postgres.NewCampgroundRepository(db)
	logRepo := postgres.NewScrapeLogRepository(db)
	lockRepo := cache.NewLockRepository(redisClient)
	searchRepo := thedyrt.NewClient(&cfg.Dyrt, &cfg.Scraper, log)
	geocoderRepo := geocode.NewNominatimClient(&cfg.Geocoder, log)

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

	// 8. Initialize workers
	scrapeWorker := scrape.NewScrapeWorker(scrapeUC, cfg.Scraper.ScheduleInterval, log)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(scrapeWorker)

	// 9. Setup graceful shutdown
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer cancelRun()

	if err := workerManager.Start(runCtx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancelRun()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}

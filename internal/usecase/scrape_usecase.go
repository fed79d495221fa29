package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/errors"
)

// runLockName serializes scrape runs across every process that shares
// the Redis instance (scheduled worker and API-triggered runs alike).
const runLockName = "scraper:full-run"

// triggerTimeout bounds an API-triggered background run.
const triggerTimeout = 2 * time.Hour

// ScrapeUseCase is the orchestrator for one end-to-end pass: partition
// the root region, normalize what came back, reconcile into the store.
// A failed run restarts from scratch on the next invocation; there is no
// checkpointing between phases.
type ScrapeUseCase struct {
	partitioner *Partitioner
	normalizer  *Normalizer
	reconciler  *Reconciler
	lockRepo    repository.LockRepository
	logger      *zap.Logger

	rootRegion domain.Region
	lockTTL    time.Duration
}

func NewScrapeUseCase(
	partitioner *Partitioner,
	normalizer *Normalizer,
	reconciler *Reconciler,
	lockRepo repository.LockRepository,
	logger *zap.Logger,
	cfg *config.ScraperConfig,
) *ScrapeUseCase {
	return &ScrapeUseCase{
		partitioner: partitioner,
		normalizer:  normalizer,
		reconciler:  reconciler,
		lockRepo:    lockRepo,
		logger:      logger,
		rootRegion: domain.Region{
			North: cfg.BoundsNorth,
			South: cfg.BoundsSouth,
			East:  cfg.BoundsEast,
			West:  cfg.BoundsWest,
		},
		lockTTL: cfg.RunLockTTL,
	}
}

// Run executes one full scrape and returns the reconciliation summary.
// Returns ErrScrapeInProgress when another run holds the lock.
func (uc *ScrapeUseCase) Run(ctx context.Context) (*domain.ScrapeSummary, error) {
	acquired, err := uc.lockRepo.Acquire(ctx, runLockName, uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		return nil, errors.ErrScrapeInProgress
	}
	defer uc.releaseLock()

	return uc.execute(ctx)
}

// Trigger starts one run in the background. The lock is acquired here,
// synchronously, so a concurrent run is reported to the caller instead
// of being discovered inside the goroutine.
func (uc *ScrapeUseCase) Trigger(ctx context.Context) error {
	acquired, err := uc.lockRepo.Acquire(ctx, runLockName, uc.lockTTL)
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !acquired {
		return errors.ErrScrapeInProgress
	}

	go func() {
		defer uc.releaseLock()

		runCtx, cancel := context.WithTimeout(context.Background(), triggerTimeout)
		defer cancel()

		if _, err := uc.execute(runCtx); err != nil {
			uc.logger.Error("Triggered scrape run failed", zap.Error(err))
		}
	}()

	return nil
}

func (uc *ScrapeUseCase) execute(ctx context.Context) (*domain.ScrapeSummary, error) {
	start := time.Now()
	uc.logger.Info("Scrape run started",
		zap.Float64("north", uc.rootRegion.North),
		zap.Float64("south", uc.rootRegion.South),
		zap.Float64("east", uc.rootRegion.East),
		zap.Float64("west", uc.rootRegion.West))

	raw, err := uc.partitioner.Partition(ctx, uc.rootRegion)
	if err != nil {
		uc.logger.Error("Scrape run failed in fetch phase", zap.Error(err))
		return nil, fmt.Errorf("partition root region: %w", err)
	}

	uc.logger.Info("Fetch phase complete", zap.Int("raw_records", len(raw)))

	camps := make([]*domain.Campground, 0, len(raw))
	skipped := 0
	for _, record := range raw {
		camp, err := uc.normalizer.Normalize(ctx, record)
		if err != nil {
			// One malformed record never aborts the batch.
			skipped++
			uc.logger.Warn("Skipping malformed record",
				zap.String("id", record.ID),
				zap.Error(err))
			continue
		}
		camps = append(camps, camp)
	}

	added, updated, err := uc.reconciler.Reconcile(ctx, camps)
	if err != nil {
		uc.logger.Error("Scrape run failed in reconcile phase", zap.Error(err))
		return nil, err
	}

	summary := &domain.ScrapeSummary{
		Processed: len(camps),
		Skipped:   skipped,
		Added:     added,
		Updated:   updated,
	}

	uc.logger.Info("Scrape run finished",
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("added", summary.Added),
		zap.Int("updated", summary.Updated),
		zap.Duration("took", time.Since(start)))

	return summary, nil
}

// releaseLock uses its own context so the lock is freed even when the
// run's context is already canceled.
func (uc *ScrapeUseCase) releaseLock() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := uc.lockRepo.Release(ctx, runLockName); err != nil {
		uc.logger.Error("Failed to release run lock", zap.Error(err))
	}
}

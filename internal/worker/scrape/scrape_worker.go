package scrape

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/errors"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/usecase"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/worker"
)

// ScrapeWorker runs one full scrape immediately on start and then once
// per configured interval. Overlap with an API-triggered run is resolved
// by the distributed run lock: a busy lock skips the tick.
type ScrapeWorker struct {
	*worker.BaseWorker
	scrapeUC *usecase.ScrapeUseCase
	interval time.Duration
}

func NewScrapeWorker(
	scrapeUC *usecase.ScrapeUseCase,
	interval time.Duration,
	logger *zap.Logger,
) *ScrapeWorker {
	return &ScrapeWorker{
		BaseWorker: worker.NewBaseWorker("campground-scrape", logger),
		scrapeUC:   scrapeUC,
		interval:   interval,
	}
}

func (w *ScrapeWorker) Start(ctx context.Context) error {
	w.Logger().Info("Scrape worker started", zap.Duration("interval", w.interval))

	w.runOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.Logger().Info("Scrape worker context canceled")
			return nil
		case <-w.StopChan():
			w.Logger().Info("Scrape worker stopped")
			return nil
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *ScrapeWorker) runOnce(ctx context.Context) {
	summary, err := w.scrapeUC.Run(ctx)
	if err != nil {
		if errors.Is(err, errors.ErrScrapeInProgress) {
			w.Logger().Info("Skipping scheduled scrape, another run holds the lock")
			return
		}
		w.Logger().Error("Scheduled scrape run failed", zap.Error(err))
		return
	}

	w.Logger().Info("Scheduled scrape run complete",
		zap.Int("processed", summary.Processed),
		zap.Int("skipped", summary.Skipped),
		zap.Int("added", summary.Added),
		zap.Int("updated", summary.Updated))
}

package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
)

// Reconciler merges a batch of normalized campgrounds into the store and
// keeps the audit trail. One logical unit of work per run: the scrape log
// row is opened in running state before the first write and always
// finalized, so it never leaks a dangling "running".
//
// Entities are written one at a time on a single goroutine; per-run
// serialization is what keeps the lazy tag registry and the association
// rewrites free of same-id races.
type Reconciler struct {
	campRepo repository.CampgroundRepository
	logRepo  repository.ScrapeLogRepository
	logger   *zap.Logger
}

func NewReconciler(
	campRepo repository.CampgroundRepository,
	logRepo repository.ScrapeLogRepository,
	logger *zap.Logger,
) *Reconciler {
	return &Reconciler{
		campRepo: campRepo,
		logRepo:  logRepo,
		logger:   logger,
	}
}

// Reconcile upserts the batch. Any persistence failure marks the log row
// failed with the causal error and propagates; campgrounds committed
// before the failure stay committed (per-entity atomicity only).
func (r *Reconciler) Reconcile(ctx context.Context, camps []*domain.Campground) (added, updated int, err error) {
	logRow, err := r.logRepo.Create(ctx, len(camps))
	if err != nil {
		return 0, 0, fmt.Errorf("open scrape log: %w", err)
	}

	for _, camp := range camps {
		created, upsertErr := r.campRepo.Upsert(ctx, camp)
		if upsertErr != nil {
			wrapped := fmt.Errorf("reconcile campground %s: %w", camp.ID, upsertErr)
			if markErr := r.logRepo.MarkFailed(ctx, logRow.ID, wrapped); markErr != nil {
				r.logger.Error("Failed to finalize scrape log after error",
					zap.String("log_id", logRow.ID),
					zap.Error(markErr))
			}
			return added, updated, wrapped
		}
		if created {
			added++
		} else {
			updated++
		}
	}

	if err := r.logRepo.MarkSuccess(ctx, logRow.ID, added, updated); err != nil {
		return added, updated, fmt.Errorf("finalize scrape log: %w", err)
	}

	r.logger.Info("Batch reconciled",
		zap.String("log_id", logRow.ID),
		zap.Int("added", added),
		zap.Int("updated", updated))

	return added, updated, nil
}

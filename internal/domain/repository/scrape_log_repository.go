package repository

import (
	"context"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
)

// ScrapeLogRepository records the audit trail of scrape runs.
type ScrapeLogRepository interface {
	// Create opens a log row in running state with the batch size as
	// records_processed and returns it with its generated id.
	Create(ctx context.Context, processed int) (*domain.ScrapeLog, error)

	// MarkSuccess finalizes a run: status success, counters, end time.
	MarkSuccess(ctx context.Context, id string, added, updated int) error

	// MarkFailed finalizes a run with the causal error captured as a
	// structured payload.
	MarkFailed(ctx context.Context, id string, cause error) error

	// List returns log rows, newest first.
	List(ctx context.Context, limit int) ([]*domain.ScrapeLog, error)
}

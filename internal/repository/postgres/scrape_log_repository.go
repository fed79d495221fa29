package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/errors"
)

type scrapeLogRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewScrapeLogRepository(db *DB) repository.ScrapeLogRepository {
	return &scrapeLogRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *scrapeLogRepository) Create(ctx context.Context, processed int) (*domain.ScrapeLog, error) {
	log := &domain.ScrapeLog{
		ID:               uuid.NewString(),
		StartTime:        time.Now().UTC(),
		Status:           domain.ScrapeStatusRunning,
		RecordsProcessed: processed,
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO scraper_logs (id, start_time, status, records_processed)
		VALUES ($1, $2, $3, $4)`,
		log.ID, log.StartTime, log.Status, log.RecordsProcessed)
	if err != nil {
		return nil, fmt.Errorf("create scrape log: %w", err)
	}

	return log, nil
}

func (r *scrapeLogRepository) MarkSuccess(ctx context.Context, id string, added, updated int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE scraper_logs
		SET status = $2, records_added = $3, records_updated = $4, end_time = NOW()
		WHERE id = $1`,
		id, domain.ScrapeStatusSuccess, added, updated)
	if err != nil {
		return fmt.Errorf("mark scrape log %s success: %w", id, err)
	}
	return nil
}

func (r *scrapeLogRepository) MarkFailed(ctx context.Context, id string, cause error) error {
	payload, err := json.Marshal(map[string]string{"message": cause.Error()})
	if err != nil {
		payload = []byte(`{"message":"unencodable error"}`)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE scraper_logs
		SET status = $2, errors = $3, end_time = NOW()
		WHERE id = $1`,
		id, domain.ScrapeStatusFailed, payload)
	if err != nil {
		return fmt.Errorf("mark scrape log %s failed: %w", id, err)
	}
	return nil
}

func (r *scrapeLogRepository) List(ctx context.Context, limit int) ([]*domain.ScrapeLog, error) {
	var logs []*domain.ScrapeLog
	err := r.db.SelectContext(ctx, &logs,
		`SELECT id, start_time, end_time, status,
			records_processed, records_added, records_updated, errors
		FROM scraper_logs
		ORDER BY start_time DESC
		LIMIT $1`, limit)
	if err != nil {
		r.logger.Error("Failed to list scrape logs", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return logs, nil
}

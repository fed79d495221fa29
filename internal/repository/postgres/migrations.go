package postgres

import (
	"context"
	"fmt"
)

// schema is applied idempotently at startup. The tag name UNIQUE
// constraints back the lazy tag registry: concurrent creators race on
// INSERT ... ON CONFLICT DO NOTHING instead of duplicating rows.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS campgrounds (
		id TEXT PRIMARY KEY,
		type TEXT,
		links_self TEXT,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		region_name TEXT,
		administrative_area TEXT,
		nearest_city_name TEXT,
		bookable BOOLEAN NOT NULL DEFAULT FALSE,
		operator TEXT,
		photo_url TEXT,
		photos_count INTEGER NOT NULL DEFAULT 0,
		rating DOUBLE PRECISION,
		reviews_count INTEGER NOT NULL DEFAULT 0,
		slug TEXT,
		price_low DOUBLE PRECISION,
		price_high DOUBLE PRECISION,
		availability_updated_at TIMESTAMPTZ,
		address TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS camper_types (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS accommodation_types (
		id SERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS campground_camper_types (
		campground_id TEXT NOT NULL REFERENCES campgrounds(id) ON DELETE CASCADE,
		camper_type_id INTEGER NOT NULL REFERENCES camper_types(id) ON DELETE CASCADE,
		PRIMARY KEY (campground_id, camper_type_id)
	)`,

	`CREATE TABLE IF NOT EXISTS campground_accommodation_types (
		campground_id TEXT NOT NULL REFERENCES campgrounds(id) ON DELETE CASCADE,
		accommodation_type_id INTEGER NOT NULL REFERENCES accommodation_types(id) ON DELETE CASCADE,
		PRIMARY KEY (campground_id, accommodation_type_id)
	)`,

	`CREATE TABLE IF NOT EXISTS photo_urls (
		id SERIAL PRIMARY KEY,
		campground_id TEXT NOT NULL REFERENCES campgrounds(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS scraper_logs (
		id UUID PRIMARY KEY,
		start_time TIMESTAMPTZ NOT NULL,
		end_time TIMESTAMPTZ,
		status TEXT NOT NULL,
		records_processed INTEGER NOT NULL DEFAULT 0,
		records_added INTEGER NOT NULL DEFAULT 0,
		records_updated INTEGER NOT NULL DEFAULT 0,
		errors JSONB
	)`,

	`CREATE INDEX IF NOT EXISTS idx_campgrounds_administrative_area
		ON campgrounds (administrative_area)`,
	`CREATE INDEX IF NOT EXISTS idx_campgrounds_rating
		ON campgrounds (rating)`,
	`CREATE INDEX IF NOT EXISTS idx_photo_urls_campground_id
		ON photo_urls (campground_id)`,
	`CREATE INDEX IF NOT EXISTS idx_scraper_logs_start_time
		ON scraper_logs (start_time DESC)`,
}

// InitSchema creates all tables and indexes if they do not exist yet.
func (db *DB) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement: %w", err)
		}
	}
	db.logger.Info("Database schema initialized")
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/errors"
)

type campgroundRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCampgroundRepository(db *DB) repository.CampgroundRepository {
	return &campgroundRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const insertCampgroundQuery = `
	INSERT INTO campgrounds (
		id, type, links_self, name, latitude, longitude,
		region_name, administrative_area, nearest_city_name,
		bookable, operator, photo_url, photos_count, rating,
		reviews_count, slug, price_low, price_high,
		availability_updated_at, address
	) VALUES (
		:id, :type, :links_self, :name, :latitude, :longitude,
		:region_name, :administrative_area, :nearest_city_name,
		:bookable, :operator, :photo_url, :photos_count, :rating,
		:reviews_count, :slug, :price_low, :price_high,
		:availability_updated_at, :address
	)`

const updateCampgroundQuery = `
	UPDATE campgrounds SET
		type = :type,
		links_self = :links_self,
		name = :name,
		latitude = :latitude,
		longitude = :longitude,
		region_name = :region_name,
		administrative_area = :administrative_area,
		nearest_city_name = :nearest_city_name,
		bookable = :bookable,
		operator = :operator,
		photo_url = :photo_url,
		photos_count = :photos_count,
		rating = :rating,
		reviews_count = :reviews_count,
		slug = :slug,
		price_low = :price_low,
		price_high = :price_high,
		availability_updated_at = :availability_updated_at,
		address = :address,
		updated_at = NOW()
	WHERE id = :id`

// Upsert writes one campground atomically: scalar fields, both tag
// associations (full replace) and the photo URL list (delete + reinsert,
// order preserved by the serial key).
func (r *campgroundRepository) Upsert(ctx context.Context, camp *domain.Campground) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin upsert tx: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM campgrounds WHERE id = $1)`, camp.ID); err != nil {
		return false, fmt.Errorf("check campground %s: %w", camp.ID, err)
	}

	query := insertCampgroundQuery
	if exists {
		query = updateCampgroundQuery
	}
	if _, err := tx.NamedExecContext(ctx, query, camp); err != nil {
		return false, fmt.Errorf("write campground %s: %w", camp.ID, err)
	}

	if err := r.replaceTags(ctx, tx, camp.ID,
		"camper_types", "campground_camper_types", "camper_type_id",
		camp.CamperTypes); err != nil {
		return false, fmt.Errorf("replace camper types for %s: %w", camp.ID, err)
	}

	if err := r.replaceTags(ctx, tx, camp.ID,
		"accommodation_types", "campground_accommodation_types", "accommodation_type_id",
		camp.AccommodationTypes); err != nil {
		return false, fmt.Errorf("replace accommodation types for %s: %w", camp.ID, err)
	}

	if err := r.replacePhotos(ctx, tx, camp.ID, camp.PhotoURLs); err != nil {
		return false, fmt.Errorf("replace photos for %s: %w", camp.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit upsert for %s: %w", camp.ID, err)
	}

	return !exists, nil
}

// replaceTags detaches every tag of one category from the campground and
// re-attaches the given set. Tag rows are created lazily; the UNIQUE name
// constraint plus ON CONFLICT DO NOTHING makes creation race-free, and
// the rows themselves are never updated or deleted.
func (r *campgroundRepository) replaceTags(
	ctx context.Context,
	tx *sqlx.Tx,
	campgroundID string,
	tagTable, joinTable, joinColumn string,
	names []string,
) error {
	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE campground_id = $1`, joinTable),
		campgroundID); err != nil {
		return fmt.Errorf("detach tags: %w", err)
	}

	names = dedupe(names)
	if len(names) == 0 {
		return nil
	}

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, tagTable),
			name); err != nil {
			return fmt.Errorf("register tag %q: %w", name, err)
		}
	}

	var tagIDs []int64
	if err := tx.SelectContext(ctx, &tagIDs,
		fmt.Sprintf(`SELECT id FROM %s WHERE name = ANY($1) ORDER BY id`, tagTable),
		pq.Array(names)); err != nil {
		return fmt.Errorf("resolve tag ids: %w", err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (campground_id, %s) VALUES ($1, $2)`, joinTable, joinColumn),
			campgroundID, tagID); err != nil {
			return fmt.Errorf("attach tag %d: %w", tagID, err)
		}
	}

	return nil
}

// replacePhotos drops the campground's photo rows and reinserts the new
// list. No incremental diff: upstream sends the complete collection.
func (r *campgroundRepository) replacePhotos(
	ctx context.Context,
	tx *sqlx.Tx,
	campgroundID string,
	urls []string,
) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM photo_urls WHERE campground_id = $1`, campgroundID); err != nil {
		return fmt.Errorf("delete photos: %w", err)
	}

	for _, url := range urls {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO photo_urls (campground_id, url) VALUES ($1, $2)`,
			campgroundID, url); err != nil {
			return fmt.Errorf("insert photo: %w", err)
		}
	}

	return nil
}

func (r *campgroundRepository) GetByID(ctx context.Context, id string) (*domain.Campground, error) {
	var camp domain.Campground
	err := r.db.GetContext(ctx, &camp,
		`SELECT id, type, links_self, name, latitude, longitude,
			region_name, administrative_area, nearest_city_name,
			bookable, operator, photo_url, photos_count, rating,
			reviews_count, slug, price_low, price_high,
			availability_updated_at, address, created_at, updated_at
		FROM campgrounds WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrCampgroundNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get campground", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	camp.CamperTypes = []string{}
	if err := r.db.SelectContext(ctx, &camp.CamperTypes,
		`SELECT ct.name FROM camper_types ct
		JOIN campground_camper_types cct ON cct.camper_type_id = ct.id
		WHERE cct.campground_id = $1
		ORDER BY ct.name`, id); err != nil {
		r.logger.Error("Failed to load camper types", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	camp.AccommodationTypes = []string{}
	if err := r.db.SelectContext(ctx, &camp.AccommodationTypes,
		`SELECT at.name FROM accommodation_types at
		JOIN campground_accommodation_types cat ON cat.accommodation_type_id = at.id
		WHERE cat.campground_id = $1
		ORDER BY at.name`, id); err != nil {
		r.logger.Error("Failed to load accommodation types", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	camp.PhotoURLs = []string{}
	if err := r.db.SelectContext(ctx, &camp.PhotoURLs,
		`SELECT url FROM photo_urls WHERE campground_id = $1 ORDER BY id`, id); err != nil {
		r.logger.Error("Failed to load photo urls", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return &camp, nil
}

func (r *campgroundRepository) List(ctx context.Context, filter domain.CampgroundFilter) ([]*domain.Campground, int, error) {
	where, args := buildListFilter(filter)

	countQuery := `SELECT COUNT(*) FROM campgrounds c` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		r.logger.Error("Failed to count campgrounds", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := fmt.Sprintf(`
		SELECT c.id, c.type, c.links_self, c.name, c.latitude, c.longitude,
			c.region_name, c.administrative_area, c.nearest_city_name,
			c.bookable, c.operator, c.photo_url, c.photos_count, c.rating,
			c.reviews_count, c.slug, c.price_low, c.price_high,
			c.availability_updated_at, c.address, c.created_at, c.updated_at
		FROM campgrounds c%s
		ORDER BY c.name, c.id
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	var camps []*domain.Campground
	if err := r.db.SelectContext(ctx, &camps, query, args...); err != nil {
		r.logger.Error("Failed to list campgrounds", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	for _, camp := range camps {
		camp.CamperTypes = []string{}
		camp.AccommodationTypes = []string{}
		camp.PhotoURLs = []string{}
	}

	return camps, total, nil
}

func buildListFilter(filter domain.CampgroundFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	if filter.State != nil {
		args = append(args, *filter.State)
		clauses = append(clauses, fmt.Sprintf("c.administrative_area = $%d", len(args)))
	}
	if filter.MinRating != nil {
		args = append(args, *filter.MinRating)
		clauses = append(clauses, fmt.Sprintf("c.rating >= $%d", len(args)))
	}
	if filter.Bookable != nil {
		args = append(args, *filter.Bookable)
		clauses = append(clauses, fmt.Sprintf("c.bookable = $%d", len(args)))
	}
	if filter.CamperType != nil {
		args = append(args, *filter.CamperType)
		clauses = append(clauses, fmt.Sprintf(
			`EXISTS (
				SELECT 1 FROM campground_camper_types cct
				JOIN camper_types ct ON ct.id = cct.camper_type_id
				WHERE cct.campground_id = c.id AND ct.name = $%d
			)`, len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func dedupe(names []string) []string {
	if len(names) == 0 {
		return names
	}
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

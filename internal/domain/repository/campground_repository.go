package repository

import (
	"context"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
)

// CampgroundRepository persists canonical campground records.
//
// Records are never deleted: a campground that upstream stops returning
// simply goes stale. This is deliberate (append-only history); revisit if
// tombstoning is ever needed.
type CampgroundRepository interface {
	// Upsert writes one campground in a single transaction: scalar
	// fields inserted or fully overwritten, both tag sets detached and
	// re-attached, photo URL rows deleted and reinserted in order.
	// Returns true when the id was previously unseen.
	Upsert(ctx context.Context, camp *domain.Campground) (created bool, err error)

	// GetByID returns one campground with tag names and photo URLs
	// loaded, or ErrCampgroundNotFound.
	GetByID(ctx context.Context, id string) (*domain.Campground, error)

	// List returns campgrounds matching the filter plus the unfiltered
	// total for pagination metadata.
	List(ctx context.Context, filter domain.CampgroundFilter) ([]*domain.Campground, int, error)
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/pkg/validator"
)

// Normalizer maps raw upstream records to canonical campgrounds. Pure
// except for one optional side effect: reverse geocoding when enrichment
// is enabled and the record has coordinates. Geocoding failures never
// fail normalization - the address just stays absent.
type Normalizer struct {
	geocoder repository.GeocoderRepository
	enabled  bool
	logger   *zap.Logger
}

func NewNormalizer(geocoder repository.GeocoderRepository, enabled bool, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		geocoder: geocoder,
		enabled:  enabled && geocoder != nil,
		logger:   logger,
	}
}

// Normalize converts one raw record. Returns an error for malformed
// records (missing id or name, out-of-range values); callers skip those
// and keep the batch going.
func (n *Normalizer) Normalize(ctx context.Context, raw domain.RawCampground) (*domain.Campground, error) {
	attrs := raw.Attributes

	camp := &domain.Campground{
		ID:                 raw.ID,
		Type:               raw.Type,
		LinksSelf:          raw.Links.Self,
		Name:               attrs.Name,
		RegionName:         attrs.RegionName,
		AdministrativeArea: attrs.AdministrativeArea,
		NearestCityName:    attrs.NearestCityName,
		Operator:           attrs.Operator,
		PhotoURL:           attrs.PhotoURL,
		Rating:             attrs.Rating,
		Slug:               attrs.Slug,
		CamperTypes:        emptyIfNil(attrs.CamperTypes),
		AccommodationTypes: emptyIfNil(attrs.AccommodationTypeNames),
		PhotoURLs:          emptyIfNil(attrs.PhotoURLs),
	}

	// Coordinates come as a pair or not at all.
	if attrs.Latitude != nil && attrs.Longitude != nil {
		camp.Latitude = attrs.Latitude
		camp.Longitude = attrs.Longitude
	}

	// Price range must be complete and ordered to be kept.
	if attrs.PriceLow != nil && attrs.PriceHigh != nil && *attrs.PriceLow <= *attrs.PriceHigh {
		camp.PriceLow = attrs.PriceLow
		camp.PriceHigh = attrs.PriceHigh
	}

	if attrs.Bookable != nil {
		camp.Bookable = *attrs.Bookable
	}
	if attrs.PhotosCount != nil && *attrs.PhotosCount > 0 {
		camp.PhotosCount = *attrs.PhotosCount
	}
	if attrs.ReviewsCount != nil && *attrs.ReviewsCount > 0 {
		camp.ReviewsCount = *attrs.ReviewsCount
	}

	if attrs.AvailabilityUpdatedAt != nil {
		if ts, err := time.Parse(time.RFC3339, *attrs.AvailabilityUpdatedAt); err == nil {
			camp.AvailabilityUpdatedAt = &ts
		} else {
			n.logger.Debug("Unparseable availability timestamp",
				zap.String("id", raw.ID),
				zap.String("value", *attrs.AvailabilityUpdatedAt))
		}
	}

	if err := validator.Validate(camp); err != nil {
		return nil, fmt.Errorf("invalid campground record %q: %w", raw.ID, err)
	}

	n.enrich(ctx, camp)

	return camp, nil
}

// enrich resolves the street address. Best-effort only.
func (n *Normalizer) enrich(ctx context.Context, camp *domain.Campground) {
	if !n.enabled || !camp.HasCoordinates() {
		return
	}

	address, err := n.geocoder.Reverse(ctx, *camp.Latitude, *camp.Longitude)
	if err != nil {
		n.logger.Warn("Reverse geocoding failed",
			zap.String("id", camp.ID),
			zap.Error(err))
		return
	}
	if address != "" {
		camp.Address = &address
	}
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

package domain

import "time"

// Campground is the canonical record persisted for one upstream location.
// Identity is the opaque upstream id, stable across runs. On every
// reconciliation all scalar fields are overwritten, both tag sets are
// replaced wholesale, and the photo list is reinserted in upstream order.
type Campground struct {
	ID                    string     `json:"id" db:"id" validate:"required"`
	Type                  string     `json:"type" db:"type"`
	LinksSelf             string     `json:"links_self" db:"links_self"`
	Name                  string     `json:"name" db:"name" validate:"required"`
	Latitude              *float64   `json:"latitude,omitempty" db:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude             *float64   `json:"longitude,omitempty" db:"longitude" validate:"omitempty,gte=-180,lte=180"`
	RegionName            *string    `json:"region_name,omitempty" db:"region_name"`
	AdministrativeArea    *string    `json:"administrative_area,omitempty" db:"administrative_area"`
	NearestCityName       *string    `json:"nearest_city_name,omitempty" db:"nearest_city_name"`
	Bookable              bool       `json:"bookable" db:"bookable"`
	Operator              *string    `json:"operator,omitempty" db:"operator"`
	PhotoURL              *string    `json:"photo_url,omitempty" db:"photo_url"`
	PhotosCount           int        `json:"photos_count" db:"photos_count" validate:"gte=0"`
	Rating                *float64   `json:"rating,omitempty" db:"rating" validate:"omitempty,gte=0,lte=5"`
	ReviewsCount          int        `json:"reviews_count" db:"reviews_count" validate:"gte=0"`
	Slug                  *string    `json:"slug,omitempty" db:"slug"`
	PriceLow              *float64   `json:"price_low,omitempty" db:"price_low"`
	PriceHigh             *float64   `json:"price_high,omitempty" db:"price_high"`
	AvailabilityUpdatedAt *time.Time `json:"availability_updated_at,omitempty" db:"availability_updated_at"`
	Address               *string    `json:"address,omitempty" db:"address"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`

	// Tag names, deduplicated, unordered. Stored via many-to-many
	// association with lazily created tag rows.
	CamperTypes        []string `json:"camper_types" db:"-"`
	AccommodationTypes []string `json:"accommodation_types" db:"-"`

	// Photo URLs in upstream order; duplicates allowed.
	PhotoURLs []string `json:"photo_urls" db:"-"`
}

// HasCoordinates reports whether both coordinates are present. The pair
// is either complete or absent; a lone value is dropped at normalization.
func (c *Campground) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// CampgroundFilter narrows read-side listing queries.
type CampgroundFilter struct {
	Limit      int
	Offset     int
	State      *string
	MinRating  *float64
	Bookable   *bool
	CamperType *string
}

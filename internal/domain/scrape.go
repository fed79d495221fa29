package domain

import (
	"encoding/json"
	"time"
)

// RawCampground is one record of the upstream JSON:API search response,
// carried unparsed through the partitioning phase. Attribute names keep
// the upstream kebab-case spelling.
type RawCampground struct {
	ID         string        `json:"id"`
	Type       string        `json:"type"`
	Links      RawLinks      `json:"links"`
	Attributes RawAttributes `json:"attributes"`
}

type RawLinks struct {
	Self string `json:"self"`
}

type RawAttributes struct {
	Name                   string   `json:"name"`
	Latitude               *float64 `json:"latitude"`
	Longitude              *float64 `json:"longitude"`
	RegionName             *string  `json:"region-name"`
	AdministrativeArea     *string  `json:"administrative-area"`
	NearestCityName        *string  `json:"nearest-city-name"`
	AccommodationTypeNames []string `json:"accommodation-type-names"`
	Bookable               *bool    `json:"bookable"`
	CamperTypes            []string `json:"camper-types"`
	Operator               *string  `json:"operator"`
	PhotoURL               *string  `json:"photo-url"`
	PhotoURLs              []string `json:"photo-urls"`
	PhotosCount            *int     `json:"photos-count"`
	Rating                 *float64 `json:"rating"`
	ReviewsCount           *int     `json:"reviews-count"`
	Slug                   *string  `json:"slug"`
	PriceLow               *float64 `json:"price-low"`
	PriceHigh              *float64 `json:"price-high"`
	AvailabilityUpdatedAt  *string  `json:"availability-updated-at"`
}

// SearchPage is the interpreted result of one spatial query: the total
// match count the API reports for the region and the page of records it
// returned. RecordCount above the configured capacity is the sole
// subdivision trigger.
type SearchPage struct {
	RecordCount int
	Items       []RawCampground
}

// ScrapeStatus is the lifecycle state of one scrape run.
type ScrapeStatus string

const (
	ScrapeStatusRunning ScrapeStatus = "running"
	ScrapeStatusSuccess ScrapeStatus = "success"
	ScrapeStatusFailed  ScrapeStatus = "failed"
)

// ScrapeLog is the audit record of one orchestrator execution. Created in
// running state before any campground is written, finalized in place on
// completion or failure, never deleted.
type ScrapeLog struct {
	ID               string          `json:"id" db:"id"`
	StartTime        time.Time       `json:"start_time" db:"start_time"`
	EndTime          *time.Time      `json:"end_time,omitempty" db:"end_time"`
	Status           ScrapeStatus    `json:"status" db:"status"`
	RecordsProcessed int             `json:"records_processed" db:"records_processed"`
	RecordsAdded     int             `json:"records_added" db:"records_added"`
	RecordsUpdated   int             `json:"records_updated" db:"records_updated"`
	Errors           json.RawMessage `json:"errors,omitempty" db:"errors"`
}

// ScrapeSummary is what a completed run reports back to its caller.
type ScrapeSummary struct {
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
	Added     int `json:"added"`
	Updated   int `json:"updated"`
}

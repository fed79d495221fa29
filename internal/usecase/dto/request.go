package dto

// ListCampgroundsRequest narrows the read-side listing. Parsed from
// query parameters by the handler.
type ListCampgroundsRequest struct {
	Limit      int      `query:"limit" validate:"gte=0,lte=1000"`
	Offset     int      `query:"offset" validate:"gte=0"`
	State      string   `query:"state"`
	MinRating  *float64 `query:"min_rating" validate:"omitempty,gte=0,lte=5"`
	Bookable   *bool    `query:"bookable"`
	CamperType string   `query:"camper_type"`
}

// ListScrapeLogsRequest bounds the scrape log listing.
type ListScrapeLogsRequest struct {
	Limit int `query:"limit" validate:"gte=0,lte=500"`
}

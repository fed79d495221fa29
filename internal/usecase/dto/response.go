package dto

import "github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"

// ListCampgroundsResponse carries one page plus the unfiltered total.
type ListCampgroundsResponse struct {
	Campgrounds []*domain.Campground `json:"campgrounds"`
	Total       int                  `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// ListScrapeLogsResponse lists audit rows, newest first.
type ListScrapeLogsResponse struct {
	Logs []*domain.ScrapeLog `json:"logs"`
}

// ScrapeTriggerResponse acknowledges an asynchronous run request.
type ScrapeTriggerResponse struct {
	Status string `json:"status"`
}

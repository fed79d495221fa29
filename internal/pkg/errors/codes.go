package errors

import "net/http"

var (
	ErrCampgroundNotFound = New(
		"CAMPGROUND_NOT_FOUND",
		"Campground not found",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrScrapeInProgress = New(
		"SCRAPE_IN_PROGRESS",
		"A scrape run is already in progress",
		http.StatusConflict,
	)

	ErrUpstreamError = New(
		"UPSTREAM_ERROR",
		"Upstream search API request failed",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)

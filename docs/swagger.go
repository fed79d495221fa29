// Package docs Dyrt Campground Scraper API.
//
// Service that scrapes US campgrounds from The Dyrt search API with an
// adaptive quadtree partitioner and serves the reconciled data set.
//
// Capabilities:
// - Adaptive bounding-box partitioning of the contiguous United States
// - Idempotent upsert of campgrounds with tags and photos
// - Scrape run audit log
// - Read API with filtering and pagination
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

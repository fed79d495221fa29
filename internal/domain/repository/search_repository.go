package repository

import (
	"context"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
)

// SearchRepository queries the upstream campground search API for one
// region. Implementations retry transient failures (network, timeout,
// 5xx) with exponential backoff and surface terminal failures unchanged;
// exhausting the retry budget surfaces the last transient error.
type SearchRepository interface {
	Search(ctx context.Context, region domain.Region) (*domain.SearchPage, error)
}

package thedyrt

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
)

// searchEnvelope is the JSON:API response of the search-results endpoint.
type searchEnvelope struct {
	Data []domain.RawCampground `json:"data"`
	Meta searchMeta             `json:"meta"`
}

type searchMeta struct {
	RecordCount int `json:"record-count"`
}

type client struct {
	httpClient *resty.Client
	searchPath string
	pageSize   int
	logger     *zap.Logger
}

// NewClient builds the search client for The Dyrt locations API.
//
// Transient failures (connection errors, timeouts, 429 and 5xx responses)
// are retried with exponentially increasing backoff up to the configured
// attempt budget; 4xx responses and caller cancellation are terminal and
// returned immediately.
func NewClient(cfg *config.DyrtConfig, scraperCfg *config.ScraperConfig, logger *zap.Logger) repository.SearchRepository {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(scraperCfg.MaxRetries).
		SetRetryWaitTime(scraperCfg.RetryBackoff).
		SetRetryMaxWaitTime(scraperCfg.RetryBackoff * 16).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return false
			}
			if err != nil {
				return true
			}
			return r.StatusCode() >= 500 || r.StatusCode() == 429
		}).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/vnd.api+json").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetHeader("Referer", cfg.BaseURL+"/search").
		SetHeader("Origin", cfg.BaseURL)

	return &client{
		httpClient: httpClient,
		searchPath: cfg.SearchPath,
		pageSize:   scraperCfg.PageSize,
		logger:     logger,
	}
}

// Search runs one spatial query for the region and interprets the
// response as (record count, page of records). The bbox encoding and the
// fixed filter defaults are what the upstream map UI sends.
func (c *client) Search(ctx context.Context, region domain.Region) (*domain.SearchPage, error) {
	bbox := fmt.Sprintf("%f,%f,%f,%f", region.West, region.South, region.East, region.North)

	var envelope searchEnvelope
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"filter[search][bbox]":               bbox,
			"filter[search][drive_time]":         "any",
			"filter[search][air_quality]":        "any",
			"filter[search][electric_amperage]":  "any",
			"filter[search][max_vehicle_length]": "any",
			"filter[search][price]":              "any",
			"filter[search][rating]":             "any",
			"sort":                               "recommended",
			"page[size]":                         strconv.Itoa(c.pageSize),
			"page[number]":                       "1",
		}).
		SetResult(&envelope).
		Get(c.searchPath)

	if err != nil {
		c.logger.Error("Search request failed",
			zap.String("bbox", bbox),
			zap.Error(err))
		return nil, fmt.Errorf("search request: %w", err)
	}

	if resp.IsError() {
		c.logger.Error("Search API returned error status",
			zap.String("bbox", bbox),
			zap.Int("status_code", resp.StatusCode()),
			zap.ByteString("body", truncate(resp.Body(), 512)))
		return nil, fmt.Errorf("search API status %d", resp.StatusCode())
	}

	c.logger.Debug("Search page fetched",
		zap.String("bbox", bbox),
		zap.Int("record_count", envelope.Meta.RecordCount),
		zap.Int("items", len(envelope.Data)))

	return &domain.SearchPage{
		RecordCount: envelope.Meta.RecordCount,
		Items:       envelope.Data,
	}, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

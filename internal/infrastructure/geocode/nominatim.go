package geocode

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain/repository"
)

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

type nominatimClient struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewNominatimClient builds a reverse geocoder backed by Nominatim.
// No retries: enrichment is best-effort and the service rate-limits
// aggressively, so a failed lookup is simply an absent address.
func NewNominatimClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "application/json")

	return &nominatimClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Reverse resolves a coordinate pair to a display address. Returns an
// empty string when the location resolves to nothing.
func (c *nominatimClient) Reverse(ctx context.Context, lat, lon float64) (string, error) {
	var result reverseResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":    fmt.Sprintf("%f", lat),
			"lon":    fmt.Sprintf("%f", lon),
			"format": "jsonv2",
		}).
		SetResult(&result).
		Get("/reverse")

	if err != nil {
		return "", fmt.Errorf("reverse geocode request: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("reverse geocode status %d", resp.StatusCode())
	}

	return result.DisplayName, nil
}

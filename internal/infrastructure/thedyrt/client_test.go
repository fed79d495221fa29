package thedyrt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
	"github.com/aysenurarslann/dyrt-campground-scraper/internal/domain"
)

func testConfigs(baseURL string, retries int) (*config.DyrtConfig, *config.ScraperConfig) {
	return &config.DyrtConfig{
			BaseURL:        baseURL,
			SearchPath:     "/api/v6/locations/search-results",
			UserAgent:      "test-agent",
			RequestTimeout: 5 * time.Second,
		}, &config.ScraperConfig{
			PageSize:     500,
			MaxRetries:   retries,
			RetryBackoff: 10 * time.Millisecond,
		}
}

func TestClient_Search(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			// bbox is west,south,east,north
			assert.Equal(t, "-114.000000,36.000000,-110.000000,40.000000", q.Get("filter[search][bbox]"))
			assert.Equal(t, "500", q.Get("page[size]"))
			assert.Equal(t, "1", q.Get("page[number]"))
			assert.Equal(t, "recommended", q.Get("sort"))
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
			assert.Equal(t, "application/vnd.api+json", r.Header.Get("Accept"))

			w.Header().Set("Content-Type", "application/vnd.api+json")
			w.Write([]byte(`{
				"data": [
					{
						"id": "camp-1",
						"type": "campground",
						"links": {"self": "https://thedyrt.com/camping/camp-1"},
						"attributes": {
							"name": "Pine Hollow",
							"latitude": 39.5,
							"longitude": -105.2,
							"region-name": "Colorado",
							"camper-types": ["rv", "tent"],
							"accommodation-type-names": ["Tent Sites"],
							"photo-urls": ["https://img/1.jpg"],
							"bookable": true,
							"rating": 4.5,
							"reviews-count": 10
						}
					}
				],
				"meta": {"record-count": 1234}
			}`))
		}))
		defer server.Close()

		dyrtCfg, scraperCfg := testConfigs(server.URL, 0)
		client := NewClient(dyrtCfg, scraperCfg, logger)

		page, err := client.Search(context.Background(), domain.Region{
			North: 40, South: 36, East: -110, West: -114,
		})

		require.NoError(t, err)
		assert.Equal(t, 1234, page.RecordCount)
		require.Len(t, page.Items, 1)

		item := page.Items[0]
		assert.Equal(t, "camp-1", item.ID)
		assert.Equal(t, "Pine Hollow", item.Attributes.Name)
		require.NotNil(t, item.Attributes.Latitude)
		assert.Equal(t, 39.5, *item.Attributes.Latitude)
		assert.Equal(t, []string{"rv", "tent"}, item.Attributes.CamperTypes)
		require.NotNil(t, item.Attributes.Rating)
		assert.Equal(t, 4.5, *item.Attributes.Rating)
	})

	t.Run("retries transient server errors", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.Write([]byte(`{"data": [], "meta": {"record-count": 0}}`))
		}))
		defer server.Close()

		dyrtCfg, scraperCfg := testConfigs(server.URL, 3)
		client := NewClient(dyrtCfg, scraperCfg, logger)

		page, err := client.Search(context.Background(), domain.Region{
			North: 40, South: 36, East: -110, West: -114,
		})

		require.NoError(t, err)
		assert.Equal(t, 0, page.RecordCount)
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("client errors are terminal", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"errors":[{"title":"Forbidden"}]}`))
		}))
		defer server.Close()

		dyrtCfg, scraperCfg := testConfigs(server.URL, 3)
		client := NewClient(dyrtCfg, scraperCfg, logger)

		page, err := client.Search(context.Background(), domain.Region{
			North: 40, South: 36, East: -110, West: -114,
		})

		assert.Error(t, err)
		assert.Nil(t, page)
		assert.Contains(t, err.Error(), "403")
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("caller cancellation is terminal", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		dyrtCfg, scraperCfg := testConfigs(server.URL, 3)
		client := NewClient(dyrtCfg, scraperCfg, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		page, err := client.Search(ctx, domain.Region{
			North: 40, South: 36, East: -110, West: -114,
		})

		require.Error(t, err)
		assert.Nil(t, page)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		// No retry attempts after the deadline hits.
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("exhausted retries fail", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		dyrtCfg, scraperCfg := testConfigs(server.URL, 2)
		client := NewClient(dyrtCfg, scraperCfg, logger)

		page, err := client.Search(context.Background(), domain.Region{
			North: 40, South: 36, East: -110, West: -114,
		})

		assert.Error(t, err)
		assert.Nil(t, page)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, []byte("abc"), truncate([]byte("abc"), 10))
	assert.Equal(t, []byte("ab"), truncate([]byte("abcdef"), 2))
}

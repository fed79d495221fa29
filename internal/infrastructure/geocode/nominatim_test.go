package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aysenurarslann/dyrt-campground-scraper/internal/config"
)

func testClient(baseURL string) *nominatimClient {
	cfg := &config.GeocoderConfig{
		BaseURL:        baseURL,
		UserAgent:      "test-agent",
		RequestTimeout: 5 * time.Second,
	}
	return NewNominatimClient(cfg, zap.NewNop()).(*nominatimClient)
}

func TestNominatimClient_Reverse(t *testing.T) {
	t.Run("resolves display name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "39.500000", r.URL.Query().Get("lat"))
			assert.Equal(t, "-105.200000", r.URL.Query().Get("lon"))
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"display_name": "123 Forest Rd, Pine, Colorado, United States"}`))
		}))
		defer server.Close()

		address, err := testClient(server.URL).Reverse(context.Background(), 39.5, -105.2)

		require.NoError(t, err)
		assert.Equal(t, "123 Forest Rd, Pine, Colorado, United States", address)
	})

	t.Run("nothing at location", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"error": "Unable to geocode"}`))
		}))
		defer server.Close()

		address, err := testClient(server.URL).Reverse(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Empty(t, address)
	})

	t.Run("rate limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := testClient(server.URL).Reverse(context.Background(), 39.5, -105.2)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

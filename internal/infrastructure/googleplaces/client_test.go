package googleplaces

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/config"
	"github.com/store-search-service/internal/domain"
)

func testStore() domain.Store {
	return domain.Store{
		ID:       "s-1",
		Name:     "Fresh Market",
		Location: domain.Coordinate{Latitude: 36.165, Longitude: -86.78},
		Address:  domain.Address{Line1: "100 Broadway", City: "Nashville", State: "TN", County: "Davidson", Zip5: 37203},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.ImagesConfig{
		GooglePlacesAPIKey:  "test_key",
		GooglePlacesBaseURL: server.URL + "/",
		RequestTimeout:      time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_GetImagesFor(t *testing.T) {
	t.Run("photos of the first place with photos", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/textsearch/json", r.URL.Path)
			assert.Equal(t, "Fresh Market 100 Broadway Nashville TN", r.URL.Query().Get("query"))
			assert.Equal(t, "36.165000,-86.780000", r.URL.Query().Get("location"))
			assert.Equal(t, "test_key", r.URL.Query().Get("key"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"OK","results":[
				{"place_id":"a","name":"No Photos"},
				{"place_id":"b","name":"Fresh Market","photos":[{"photo_reference":"ref1"},{"photo_reference":"ref2"}]},
				{"place_id":"c","name":"Other","photos":[{"photo_reference":"ref3"}]}
			]}`))
		})

		images, err := c.GetImagesFor(context.Background(), testStore())
		require.NoError(t, err)
		require.Len(t, images, 2)
		assert.Equal(t, c.baseURL+"/photo?key=test_key&maxwidth=800&photo_reference=ref1", images[0])
		assert.Contains(t, images[1], "photo_reference=ref2")
	})

	t.Run("zero results", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
		})

		images, err := c.GetImagesFor(context.Background(), testStore())
		require.NoError(t, err)
		assert.Empty(t, images)
	})

	t.Run("api status error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
		})

		_, err := c.GetImagesFor(context.Background(), testStore())
		assert.ErrorContains(t, err, "REQUEST_DENIED")
	})

	t.Run("http error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.GetImagesFor(context.Background(), testStore())
		assert.ErrorContains(t, err, "status 502")
	})
}

func TestClient_Name(t *testing.T) {
	c := NewClient(&config.ImagesConfig{}, zap.NewNop())
	assert.Equal(t, "google_places", c.Name())
}

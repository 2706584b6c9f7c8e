package http_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/config"
	httpDelivery "github.com/store-search-service/internal/delivery/http"
	"github.com/store-search-service/internal/delivery/http/handler"
	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/repository/memory"
	"github.com/store-search-service/internal/repository/repotest"
	"github.com/store-search-service/internal/usecase"
)

type fakeProvider struct {
	images map[string][]string
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) GetImagesFor(_ context.Context, s domain.Store) ([]string, error) {
	return p.images[s.ID], nil
}

type fakeCheck struct{ err error }

func (c fakeCheck) Health(context.Context) error { return c.err }

type storeList struct {
	Data []domain.Store `json:"data"`
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newServer(t *testing.T, checks map[string]httpDelivery.HealthChecker) *httpDelivery.Server {
	t.Helper()

	fixture := repotest.Fixture()
	repo := memory.NewStoreRepository(zap.NewNop(), fixture...)
	searchUC := usecase.NewSearchUseCase(repo, nil, zap.NewNop(), 0, 2)
	imageUC := usecase.NewImageUseCase(zap.NewNop(), &fakeProvider{images: map[string][]string{
		fixture[0].ID: {"https://img.example.com/downtown.jpg"},
	}})

	h := handler.NewStoreHandler(searchUC, imageUC, zap.NewNop())
	return httpDelivery.NewServer(&config.Config{}, zap.NewNop(), h, checks)
}

func get(t *testing.T, s *httpDelivery.Server, target string, header map[string]string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(stdhttp.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := s.App().Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func ids(stores []domain.Store) []string {
	out := make([]string, 0, len(stores))
	for _, s := range stores {
		out = append(out, s.ID)
	}
	return out
}

func TestSearch(t *testing.T) {
	s := newServer(t, nil)
	fixture := repotest.Fixture()

	t.Run("zip code", func(t *testing.T) {
		status, body := get(t, s, "/api/v1/stores/search?zipCode=37203", nil)
		require.Equal(t, stdhttp.StatusOK, status)

		var out storeList
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, []string{fixture[0].ID, fixture[2].ID, fixture[3].ID}, ids(out.Data))
		assert.Equal(t, 3, out.Meta.Total)
	})

	t.Run("center radius and term", func(t *testing.T) {
		q := url.Values{}
		q.Set("latitude", "36.1627")
		q.Set("longitude", "-86.7816")
		q.Set("radius", "1000")
		q.Set("searchTerm", "Fresh Market")
		status, body := get(t, s, "/api/v1/stores/search?"+q.Encode(), nil)
		require.Equal(t, stdhttp.StatusOK, status)

		var out storeList
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, []string{fixture[0].ID}, ids(out.Data))
	})

	t.Run("empty result", func(t *testing.T) {
		status, body := get(t, s, "/api/v1/stores/search?zipCode=99999", nil)
		require.Equal(t, stdhttp.StatusOK, status)
		assert.JSONEq(t, `[]`, string(mustField(t, body, "data")))
	})

	t.Run("images on request", func(t *testing.T) {
		status, body := get(t, s, "/api/v1/stores/search?zipCode=37203&limit=1", map[string]string{
			handler.HeaderIncludeImages: "true",
		})
		require.Equal(t, stdhttp.StatusOK, status)

		var out storeList
		require.NoError(t, json.Unmarshal(body, &out))
		require.Len(t, out.Data, 1)
		assert.Equal(t, "https://img.example.com/downtown.jpg", out.Data[0].MainImageURL)
	})

	rejects := []struct {
		name   string
		query  string
		reason string
	}{
		{"no criteria", "", "must contain at least one search criterion"},
		{"unknown key", "?zipCode=37203&page=2", "Unrecognized Query Parameter: page"},
		{"latitude alone", "?latitude=36.1", "latitude and longitude must be provided together"},
		{"radius too large", "?latitude=36.1&longitude=-86.7&radius=100001", "radius must be a non-negative decimal no greater than 100000"},
		{"short term", "?searchTerm=a", "searchTerm must be at least 2 characters"},
		{"bad zip", "?zipCode=1234", "zipCode must be a 5-digit ZIP or ZIP+4 code"},
	}
	for _, tc := range rejects {
		t.Run(tc.name, func(t *testing.T) {
			status, body := get(t, s, "/api/v1/stores/search"+tc.query, nil)
			require.Equal(t, stdhttp.StatusBadRequest, status)

			var out errorBody
			require.NoError(t, json.Unmarshal(body, &out))
			assert.Equal(t, "BAD_ARGUMENT", out.Error.Code)
			assert.Equal(t, tc.reason, out.Error.Message)
		})
	}
}

func mustField(t *testing.T, body []byte, field string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &m))
	return m[field]
}

func TestListAndGet(t *testing.T) {
	s := newServer(t, nil)
	fixture := repotest.Fixture()

	status, body := get(t, s, "/api/v1/stores?limit=2", nil)
	require.Equal(t, stdhttp.StatusOK, status)
	var list storeList
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, []string{fixture[0].ID, fixture[1].ID}, ids(list.Data))

	status, _ = get(t, s, "/api/v1/stores?limit=-1", nil)
	assert.Equal(t, stdhttp.StatusBadRequest, status)

	status, body = get(t, s, "/api/v1/stores/"+fixture[2].ID, nil)
	require.Equal(t, stdhttp.StatusOK, status)
	var one struct {
		Data domain.Store `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &one))
	assert.Equal(t, fixture[2], one.Data)

	status, body = get(t, s, "/api/v1/stores/missing", nil)
	require.Equal(t, stdhttp.StatusNotFound, status)
	var out errorBody
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "DOES_NOT_EXIST", out.Error.Code)
}

func TestGetImages(t *testing.T) {
	s := newServer(t, nil)
	fixture := repotest.Fixture()

	status, body := get(t, s, "/api/v1/stores/"+fixture[0].ID+"/images", nil)
	require.Equal(t, stdhttp.StatusOK, status)
	assert.JSONEq(t, `["https://img.example.com/downtown.jpg"]`, string(mustField(t, body, "data")))

	status, _ = get(t, s, "/api/v1/stores/"+fixture[1].ID+"/images", nil)
	assert.Equal(t, stdhttp.StatusNotFound, status)
}

func TestHealth(t *testing.T) {
	status, _ := get(t, newServer(t, map[string]httpDelivery.HealthChecker{"redis": fakeCheck{}}), "/api/v1/health", nil)
	assert.Equal(t, stdhttp.StatusOK, status)

	status, body := get(t, newServer(t, map[string]httpDelivery.HealthChecker{
		"postgres": fakeCheck{err: stderrors.New("down")},
	}), "/api/v1/health", nil)
	assert.Equal(t, stdhttp.StatusServiceUnavailable, status)
	assert.JSONEq(t, `{"postgres":"unavailable"}`, string(mustField(t, body, "dependencies")))
}

func TestUnknownRoute(t *testing.T) {
	status, body := get(t, newServer(t, nil), "/api/v2/nothing", nil)
	assert.Equal(t, stdhttp.StatusNotFound, status)

	var out errorBody
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "DOES_NOT_EXIST", out.Error.Code)
}

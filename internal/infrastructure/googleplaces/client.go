package googleplaces

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/store-search-service/internal/config"
	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
)

const (
	providerName  = "google_places"
	photoMaxWidth = 800
	// locationBias - радиус (м), в котором ищем место вокруг координат магазина
	locationBias = 200
)

type textSearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message,omitempty"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID string  `json:"place_id"`
	Name    string  `json:"name"`
	Photos  []photo `json:"photos"`
}

type photo struct {
	PhotoReference string `json:"photo_reference"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает клиент Google Places, отдающий ссылки на фото мест
func NewClient(cfg *config.ImagesConfig, logger *zap.Logger) repository.ImageProvider {
	return &client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.GooglePlacesBaseURL, "/"),
		apiKey:     cfg.GooglePlacesAPIKey,
		logger:     logger,
	}
}

func (c *client) Name() string {
	return providerName
}

// GetImagesFor ищет место по названию и адресу рядом с координатами магазина
// и возвращает ссылки на его фотографии
func (c *client) GetImagesFor(ctx context.Context, store domain.Store) ([]string, error) {
	params := url.Values{}
	params.Set("query", fmt.Sprintf("%s %s %s %s", store.Name, store.Address.Line1, store.Address.City, store.Address.State))
	params.Set("location", fmt.Sprintf("%.6f,%.6f", store.Location.Latitude, store.Location.Longitude))
	params.Set("radius", fmt.Sprintf("%d", locationBias))
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + "/textsearch/json?" + params.Encode()

	c.logger.Debug("Calling Google Places text search",
		zap.String("store_id", store.ID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("google places API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var searchResp textSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	switch searchResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []string{}, nil
	default:
		return nil, fmt.Errorf("google places API returned status %s: %s", searchResp.Status, searchResp.ErrorMessage)
	}

	// Берем фото первого найденного места: выдача отсортирована по релевантности
	images := make([]string, 0)
	for _, place := range searchResp.Results {
		if len(place.Photos) == 0 {
			continue
		}
		for _, p := range place.Photos {
			images = append(images, c.photoURL(p.PhotoReference))
		}
		break
	}

	c.logger.Debug("Google Places images found",
		zap.String("store_id", store.ID),
		zap.Int("count", len(images)))
	return images, nil
}

func (c *client) photoURL(reference string) string {
	params := url.Values{}
	params.Set("maxwidth", fmt.Sprintf("%d", photoMaxWidth))
	params.Set("photo_reference", reference)
	params.Set("key", c.apiKey)
	return c.baseURL + "/photo?" + params.Encode()
}

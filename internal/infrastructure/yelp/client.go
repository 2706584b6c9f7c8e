package yelp

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
	providerName = "yelp"
	// searchRadius - радиус поиска бизнеса вокруг координат магазина (м)
	searchRadius = 200
	searchLimit  = 3
)

type businessSearchResponse struct {
	Businesses []business `json:"businesses"`
}

type business struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient создает клиент Yelp Fusion
func NewClient(cfg *config.ImagesConfig, logger *zap.Logger) repository.ImageProvider {
	return &client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    strings.TrimRight(cfg.YelpBaseURL, "/"),
		apiKey:     cfg.YelpAPIKey,
		logger:     logger,
	}
}

func (c *client) Name() string {
	return providerName
}

// GetImagesFor ищет бизнес по названию магазина рядом с его координатами.
// Берутся только бизнесы с точно совпадающим названием.
func (c *client) GetImagesFor(ctx context.Context, store domain.Store) ([]string, error) {
	params := url.Values{}
	params.Set("term", store.Name)
	params.Set("latitude", fmt.Sprintf("%.6f", store.Location.Latitude))
	params.Set("longitude", fmt.Sprintf("%.6f", store.Location.Longitude))
	params.Set("radius", fmt.Sprintf("%d", searchRadius))
	params.Set("limit", fmt.Sprintf("%d", searchLimit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/businesses/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("yelp API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var searchResp businessSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	images := make([]string, 0, len(searchResp.Businesses))
	for _, b := range searchResp.Businesses {
		if b.ImageURL == "" || !strings.EqualFold(b.Name, store.Name) {
			continue
		}
		images = append(images, b.ImageURL)
	}

	c.logger.Debug("Yelp images found",
		zap.String("store_id", store.ID),
		zap.Int("count", len(images)))
	return images, nil
}

package repository

import (
	"context"

	"github.com/store-search-service/internal/domain"
)

// ImageProvider - внешний источник изображений магазинов (Google Places, Yelp)
type ImageProvider interface {
	// Name возвращает имя провайдера для логов
	Name() string

	// GetImagesFor возвращает ноль или более URL изображений магазина
	GetImagesFor(ctx context.Context, store domain.Store) ([]string, error)
}

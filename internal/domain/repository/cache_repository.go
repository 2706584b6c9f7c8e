package repository

import (
	"context"
	"time"

	"github.com/store-search-service/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу; (nil, nil) при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetStores получает закешированный результат поиска
	GetStores(ctx context.Context, key string) ([]domain.Store, bool, error)

	// SetStores сохраняет результат поиска
	SetStores(ctx context.Context, key string, stores []domain.Store, ttl time.Duration) error
}

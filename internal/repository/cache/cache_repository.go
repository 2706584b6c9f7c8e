package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetStores получает результат поиска; ok=false при промахе.
// Пустой результат тоже кешируется и отличается от промаха.
func (r *cacheRepository) GetStores(ctx context.Context, key string) ([]domain.Store, bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if data == nil {
		return nil, false, nil
	}

	stores := make([]domain.Store, 0)
	if err := json.Unmarshal(data, &stores); err != nil {
		r.logger.Error("Failed to unmarshal stores from cache", zap.String("key", key), zap.Error(err))
		return nil, false, fmt.Errorf("unmarshal stores: %w", err)
	}

	return stores, true, nil
}

// SetStores сохраняет результат поиска
func (r *cacheRepository) SetStores(ctx context.Context, key string, stores []domain.Store, ttl time.Duration) error {
	if stores == nil {
		stores = []domain.Store{}
	}
	data, err := json.Marshal(stores)
	if err != nil {
		r.logger.Error("Failed to marshal stores", zap.Error(err))
		return fmt.Errorf("marshal stores: %w", err)
	}

	return r.Set(ctx, key, data, ttl)
}

package usecase

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/pkg/errors"
)

// SearchUseCase - поиск магазинов: получение кандидатов, фильтрация, усечение
type SearchUseCase struct {
	storeRepo repository.StoreRepository
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
	cacheTTL  time.Duration
	workers   int
}

// NewSearchUseCase - создание нового SearchUseCase.
// cacheRepo может быть nil, cacheTTL == 0 отключает кеш.
func NewSearchUseCase(
	storeRepo repository.StoreRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
	workers int,
) *SearchUseCase {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &SearchUseCase{
		storeRepo: storeRepo,
		cacheRepo: cacheRepo,
		logger:    logger,
		cacheTTL:  cacheTTL,
		workers:   workers,
	}
}

// Search - поиск магазинов по запросу. Либо возвращает весь результат,
// либо ошибку OperationFailed; частичных результатов не бывает.
func (uc *SearchUseCase) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Store, error) {
	start := time.Now()
	key := req.CacheKey()

	if cached, ok := uc.fromCache(ctx, key); ok {
		return cached, nil
	}

	candidates, err := uc.storeRepo.Search(ctx, req)
	if err != nil {
		uc.logger.Error("Failed to load candidate stores", zap.String("request", key), zap.Error(err))
		return nil, asOperationFailed("load candidate stores", err)
	}

	stores, err := FilterStores(ctx, candidates, req, uc.workers)
	if err != nil {
		uc.logger.Error("Failed to filter stores", zap.String("request", key), zap.Error(err))
		return nil, asOperationFailed("filter stores", err)
	}

	uc.logger.Debug("Store search completed",
		zap.String("request", key),
		zap.Int("candidates", len(candidates)),
		zap.Int("results", len(stores)),
		zap.Duration("took", time.Since(start)))

	uc.toCache(ctx, key, stores)
	return stores, nil
}

// GetAll - список магазинов без фильтров; limit <= 0 - без ограничения
func (uc *SearchUseCase) GetAll(ctx context.Context, limit int) ([]domain.Store, error) {
	stores, err := uc.storeRepo.GetAll(ctx, limit)
	if err != nil {
		uc.logger.Error("Failed to list stores", zap.Int("limit", limit), zap.Error(err))
		return nil, asOperationFailed("list stores", err)
	}
	return stores, nil
}

// GetByID - магазин по идентификатору
func (uc *SearchUseCase) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	store, err := uc.storeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.IsDoesNotExist(err) {
			return nil, err
		}
		uc.logger.Error("Failed to get store", zap.String("id", id), zap.Error(err))
		return nil, asOperationFailed("get store", err)
	}
	return store, nil
}

func (uc *SearchUseCase) fromCache(ctx context.Context, key string) ([]domain.Store, bool) {
	if uc.cacheRepo == nil || uc.cacheTTL <= 0 {
		return nil, false
	}

	stores, ok, err := uc.cacheRepo.GetStores(ctx, key)
	if err != nil {
		uc.logger.Warn("Failed to read search cache", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if ok {
		uc.logger.Debug("Search served from cache", zap.String("key", key))
	}
	return stores, ok
}

func (uc *SearchUseCase) toCache(ctx context.Context, key string, stores []domain.Store) {
	if uc.cacheRepo == nil || uc.cacheTTL <= 0 {
		return
	}

	if err := uc.cacheRepo.SetStores(ctx, key, stores, uc.cacheTTL); err != nil {
		// результат уже получен, кеш не влияет на ответ
		uc.logger.Warn("Failed to cache search result", zap.String("key", key), zap.Error(err))
	}
}

// asOperationFailed оборачивает ошибку в OperationFailed, если она еще не такая
func asOperationFailed(op string, err error) error {
	if errors.IsOperationFailed(err) {
		return err
	}
	return errors.OperationFailed(op, err)
}

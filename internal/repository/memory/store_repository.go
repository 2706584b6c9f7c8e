package memory

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/pkg/errors"
)

// storeRepository - хранилище магазинов в памяти в порядке добавления
type storeRepository struct {
	mu     sync.RWMutex
	stores []domain.Store
	byID   map[string]int
	byZip  map[string][]int
	logger *zap.Logger
}

// NewStoreRepository создает репозиторий, заполненный начальными магазинами
func NewStoreRepository(logger *zap.Logger, stores ...domain.Store) repository.StoreRepository {
	r := &storeRepository{
		byID:   make(map[string]int),
		byZip:  make(map[string][]int),
		logger: logger,
	}
	for _, s := range stores {
		r.upsertLocked(s)
	}
	return r
}

func (r *storeRepository) GetAll(ctx context.Context, limit int) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.stores)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.Store, n)
	copy(out, r.stores[:n])
	return out, nil
}

// Search отдает кандидатов; по индексу сужается только zip5, остальные фильтры
// применяет поисковый движок
func (r *storeRepository) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !req.HasZipCode() {
		out := make([]domain.Store, len(r.stores))
		copy(out, r.stores)
		return out, nil
	}

	zip5 := *req.ZipCode
	if len(zip5) > 5 {
		zip5 = zip5[:5]
	}
	idx := r.byZip[zip5]
	out := make([]domain.Store, 0, len(idx))
	for _, i := range idx {
		out = append(out, r.stores[i])
	}
	return out, nil
}

func (r *storeRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return nil, errors.DoesNotExist("store " + id)
	}
	s := r.stores[i]
	return &s, nil
}

func (r *storeRepository) Upsert(ctx context.Context, store domain.Store) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.upsertLocked(store)
	r.logger.Debug("Store upserted", zap.String("id", store.ID))
	return nil
}

// upsertLocked заменяет магазин на месте, сохраняя позицию в порядке выдачи
func (r *storeRepository) upsertLocked(store domain.Store) {
	if i, ok := r.byID[store.ID]; ok {
		old := r.stores[i]
		r.stores[i] = store
		if old.Address.Zip5 != store.Address.Zip5 {
			r.removeFromZip(old.Address.Zip5String(), i)
			r.addToZip(store.Address.Zip5String(), i)
		}
		return
	}

	i := len(r.stores)
	r.stores = append(r.stores, store)
	r.byID[store.ID] = i
	r.addToZip(store.Address.Zip5String(), i)
}

// addToZip держит индексы отсортированными, чтобы порядок совпадал с r.stores
func (r *storeRepository) addToZip(zip string, i int) {
	idx := r.byZip[zip]
	pos := len(idx)
	for pos > 0 && idx[pos-1] > i {
		pos--
	}
	idx = append(idx, 0)
	copy(idx[pos+1:], idx[pos:])
	idx[pos] = i
	r.byZip[zip] = idx
}

func (r *storeRepository) removeFromZip(zip string, i int) {
	idx := r.byZip[zip]
	for j, v := range idx {
		if v == i {
			r.byZip[zip] = append(idx[:j], idx[j+1:]...)
			return
		}
	}
}

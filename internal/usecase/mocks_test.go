package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/store-search-service/internal/domain"
)

// MockStoreRepository is a mock of StoreRepository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) GetAll(ctx context.Context, limit int) ([]domain.Store, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *MockStoreRepository) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Store, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Store), args.Error(1)
}

func (m *MockStoreRepository) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Store), args.Error(1)
}

func (m *MockStoreRepository) Upsert(ctx context.Context, store domain.Store) error {
	args := m.Called(ctx, store)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetStores(ctx context.Context, key string) ([]domain.Store, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Store), args.Bool(1), args.Error(2)
}

func (m *MockCacheRepository) SetStores(ctx context.Context, key string, stores []domain.Store, ttl time.Duration) error {
	args := m.Called(ctx, key, stores, ttl)
	return args.Error(0)
}

// MockImageProvider is a mock of ImageProvider
type MockImageProvider struct {
	mock.Mock
	name string
}

func (m *MockImageProvider) Name() string {
	return m.name
}

func (m *MockImageProvider) GetImagesFor(ctx context.Context, store domain.Store) ([]string, error) {
	args := m.Called(ctx, store)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func newStore(id, name string, lat, lon float64, zip5 int) domain.Store {
	return domain.Store{
		ID:       id,
		Name:     name,
		Location: domain.Coordinate{Latitude: lat, Longitude: lon},
		Address: domain.Address{
			Line1:  "1 Main St",
			City:   "Nashville",
			State:  "TN",
			County: "Davidson",
			Zip5:   zip5,
		},
	}
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

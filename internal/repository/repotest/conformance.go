// Package repotest содержит общий набор проверок для реализаций StoreRepository.
// Любая реализация должна давать движку поиска одинаковый результат.
package repotest

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/pkg/errors"
	"github.com/store-search-service/internal/usecase"
)

// Factory создает пустой репозиторий, заполненный переданными магазинами
type Factory func(t *testing.T, stores ...domain.Store) repository.StoreRepository

// Fixture - набор магазинов вокруг центра Нэшвилла
func Fixture() []domain.Store {
	mk := func(id, name string, lat, lon float64, zip5 int, zip4 string) domain.Store {
		return domain.Store{
			ID:       id,
			Name:     name,
			Location: domain.Coordinate{Latitude: lat, Longitude: lon},
			Address: domain.Address{
				Line1:  "100 Broadway",
				City:   "Nashville",
				State:  "TN",
				County: "Davidson",
				Zip5:   zip5,
				Zip4:   zip4,
			},
		}
	}

	return []domain.Store{
		mk("00000000-0000-0000-0000-000000000001", "Fresh Market Downtown", 36.1650, -86.7800, 37203, "1001"),
		mk("00000000-0000-0000-0000-000000000002", "Fresh Market East", 36.1750, -86.7500, 37206, ""),
		mk("00000000-0000-0000-0000-000000000003", "Corner Grocery", 36.1600, -86.7850, 37203, ""),
		mk("00000000-0000-0000-0000-000000000004", "fresh market lowercase", 36.1630, -86.7820, 37203, ""),
		mk("00000000-0000-0000-0000-000000000005", "Fresh Market Franklin", 35.9251, -86.8689, 37064, ""),
		mk("00000000-0000-0000-0000-000000000006", "Boston Market", 42.3601, -71.0589, 2108, ""),
	}
}

// Center - центр поиска для Fixture
var Center = domain.Coordinate{Latitude: 36.1627, Longitude: -86.7816}

// Run выполняет проверки движка поиска поверх репозитория
func Run(t *testing.T, factory Factory) {
	ctx := context.Background()
	fixture := Fixture()
	ids := func(stores []domain.Store) []string {
		out := make([]string, 0, len(stores))
		for _, s := range stores {
			out = append(out, s.ID)
		}
		return out
	}

	search := func(t *testing.T, req domain.SearchRequest) []domain.Store {
		repo := factory(t, fixture...)
		uc := usecase.NewSearchUseCase(repo, nil, zap.NewNop(), 0, 2)
		stores, err := uc.Search(ctx, req)
		require.NoError(t, err)
		return stores
	}

	str := func(s string) *string { return &s }
	flt := func(f float64) *float64 { return &f }
	num := func(i int) *int { return &i }

	t.Run("zip code", func(t *testing.T) {
		got := search(t, domain.SearchRequest{ZipCode: str("37203")})
		assert.Equal(t, []string{fixture[0].ID, fixture[2].ID, fixture[3].ID}, ids(got))
	})

	t.Run("zip code keeps leading zeros", func(t *testing.T) {
		got := search(t, domain.SearchRequest{ZipCode: str("02108")})
		assert.Equal(t, []string{fixture[5].ID}, ids(got))
	})

	t.Run("zip plus four", func(t *testing.T) {
		got := search(t, domain.SearchRequest{ZipCode: str("37203-1001")})
		assert.Equal(t, []string{fixture[0].ID}, ids(got))
	})

	t.Run("case sensitive search term", func(t *testing.T) {
		got := search(t, domain.SearchRequest{SearchTerm: str("Fresh Market")})
		assert.Equal(t, []string{fixture[0].ID, fixture[1].ID, fixture[4].ID}, ids(got))
	})

	t.Run("center with default radius", func(t *testing.T) {
		center := Center
		got := search(t, domain.SearchRequest{Center: &center})
		assert.Equal(t, []string{fixture[0].ID, fixture[1].ID, fixture[2].ID, fixture[3].ID}, ids(got))
	})

	t.Run("conjunction", func(t *testing.T) {
		center := Center
		got := search(t, domain.SearchRequest{
			Center:       &center,
			RadiusMeters: flt(1000),
			SearchTerm:   str("arket"),
			ZipCode:      str("37203"),
		})
		assert.Equal(t, []string{fixture[0].ID, fixture[3].ID}, ids(got))
	})

	t.Run("max radius", func(t *testing.T) {
		center := Center
		got := search(t, domain.SearchRequest{Center: &center, RadiusMeters: flt(domain.MaxRadiusMeters)})
		assert.Len(t, got, 5)
	})

	t.Run("limit is a prefix", func(t *testing.T) {
		center := Center
		all := search(t, domain.SearchRequest{Center: &center, RadiusMeters: flt(domain.MaxRadiusMeters)})
		limited := search(t, domain.SearchRequest{Center: &center, RadiusMeters: flt(domain.MaxRadiusMeters), Limit: num(2)})
		assert.Equal(t, all[:2], limited)
	})

	t.Run("returns full values", func(t *testing.T) {
		got := search(t, domain.SearchRequest{ZipCode: str("37206")})
		require.Len(t, got, 1)
		assert.Equal(t, fixture[1], got[0])
	})

	t.Run("get all with limit", func(t *testing.T) {
		repo := factory(t, fixture...)
		all, err := repo.GetAll(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, len(fixture))

		some, err := repo.GetAll(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, some, 3)
	})

	t.Run("get by id", func(t *testing.T) {
		repo := factory(t, fixture...)
		s, err := repo.GetByID(ctx, fixture[2].ID)
		require.NoError(t, err)
		assert.Equal(t, fixture[2], *s)

		_, err = repo.GetByID(ctx, "00000000-0000-0000-0000-0000000000ff")
		assert.True(t, errors.IsDoesNotExist(err))
	})

	t.Run("upsert replaces by id", func(t *testing.T) {
		repo := factory(t, fixture...)
		updated := fixture[2]
		updated.Name = "Corner Market"
		require.NoError(t, repo.Upsert(ctx, updated))

		s, err := repo.GetByID(ctx, updated.ID)
		require.NoError(t, err)
		assert.Equal(t, "Corner Market", s.Name)

		all, err := repo.GetAll(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, all, len(fixture))
	})

	t.Run("many stores", func(t *testing.T) {
		stores := make([]domain.Store, 0, 600)
		for i := 0; i < 600; i++ {
			s := fixture[0]
			s.ID = fmt.Sprintf("00000000-0000-0000-0001-%012d", i)
			stores = append(stores, s)
		}
		repo := factory(t, stores...)
		uc := usecase.NewSearchUseCase(repo, nil, zap.NewNop(), 0, 4)

		center := Center
		got, err := uc.Search(ctx, domain.SearchRequest{Center: &center, Limit: num(domain.DefaultLimit)})
		require.NoError(t, err)
		assert.Len(t, got, domain.DefaultLimit)
	})
}

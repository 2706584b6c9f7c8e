package memory_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/repository/memory"
	"github.com/store-search-service/internal/repository/repotest"
)

func TestStoreRepository_Conformance(t *testing.T) {
	repotest.Run(t, func(t *testing.T, stores ...domain.Store) repository.StoreRepository {
		return memory.NewStoreRepository(zap.NewNop(), stores...)
	})
}

func TestStoreRepository_SearchUsesZipIndex(t *testing.T) {
	ctx := context.Background()
	fixture := repotest.Fixture()
	repo := memory.NewStoreRepository(zap.NewNop(), fixture...)

	zip := "37203"
	candidates, err := repo.Search(ctx, domain.SearchRequest{ZipCode: &zip})
	require.NoError(t, err)
	for _, s := range candidates {
		assert.Equal(t, 37203, s.Address.Zip5)
	}

	all, err := repo.Search(ctx, domain.SearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, fixture, all)
}

func TestStoreRepository_UpsertMovesZip(t *testing.T) {
	ctx := context.Background()
	fixture := repotest.Fixture()
	repo := memory.NewStoreRepository(zap.NewNop(), fixture...)

	moved := fixture[0]
	moved.Address.Zip5 = 37206
	require.NoError(t, repo.Upsert(ctx, moved))

	zip := "37206"
	candidates, err := repo.Search(ctx, domain.SearchRequest{ZipCode: &zip})
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, moved, candidates[0], "upserted store keeps its original position")
	assert.Equal(t, fixture[1], candidates[1])

	old := "37203"
	candidates, err = repo.Search(ctx, domain.SearchRequest{ZipCode: &old})
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}

func TestStoreRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := memory.NewStoreRepository(zap.NewNop(), repotest.Fixture()...)
	_, err := repo.Search(ctx, domain.SearchRequest{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadCSV(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		data := `id,name,latitude,longitude,line1,line2,city,state,county,zip5,zip4
s-1,Fresh Market,36.165,-86.78,100 Broadway,,Nashville,TN,Davidson,37203,1001
,Corner Grocery,36.16,-86.785,5 Church St,Suite 2,Nashville,TN,Davidson,2108,
`
		stores, err := memory.ReadCSV(strings.NewReader(data))
		require.NoError(t, err)
		require.Len(t, stores, 2)

		assert.Equal(t, "s-1", stores[0].ID)
		assert.Equal(t, "1001", stores[0].Address.Zip4)
		assert.NotEmpty(t, stores[1].ID, "missing id is generated")
		assert.Equal(t, "Suite 2", stores[1].Address.Line2)
		assert.Equal(t, "02108", stores[1].Address.Zip5String())
	})

	t.Run("bad header", func(t *testing.T) {
		data := "id,title,latitude,longitude,line1,line2,city,state,county,zip5,zip4\n"
		_, err := memory.ReadCSV(strings.NewReader(data))
		assert.Error(t, err)
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		data := `id,name,latitude,longitude,line1,line2,city,state,county,zip5,zip4
s-1,Fresh Market,91,-86.78,100 Broadway,,Nashville,TN,Davidson,37203,
`
		_, err := memory.ReadCSV(strings.NewReader(data))
		assert.ErrorContains(t, err, "line 2")
	})
}

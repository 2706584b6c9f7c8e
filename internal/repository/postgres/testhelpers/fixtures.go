package testhelpers

import (
	"context"
	"fmt"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
)

// LoadStores inserts stores through the repository in the given order
func LoadStores(ctx context.Context, repo repository.StoreRepository, stores []domain.Store) error {
	for _, s := range stores {
		if err := repo.Upsert(ctx, s); err != nil {
			return fmt.Errorf("load store %s: %w", s.ID, err)
		}
	}
	return nil
}

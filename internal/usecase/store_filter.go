package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/pkg/utils"
)

// minParallelCandidates - ниже этого размера фильтруем в одной горутине
const minParallelCandidates = 512

// matchStore применяет фильтры запроса к одному магазину.
// Дешевые проверки идут первыми, haversine - последней.
func matchStore(store *domain.Store, req *domain.SearchRequest) (bool, error) {
	if req.HasZipCode() && !matchZip(store.Address, *req.ZipCode) {
		return false, nil
	}

	// регистр учитывается
	if req.HasSearchTerm() && !strings.Contains(store.Name, *req.SearchTerm) {
		return false, nil
	}

	if req.HasCenter() {
		d, err := utils.Distance(&store.Location, req.Center)
		if err != nil {
			return false, err
		}
		if d > req.ResolvedRadius() {
			return false, nil
		}
	}

	return true, nil
}

// matchZip сравнивает zip5; для ZIP+4 дополнительно сравнивается zip4
func matchZip(addr domain.Address, zip string) bool {
	zip5, zip4, hasZip4 := strings.Cut(zip, "-")
	if addr.Zip5String() != zip5 {
		return false
	}
	return !hasZip4 || addr.Zip4 == zip4
}

// FilterStores оставляет магазины, удовлетворяющие всем фильтрам запроса,
// и усекает результат до лимита. Порядок кандидатов сохраняется.
// Проверка распараллеливается по непрерывным диапазонам кандидатов.
func FilterStores(ctx context.Context, candidates []domain.Store, req domain.SearchRequest, workers int) ([]domain.Store, error) {
	if workers < 1 {
		workers = 1
	}
	if len(candidates) < minParallelCandidates {
		workers = 1
	}

	chunkSize := (len(candidates) + workers - 1) / workers
	if chunkSize == 0 {
		return []domain.Store{}, nil
	}

	chunks := make([][]domain.Store, 0, workers)
	for start := 0; start < len(candidates); start += chunkSize {
		end := start + chunkSize
		if end > len(candidates) {
			end = len(candidates)
		}
		chunks = append(chunks, candidates[start:end])
	}

	matched := make([][]domain.Store, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			out := make([]domain.Store, 0)
			for j := range chunk {
				if j%256 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				ok, err := matchStore(&chunk[j], &req)
				if err != nil {
					return err
				}
				if ok {
					out = append(out, chunk[j])
				}
			}
			matched[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, m := range matched {
		total += len(m)
	}
	result := make([]domain.Store, 0, total)
	for _, m := range matched {
		result = append(result, m...)
	}

	if limit := req.EffectiveLimit(); limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

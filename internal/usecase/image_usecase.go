package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/pkg/errors"
)

// maxConcurrentEnrichments - сколько магазинов обогащаем одновременно
const maxConcurrentEnrichments = 8

// ImageUseCase - подбор изображений магазинов у внешних провайдеров.
// Ошибки провайдеров логируются и не влияют на результаты поиска.
type ImageUseCase struct {
	providers []repository.ImageProvider
	logger    *zap.Logger
}

// NewImageUseCase - создание нового ImageUseCase; порядок провайдеров задает приоритет
func NewImageUseCase(logger *zap.Logger, providers ...repository.ImageProvider) *ImageUseCase {
	return &ImageUseCase{
		providers: providers,
		logger:    logger,
	}
}

// GetImagesFor возвращает URL изображений магазина: сначала собственное,
// затем найденные провайдерами (в порядке провайдеров, без повторов).
func (uc *ImageUseCase) GetImagesFor(ctx context.Context, store domain.Store) ([]string, error) {
	perProvider := make([][]string, len(uc.providers))

	var g errgroup.Group
	for i, p := range uc.providers {
		g.Go(func() error {
			urls, err := p.GetImagesFor(ctx, store)
			if err != nil {
				uc.logger.Warn("Image provider failed",
					zap.String("provider", p.Name()),
					zap.String("store_id", store.ID),
					zap.Error(err))
				return nil
			}
			perProvider[i] = urls
			return nil
		})
	}
	_ = g.Wait()

	seen := make(map[string]struct{})
	images := make([]string, 0)
	add := func(u string) {
		if u == "" {
			return
		}
		if _, ok := seen[u]; ok {
			return
		}
		seen[u] = struct{}{}
		images = append(images, u)
	}

	add(store.MainImageURL)
	for _, urls := range perProvider {
		for _, u := range urls {
			add(u)
		}
	}

	if len(images) == 0 {
		return nil, errors.DoesNotExist("image for store " + store.ID)
	}
	return images, nil
}

// Enrich возвращает новые значения магазинов с MainImageURL, если изображение нашлось.
// Порядок сохраняется; магазины без изображений возвращаются как есть.
func (uc *ImageUseCase) Enrich(ctx context.Context, stores []domain.Store) []domain.Store {
	out := make([]domain.Store, len(stores))
	copy(out, stores)

	if len(uc.providers) == 0 {
		return out
	}

	var g errgroup.Group
	g.SetLimit(maxConcurrentEnrichments)
	for i := range out {
		if out[i].MainImageURL != "" {
			continue
		}
		g.Go(func() error {
			images, err := uc.GetImagesFor(ctx, out[i])
			if err != nil {
				uc.logger.Debug("No image for store", zap.String("store_id", out[i].ID))
				return nil
			}
			out[i] = out[i].WithMainImageURL(images[0])
			return nil
		})
	}
	_ = g.Wait()

	return out
}

package repository

import (
	"context"

	"github.com/store-search-service/internal/domain"
)

// StoreRepository определяет методы для работы с хранилищем магазинов.
// Реализация сама синхронизирует доступ к данным и возвращает неизменяемые значения.
type StoreRepository interface {
	// GetAll возвращает магазины в стабильном порядке; limit <= 0 - без ограничения
	GetAll(ctx context.Context, limit int) ([]domain.Store, error)

	// Search возвращает кандидатов для запроса. Реализация может применить часть
	// фильтров (индекс, bounding box), но не должна отбрасывать подходящие магазины.
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.Store, error)

	// GetByID возвращает магазин по идентификатору
	GetByID(ctx context.Context, id string) (*domain.Store, error)

	// Upsert создает или заменяет магазин с тем же ID
	Upsert(ctx context.Context, store domain.Store) error
}

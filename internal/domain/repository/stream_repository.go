package repository

import (
	"context"
	"time"

	"github.com/store-search-service/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// ConsumeBatch читает до maxCount новых сообщений, ожидая не дольше block.
	// block <= 0 - чтение без ожидания.
	ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int, block time.Duration) ([]domain.StreamMessage, error)

	// ClaimPending забирает себе неподтвержденные сообщения группы,
	// которые простаивают дольше minIdle
	ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, maxCount int) ([]domain.StreamMessage, error)

	// AckMessage подтверждает обработку сообщения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// AckMessages подтверждает обработку нескольких сообщений
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}

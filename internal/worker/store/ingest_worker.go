package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/store-search-service/internal/config"
	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/worker"
)

const (
	maxBatchSize    = 20                     // максимум сообщений за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second            // пауза при ошибке чтения
)

// IngestWorker читает события stream:stores:upsert и сохраняет магазины.
// Сообщения, не сохраненные после maxRetries попыток, остаются в pending
// и забираются повторно через ClaimPending, когда простоят claimMinIdle.
type IngestWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	storeRepo    repository.StoreRepository
	consumerName string
	maxRetries   int
	readTimeout  time.Duration
	claimMinIdle time.Duration
}

// NewIngestWorker создает новый IngestWorker
func NewIngestWorker(
	streamRepo repository.StreamRepository,
	storeRepo repository.StoreRepository,
	cfg *config.WorkerConfig,
	logger *zap.Logger,
) *IngestWorker {
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &IngestWorker{
		BaseWorker:   worker.NewBaseWorker("store-ingest", cfg.ConsumerGroup, logger),
		streamRepo:   streamRepo,
		storeRepo:    storeRepo,
		consumerName: consumerName(cfg.ConsumerName),
		maxRetries:   maxRetries,
		readTimeout:  cfg.StreamReadTimeout,
		claimMinIdle: cfg.ClaimMinIdle,
	}
}

// consumerName - имя потребителя, одинаковое после перезапуска процесса,
// чтобы его pending-сообщения не терялись
func consumerName(configured string) string {
	if configured != "" {
		return configured
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		return hostname
	}
	return "store-ingest"
}

// ConsumerName - имя потребителя в consumer group
func (w *IngestWorker) ConsumerName() string {
	return w.consumerName
}

// Start запускает цикл чтения стрима до Stop или отмены контекста
func (w *IngestWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting IngestWorker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_batch_size", maxBatchSize),
		zap.Duration("read_timeout", w.readTimeout),
		zap.Duration("claim_min_idle", w.claimMinIdle))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamStoreUpsert, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		switch {
		case err != nil:
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
		case processed == 0 && w.readTimeout <= 0:
			// чтение без ожидания, иначе паузу дает сам XREADGROUP
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает и обрабатывает один batch сообщений: сначала
// зависшие pending-сообщения группы, если их нет - новые.
// Возвращает количество прочитанных сообщений.
func (w *IngestWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.nextBatch(ctx)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ackIDs := make([]string, 0, len(messages))
	stored := 0
	for _, msg := range messages {
		s, err := parseMessage(msg)
		if err != nil {
			// битое сообщение подтверждаем, чтобы не застревало
			logger.Warn("Skipping malformed store event",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		if err := w.upsert(ctx, s); err != nil {
			// остается в pending, вернется через ClaimPending
			logger.Error("Failed to store event",
				zap.String("message_id", msg.ID),
				zap.String("store_id", s.ID),
				zap.Error(err))
			continue
		}

		ackIDs = append(ackIDs, msg.ID)
		stored++
	}

	if err := w.streamRepo.AckMessages(ctx, domain.StreamStoreUpsert, w.ConsumerGroup(), ackIDs); err != nil {
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("stored", stored))
	return len(messages), nil
}

func (w *IngestWorker) nextBatch(ctx context.Context) ([]domain.StreamMessage, error) {
	claimed, err := w.streamRepo.ClaimPending(ctx, domain.StreamStoreUpsert, w.ConsumerGroup(), w.consumerName, w.claimMinIdle, maxBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to claim pending messages: %w", err)
	}
	if len(claimed) > 0 {
		return claimed, nil
	}

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamStoreUpsert, w.ConsumerGroup(), w.consumerName, maxBatchSize, w.readTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to consume batch: %w", err)
	}
	return messages, nil
}

func (w *IngestWorker) upsert(ctx context.Context, s domain.Store) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.storeRepo.Upsert(ctx, s); err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.Logger().Debug("Upsert attempt failed",
			zap.String("store_id", s.ID),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}
	return err
}

// parseMessage разбирает StoreEvent и строит валидный Store
func parseMessage(msg domain.StreamMessage) (domain.Store, error) {
	if msg.Data == "" {
		return domain.Store{}, fmt.Errorf("missing 'data' field")
	}

	var event domain.StoreEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return domain.Store{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return event.ToStore()
}

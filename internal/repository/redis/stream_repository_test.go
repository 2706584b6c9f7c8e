package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	redisRepo "github.com/store-search-service/internal/repository/redis"
)

const testStream = "test:stream:stores:upsert"

// getTestRedisClient creates a Redis client for testing
func getTestRedisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1, // Use DB 1 for tests
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	client.Del(ctx, testStream)
	t.Cleanup(func() {
		client.Del(context.Background(), testStream)
		client.Close()
	})

	return client
}

func TestStreamRepository_CreateConsumerGroupIsIdempotent(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))
	assert.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))

	groups, err := client.XInfoGroups(ctx, testStream).Result()
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "test-group", groups[0].Name)
}

func TestStreamRepository_PublishConsumeAck(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))

	event := domain.StoreEvent{StoreID: "s-1", Name: "Fresh Market", Zip5: 37203}
	require.NoError(t, repo.PublishToStream(ctx, testStream, event))
	require.NoError(t, repo.PublishToStream(ctx, testStream, domain.StoreEvent{StoreID: "s-2"}))

	messages, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-1", 1, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)

	var got domain.StoreEvent
	require.NoError(t, json.Unmarshal([]byte(messages[0].Data), &got))
	assert.Equal(t, event, got)

	rest, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, rest, 1)

	require.NoError(t, repo.AckMessages(ctx, testStream, "test-group", []string{messages[0].ID, rest[0].ID}))

	pending, err := client.XPending(ctx, testStream, "test-group").Result()
	require.NoError(t, err)
	assert.Zero(t, pending.Count)

	empty, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestStreamRepository_MessageWithoutData(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))
	require.NoError(t, client.XAdd(ctx, &redis.XAddArgs{
		Stream: testStream,
		Values: map[string]interface{}{"other": "x"},
	}).Err())

	messages, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Empty(t, messages[0].Data)
	assert.NoError(t, repo.AckMessage(ctx, testStream, "test-group", messages[0].ID))
}

func TestStreamRepository_ClaimPendingReturnsUnackedMessage(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))
	require.NoError(t, repo.PublishToStream(ctx, testStream, domain.StoreEvent{StoreID: "s-1"}))

	first, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// без ack новое чтение ">" его уже не вернет
	again, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-1", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, again)

	notIdle, err := repo.ClaimPending(ctx, testStream, "test-group", "consumer-1", time.Hour, 10)
	require.NoError(t, err)
	assert.Empty(t, notIdle, "message idle less than minIdle stays with its consumer")

	claimed, err := repo.ClaimPending(ctx, testStream, "test-group", "consumer-1", 0, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, first[0].ID, claimed[0].ID)
	assert.Equal(t, first[0].Data, claimed[0].Data)

	require.NoError(t, repo.AckMessage(ctx, testStream, "test-group", claimed[0].ID))

	rest, err := repo.ClaimPending(ctx, testStream, "test-group", "consumer-1", 0, 10)
	require.NoError(t, err)
	assert.Empty(t, rest)
}

func TestStreamRepository_ClaimPendingFromStoppedConsumer(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))
	require.NoError(t, repo.PublishToStream(ctx, testStream, domain.StoreEvent{StoreID: "s-1"}))

	delivered, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-old", 10, 0)
	require.NoError(t, err)
	require.Len(t, delivered, 1)

	claimed, err := repo.ClaimPending(ctx, testStream, "test-group", "consumer-new", 0, 10)
	require.NoError(t, err)
	require.Len(t, claimed, 1)
	assert.Equal(t, delivered[0].ID, claimed[0].ID)

	pending, err := client.XPendingExt(ctx, &redis.XPendingExtArgs{
		Stream: testStream,
		Group:  "test-group",
		Start:  "-",
		End:    "+",
		Count:  10,
	}).Result()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "consumer-new", pending[0].Consumer)
}

func TestStreamRepository_ConsumeBatchWaitsForBlock(t *testing.T) {
	client := getTestRedisClient(t)
	repo := redisRepo.NewStreamRepository(client, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.CreateConsumerGroup(ctx, testStream, "test-group"))

	started := time.Now()
	messages, err := repo.ConsumeBatch(ctx, testStream, "test-group", "consumer-1", 10, 200*time.Millisecond)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.GreaterOrEqual(t, time.Since(started), 150*time.Millisecond)
}

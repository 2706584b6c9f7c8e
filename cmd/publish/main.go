// Command publish отправляет магазины из CSV в stream:stores:upsert
// для загрузки через ingest worker.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/pkg/logger"
	"github.com/store-search-service/internal/repository/memory"
	redisRepo "github.com/store-search-service/internal/repository/redis"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	file := flag.String("file", "", "CSV file with stores")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	log, err := logger.New(*level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if *file == "" {
		log.Fatal("-file is required")
	}

	stores, err := memory.LoadCSV(*file, log)
	if err != nil {
		log.Fatal("Failed to read stores", zap.Error(err))
	}

	client := redis.NewClient(&redis.Options{Addr: *redisAddr})
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}

	streamRepo := redisRepo.NewStreamRepository(client, log)
	published := 0
	for _, s := range stores {
		if err := streamRepo.PublishToStream(ctx, domain.StreamStoreUpsert, domain.NewStoreEvent(s)); err != nil {
			log.Fatal("Failed to publish store", zap.String("store_id", s.ID), zap.Error(err))
		}
		published++
	}

	log.Info("Stores published",
		zap.String("stream", domain.StreamStoreUpsert),
		zap.Int("count", published))
}

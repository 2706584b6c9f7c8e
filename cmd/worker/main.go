package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/store-search-service/internal/config"
	"github.com/store-search-service/internal/pkg/logger"
	"github.com/store-search-service/internal/repository/cache"
	"github.com/store-search-service/internal/repository/postgres"
	redisRepo "github.com/store-search-service/internal/repository/redis"
	"github.com/store-search-service/internal/worker"
	"github.com/store-search-service/internal/worker/store"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	// Отдельный процесс пишет только в общее хранилище; память другого процесса ему недоступна
	if cfg.Store.Backend != config.BackendPostgres {
		log.Fatal("Standalone ingest worker requires STORE_BACKEND=postgres",
			zap.String("store_backend", cfg.Store.Backend))
	}

	log.Info("Starting Store Ingest Worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	// 3. Connect to PostgreSQL
	if cfg.Database.Migrate {
		if err := postgres.Migrate(cfg.GetDatabaseURL(), log); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	if !redisClient.SupportsStreamClaim() {
		log.Fatal("Redis 6.2+ is required: the ingest worker reclaims pending messages with XAUTOCLAIM")
	}

	// 5. Repositories and workers
	storeRepo := postgres.NewStoreRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(store.NewIngestWorker(
		streamRepo,
		storeRepo,
		&cfg.Worker,
		log,
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}

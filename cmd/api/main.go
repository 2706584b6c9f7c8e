package main

// @title Store Search Service API
// @version 1.0.0
// @description Поиск розничных точек по координатам и радиусу, подстроке названия и ZIP-коду.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/store-search-service/docs"
	"github.com/store-search-service/internal/config"
	httpDelivery "github.com/store-search-service/internal/delivery/http"
	"github.com/store-search-service/internal/delivery/http/handler"
	"github.com/store-search-service/internal/domain"
	"github.com/store-search-service/internal/domain/repository"
	"github.com/store-search-service/internal/infrastructure/googleplaces"
	"github.com/store-search-service/internal/infrastructure/yelp"
	"github.com/store-search-service/internal/pkg/logger"
	"github.com/store-search-service/internal/repository/cache"
	"github.com/store-search-service/internal/repository/memory"
	"github.com/store-search-service/internal/repository/postgres"
	redisRepo "github.com/store-search-service/internal/repository/redis"
	"github.com/store-search-service/internal/usecase"
	"github.com/store-search-service/internal/worker"
	"github.com/store-search-service/internal/worker/store"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Store Search Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("store_backend", cfg.Store.Backend),
	)

	checks := make(map[string]httpDelivery.HealthChecker)

	// 3. Store repository
	var storeRepo repository.StoreRepository
	switch cfg.Store.Backend {
	case config.BackendPostgres:
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
		checks["postgres"] = db
		storeRepo = postgres.NewStoreRepository(db)

	default:
		seed, err := loadSeed(cfg.Store.DataFile, log)
		if err != nil {
			log.Fatal("Failed to load stores", zap.Error(err))
		}
		storeRepo = memory.NewStoreRepository(log, seed...)
	}

	// 4. Redis (optional): search cache and in-process ingestion
	var cacheRepo repository.CacheRepository
	workerManager := worker.NewWorkerManager(log)
	workersStarted := false

	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", zap.Error(err))
			}
		}()
		checks["redis"] = redisClient
		cacheRepo = cache.NewCacheRepository(redisClient)

		if cfg.Worker.Enabled && !redisClient.SupportsStreamClaim() {
			log.Error("Ingest worker disabled: Redis 6.2+ is required for XAUTOCLAIM")
		} else if cfg.Worker.Enabled {
			streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
			workerManager.Register(store.NewIngestWorker(
				streamRepo,
				storeRepo,
				&cfg.Worker,
				log,
			))
			workersStarted = true
		}
	}

	// 5. Use cases
	searchUC := usecase.NewSearchUseCase(storeRepo, cacheRepo, log, cfg.Search.CacheTTL, cfg.Search.Workers)
	imageUC := usecase.NewImageUseCase(log, imageProviders(&cfg.Images, log)...)

	log.Info("Use cases initialized")

	// 6. HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewStoreHandler(searchUC, imageUC, log),
		checks,
	)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	if workersStarted {
		if err := workerManager.Start(workerCtx); err != nil {
			log.Fatal("Failed to start workers", zap.Error(err))
		}
	}

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 7. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	if workersStarted {
		stopWorkers()
		if err := workerManager.Stop(); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}

func loadSeed(path string, log *zap.Logger) ([]domain.Store, error) {
	if path == "" {
		log.Warn("STORE_DATA_FILE is not set, starting with an empty store list")
		return nil, nil
	}
	return memory.LoadCSV(path, log)
}

// imageProviders - провайдеры в порядке приоритета; без ключа провайдер не подключается
func imageProviders(cfg *config.ImagesConfig, log *zap.Logger) []repository.ImageProvider {
	var providers []repository.ImageProvider
	if cfg.GooglePlacesAPIKey != "" {
		providers = append(providers, googleplaces.NewClient(cfg, log))
	}
	if cfg.YelpAPIKey != "" {
		providers = append(providers, yelp.NewClient(cfg, log))
	}
	log.Info("Image providers configured", zap.Int("count", len(providers)))
	return providers
}

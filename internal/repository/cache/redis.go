package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/config"
)

const connectTimeout = 5 * time.Second

// Redis - клиент Redis, общий для кеша поиска и стрима загрузки магазинов
type Redis struct {
	client  *redis.Client
	logger  *zap.Logger
	version string
}

// NewRedis подключается к Redis и запоминает версию сервера
func NewRedis(cfg *config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	r := &Redis{client: client, logger: logger}

	info, err := client.Info(ctx, "server").Result()
	if err != nil {
		logger.Warn("Failed to read Redis server info", zap.Error(err))
	} else {
		r.version = parseVersion(info)
	}

	logger.Info("Redis connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.Int("db", cfg.DB),
		zap.String("version", r.version),
		zap.Bool("stream_claim", r.SupportsStreamClaim()),
	)

	return r, nil
}

// SupportsStreamClaim - есть ли XAUTOCLAIM (Redis 6.2+), нужный воркеру
// загрузки для повторной обработки pending-сообщений.
// Неизвестная версия считается подходящей.
func (r *Redis) SupportsStreamClaim() bool {
	if r.version == "" {
		return true
	}
	return versionAtLeast(r.version, 6, 2)
}

// Close закрывает клиент, записав в лог статистику пула
func (r *Redis) Close() error {
	stats := r.client.PoolStats()
	r.logger.Info("Closing Redis connection",
		zap.Uint32("hits", stats.Hits),
		zap.Uint32("misses", stats.Misses),
		zap.Uint32("timeouts", stats.Timeouts),
		zap.Uint32("total_conns", stats.TotalConns),
	)
	return r.client.Close()
}

func (r *Redis) Health(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

// parseVersion достает redis_version из ответа INFO server
func parseVersion(info string) string {
	for _, line := range strings.Split(info, "\n") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(line), "redis_version:"); ok {
			return v
		}
	}
	return ""
}

// versionAtLeast сравнивает major.minor версии вида "7.2.4"
func versionAtLeast(version string, major, minor int) bool {
	parts := strings.SplitN(version, ".", 3)
	gotMajor, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	gotMinor := 0
	if len(parts) > 1 {
		if gotMinor, err = strconv.Atoi(parts[1]); err != nil {
			return false
		}
	}
	if gotMajor != major {
		return gotMajor > major
	}
	return gotMinor >= minor
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/store-search-service/internal/config"
)

// ErrStoresTableMissing - база доступна, но схема stores не применена
var ErrStoresTableMissing = errors.New("stores table is missing, apply migrations (DB_MIGRATE=true)")

const connectTimeout = 5 * time.Second

// DB - пул соединений sqlx к базе магазинов
type DB struct {
	*sqlx.DB
	logger *zap.Logger
}

// New открывает пул через драйвер pgx, настраивает его из DatabaseConfig
// и проверяет соединение
func New(cfg *config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	sqlxDB, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlxDB.SetMaxOpenConns(cfg.MaxConns)
	sqlxDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlxDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlxDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := sqlxDB.PingContext(ctx); err != nil {
		sqlxDB.Close()
		return nil, fmt.Errorf("failed to connect to database %s:%d/%s: %w", cfg.Host, cfg.Port, cfg.DBName, err)
	}

	db := &DB{DB: sqlxDB, logger: logger}

	fields := []zap.Field{
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.DBName),
		zap.Int("max_conns", cfg.MaxConns),
	}
	if n, err := db.StoreCount(ctx); err == nil {
		fields = append(fields, zap.Int64("stores", n))
	} else {
		// без миграций сервис стартует, /health покажет degraded
		fields = append(fields, zap.NamedError("stores_error", err))
	}
	logger.Info("PostgreSQL connected", fields...)

	return db, nil
}

// StoreCount - число магазинов в таблице stores
func (db *DB) StoreCount(ctx context.Context) (int64, error) {
	if err := db.ensureStoresTable(ctx); err != nil {
		return 0, err
	}

	var n int64
	if err := db.GetContext(ctx, &n, `SELECT count(*) FROM stores`); err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}
	return n, nil
}

// Health - соединение живо и схема stores на месте
func (db *DB) Health(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping: %w", err)
	}
	return db.ensureStoresTable(ctx)
}

func (db *DB) ensureStoresTable(ctx context.Context) error {
	var exists bool
	if err := db.GetContext(ctx, &exists, `SELECT to_regclass('stores') IS NOT NULL`); err != nil {
		return fmt.Errorf("failed to check stores table: %w", err)
	}
	if !exists {
		return ErrStoresTableMissing
	}
	return nil
}

// Close закрывает пул, записав в лог его итоговую статистику
func (db *DB) Close() error {
	stats := db.Stats()
	db.logger.Info("Closing PostgreSQL connection",
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int64("wait_count", stats.WaitCount),
		zap.Duration("wait_duration", stats.WaitDuration),
	)
	return db.DB.Close()
}

// NewDBForTest creates a DB instance for testing with provided database and logger
func NewDBForTest(sqlxDB *sqlx.DB, logger *zap.Logger) *DB {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DB{
		DB:     sqlxDB,
		logger: logger,
	}
}

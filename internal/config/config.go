package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Search   SearchConfig
	Log      LogConfig
	Worker   WorkerConfig
	Images   ImagesConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// StoreConfig - выбор хранилища магазинов
type StoreConfig struct {
	Backend  string
	DataFile string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Migrate         bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SearchConfig - параметры выполнения поиска. Значения по умолчанию
// самого запроса (радиус, лимит) живут в domain.
type SearchConfig struct {
	CacheTTL time.Duration
	Workers  int
}

type LogConfig struct {
	Level string
}

// WorkerConfig - параметры воркера загрузки магазинов из стрима.
// ConsumerName должен быть стабильным между перезапусками; пустое значение - hostname.
type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	ConsumerName      string
	StreamReadTimeout time.Duration
	ClaimMinIdle      time.Duration
	MaxRetries        int
}

type ImagesConfig struct {
	GooglePlacesAPIKey  string
	GooglePlacesBaseURL string
	YelpAPIKey          string
	YelpBaseURL         string
	RequestTimeout      time.Duration
}

// Load читает .env (если есть) и переменные окружения
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из указанного файла и окружения.
// Отсутствующий файл не ошибка: окружение имеет приоритет в любом случае.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
		},
		Store: StoreConfig{
			Backend:  strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND"))),
			DataFile: v.GetString("STORE_DATA_FILE"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
			Migrate:         v.GetBool("DB_MIGRATE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Search: SearchConfig{
			CacheTTL: time.Duration(v.GetInt("SEARCH_CACHE_TTL")) * time.Second,
			Workers:  v.GetInt("SEARCH_WORKERS"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           v.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     v.GetString("WORKER_CONSUMER_GROUP"),
			ConsumerName:      v.GetString("WORKER_CONSUMER_NAME"),
			StreamReadTimeout: time.Duration(v.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			ClaimMinIdle:      time.Duration(v.GetInt("WORKER_CLAIM_MIN_IDLE")) * time.Millisecond,
			MaxRetries:        v.GetInt("WORKER_MAX_RETRIES"),
		},
		Images: ImagesConfig{
			GooglePlacesAPIKey:  v.GetString("GOOGLE_PLACES_API_KEY"),
			GooglePlacesBaseURL: v.GetString("GOOGLE_PLACES_BASE_URL"),
			YelpAPIKey:          v.GetString("YELP_API_KEY"),
			YelpBaseURL:         v.GetString("YELP_BASE_URL"),
			RequestTimeout:      time.Duration(v.GetInt("IMAGES_REQUEST_TIMEOUT")) * time.Millisecond,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "0.0.0.0")
	v.SetDefault("API_PORT", 8080)
	v.SetDefault("API_ENV", "development")
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("WORKER_CONSUMER_GROUP", "store-ingest-workers")
	v.SetDefault("WORKER_STREAM_READ_TIMEOUT", 5000)
	v.SetDefault("WORKER_CLAIM_MIN_IDLE", 60000)
	v.SetDefault("WORKER_MAX_RETRIES", 3)
	v.SetDefault("GOOGLE_PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place")
	v.SetDefault("YELP_BASE_URL", "https://api.yelp.com/v3")
	v.SetDefault("IMAGES_REQUEST_TIMEOUT", 3000)
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Search.CacheTTL < 0 {
		return fmt.Errorf("SEARCH_CACHE_TTL must not be negative")
	}
	if c.Worker.StreamReadTimeout < 0 || c.Worker.ClaimMinIdle < 0 {
		return fmt.Errorf("WORKER_STREAM_READ_TIMEOUT and WORKER_CLAIM_MIN_IDLE must not be negative")
	}
	return nil
}

// RedisEnabled - задан ли адрес Redis
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

// GetDatabaseURL - DSN в виде URL для golang-migrate
func (c *Config) GetDatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	APIKey      string `env:"API_KEY"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	Version     string `env:"VERSION" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"upgradedraft"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogDir    string `env:"LOG_DIR" envDefault:"logs"`

	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES" envDefault:"1048576"`

	DBDriver      string        `env:"DB_DRIVER" envDefault:"postgres"`
	DBUser        string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost        string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string        `env:"DB_PORT" envDefault:"5432"`
	DBName        string        `env:"DB_NAME" envDefault:"upgradedraft"`
	DBMaxConns    int           `env:"DB_MAX_CONNS" envDefault:"10"`
	DBMaxIdleTime time.Duration `env:"DB_MAX_IDLE_TIME" envDefault:"5m"`
	DBMaxLifetime time.Duration `env:"DB_MAX_LIFETIME" envDefault:"1h"`
	SQLitePath    string        `env:"SQLITE_PATH" envDefault:"data/events.db"`

	CatalogPath string `env:"CATALOG_PATH" envDefault:"configs/upgrades.yaml"`

	StartingBalance int64         `env:"PLAYER_STARTING_BALANCE" envDefault:"0"`
	MaxHealth       int           `env:"PLAYER_MAX_HEALTH" envDefault:"100"`
	ThresholdBase   float64       `env:"XP_THRESHOLD_BASE" envDefault:"100"`
	ThresholdGrowth float64       `env:"XP_THRESHOLD_GROWTH" envDefault:"25"`
	MaxPlayers      int           `env:"MAX_PLAYERS" envDefault:"10000"`
	PlayerIdleTTL   time.Duration `env:"PLAYER_IDLE_TTL" envDefault:"24h"`
	RandomSeed      uint64        `env:"DRAFT_RANDOM_SEED"` // 0 uses crypto randomness

	EventRetention       time.Duration `env:"EVENT_RETENTION" envDefault:"168h"`
	EventCleanupInterval time.Duration `env:"EVENT_CLEANUP_INTERVAL" envDefault:"1h"`
	EventArchiveDir      string        `env:"EVENT_ARCHIVE_DIR" envDefault:"data/archive"`
	DeadLetterPath       string        `env:"EVENT_DEADLETTER_PATH" envDefault:"logs/deadletter.jsonl"`
	PublishMaxRetries    int           `env:"EVENT_PUBLISH_RETRIES" envDefault:"3"`
	PublishRetryDelay    time.Duration `env:"EVENT_PUBLISH_RETRY_DELAY" envDefault:"2s"`

	WorkerCount     int `env:"WORKER_COUNT" envDefault:"2"`
	WorkerQueueSize int `env:"WORKER_QUEUE_SIZE" envDefault:"16"`

	OTELEndpoint    string  `env:"OTEL_EXPORTER_ENDPOINT"`
	OTELSampleRatio float64 `env:"OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A missing .env is fine, the variables may come from the real environment
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, errors.New("API_KEY environment variable must be set for security")
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected %q or %q", cfg.DBDriver, DriverPostgres, DriverSQLite)
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// UsesSQLite reports whether the event log is stored in SQLite
func (c *Config) UsesSQLite() bool {
	return c.DBDriver == DriverSQLite
}

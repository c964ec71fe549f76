package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrInvalid is wrapped by every validation failure from Load.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every setting of the bookshelf commands.
type Config struct {
	Addr           string        `env:"APP_ADDR" envDefault:"127.0.0.1:8080"`
	StorageDriver  string        `env:"STORAGE_DRIVER" envDefault:"file"`
	StorageKey     string        `env:"STORAGE_KEY" envDefault:"books"`
	DataDir        string        `env:"DATA_DIR" envDefault:"data"`
	SQLitePath     string        `env:"SQLITE_PATH" envDefault:"data/bookshelf.db"`
	DatabaseDSN    string        `env:"DB_DSN"`
	DBTimeout      time.Duration `env:"DB_TIMEOUT" envDefault:"3s"`
	AutoMigrate    bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	MigrationsDir  string        `env:"MIGRATIONS_DIR" envDefault:"db/migrations"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"40"`
	MaxBodyBytes   int64         `env:"MAX_BODY_BYTES" envDefault:"65536"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	EnableHSTS     bool          `env:"ENABLE_HSTS"`
}

// LoadEnvFiles reads .env and .env.local into the process environment.
// Variables already set by the runtime win.
func LoadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// Load reads the env files, parses the environment and validates the result.
func Load() (*Config, error) {
	LoadEnvFiles()
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "file":
		if strings.TrimSpace(c.DataDir) == "" {
			return fmt.Errorf("%w: DATA_DIR is required for the file driver", ErrInvalid)
		}
	case "sqlite":
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("%w: SQLITE_PATH is required for the sqlite driver", ErrInvalid)
		}
	case "postgres":
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return fmt.Errorf("%w: DB_DSN is required for the postgres driver", ErrInvalid)
		}
	case "memory":
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalid, c.StorageDriver)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("%w: STORAGE_KEY must not be empty", ErrInvalid)
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalid)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: MAX_BODY_BYTES must be positive", ErrInvalid)
	}
	return nil
}

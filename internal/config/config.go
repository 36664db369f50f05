package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"go-ferre-inventory/pkg/database"
	"go-ferre-inventory/pkg/storage"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all runtime settings, read from the environment.
type Config struct {
	Port string
	Env  string

	Store   StoreConfig
	DB      DatabaseConfig
	Redis   RedisConfig
	Session SessionConfig
}

// StoreConfig selects and parameterises the persistent store.
type StoreConfig struct {
	Driver    string
	Path      string
	KeyPrefix string
}

// DatabaseConfig is used by the postgres driver.
type DatabaseConfig struct {
	URL      string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// RedisConfig is used by the redis driver.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SessionConfig covers login tokens and the confirmation dialog.
type SessionConfig struct {
	JWTSecret      string
	TTL            time.Duration
	ConfirmTimeout time.Duration
}

// Load reads configuration from the environment, loading .env first when
// present. Missing .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "3000"),
		Env:  getEnv("ENV", "development"),
		Store: StoreConfig{
			Driver:    getEnv("STORE_DRIVER", DriverFile),
			Path:      getEnv("STORE_PATH", "data/inventory.json"),
			KeyPrefix: getEnv("STORE_KEY_PREFIX", "ferre_"),
		},
		DB: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", ""),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
		},
	}

	var err error
	if cfg.Session.TTL, err = parseDurationEnv("SESSION_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if cfg.Session.ConfirmTimeout, err = parseDurationEnv("CONFIRM_TIMEOUT", "2m"); err != nil {
		return nil, fmt.Errorf("invalid CONFIRM_TIMEOUT: %w", err)
	}

	switch cfg.Store.Driver {
	case DriverFile, DriverMemory, DriverRedis:
	case DriverPostgres:
		if cfg.DB.URL == "" && (cfg.DB.User == "" || cfg.DB.Name == "") {
			return nil, fmt.Errorf("postgres store needs DATABASE_URL or DB_USER and DB_NAME")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	if cfg.Env == "production" && cfg.Session.JWTSecret == "change-me-in-production" {
		return nil, fmt.Errorf("JWT_SECRET must be set in production")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func parseDurationEnv(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, def))
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be > 0")
	}
	return d, nil
}

// StorageOptions maps the store settings onto storage.Open.
func (c *Config) StorageOptions() storage.Options {
	return storage.Options{
		Driver: c.Store.Driver,
		Path:   c.Store.Path,
		DB: database.Config{
			URL:      c.DB.URL,
			Host:     c.DB.Host,
			Port:     c.DB.Port,
			User:     c.DB.User,
			Password: c.DB.Password,
			Name:     c.DB.Name,
		},
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
	}
}

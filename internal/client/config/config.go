package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"
)

// Storage backends for the session slot.
const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config holds runtime settings for the gophfinance CLI.
type Config struct {
	// APIBaseURL is the backend origin. Auth endpoints live under
	// /auth and resources under /api.
	APIBaseURL string `env:"API_BASE_URL"`

	// StorageBackend selects where the session token is persisted.
	StorageBackend string `env:"STORAGE_BACKEND"`

	DBPath string `env:"DB_PATH"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	LogLevel string `env:"LOG_LEVEL"`

	// RequestTimeout bounds each backend call. Zero means no timeout.
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.StorageBackend = StorageSQLite
	c.DBPath = "gophfinance.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.LogLevel = "info"
	c.RequestTimeout = 0
}

// LoadConfig builds a Config from defaults, environment, JSON and flags
// (see package doc for precedence) and validates the result.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.APIBaseURL)
	switch {
	case c.APIBaseURL == "":
		errs = append(errs, errors.New("api base url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid api base url %q: %w", c.APIBaseURL, err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("invalid api base url scheme %q: must be http or https", u.Scheme))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("api base url %q has no host", c.APIBaseURL))
	}

	switch c.StorageBackend {
	case StorageSQLite:
		if c.DBPath == "" {
			errs = append(errs, errors.New("db path cannot be empty when using sqlite storage"))
		}
	case StorageRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis address cannot be empty when using redis storage"))
		}
	case StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("invalid storage backend %q: must be one of %s, %s, %s",
			c.StorageBackend, StorageSQLite, StorageRedis, StorageMemory))
	}

	if c.RequestTimeout < 0 {
		errs = append(errs, fmt.Errorf("request timeout cannot be negative: %s", c.RequestTimeout))
	}

	return errors.Join(errs...)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App   AppConfig
	API   APIConfig
	State StateConfig
	Cart  CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.State.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL string        `envconfig:"STOREFRONT_API_BASE_URL" default:"http://localhost:8080"`
	Timeout time.Duration `envconfig:"STOREFRONT_API_TIMEOUT" default:"15s"`
}

// StateConfig selects the backend holding client-local state (cart, order
// history, identity keys).
type StateConfig struct {
	Driver string `envconfig:"STOREFRONT_STATE_DRIVER" default:"file"`

	// Path is used by the file and sqlite drivers. Empty means a
	// per-user default under the OS config directory.
	Path string `envconfig:"STOREFRONT_STATE_PATH"`

	// DSN is used by the postgres driver.
	DSN string `envconfig:"STOREFRONT_STATE_DSN"`

	// RedisURL is used by the redis driver.
	RedisURL string `envconfig:"STOREFRONT_STATE_REDIS_URL"`
}

func (s StateConfig) validate() error {
	switch s.Driver {
	case StateDriverFile, StateDriverMemory, StateDriverSQLite:
	case StateDriverPostgres:
		if s.DSN == "" {
			return fmt.Errorf("state driver %q requires STOREFRONT_STATE_DSN", s.Driver)
		}
	case StateDriverRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("state driver %q requires STOREFRONT_STATE_REDIS_URL", s.Driver)
		}
	default:
		return fmt.Errorf("unknown state driver %q", s.Driver)
	}
	return nil
}

type CartConfig struct {
	// HistoryLimit caps the local order-history log. Zero keeps it unbounded.
	HistoryLimit int `envconfig:"STOREFRONT_HISTORY_LIMIT" default:"0"`
}

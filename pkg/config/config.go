package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "VERDANTLEAF"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	StateBackendFile   = "file"
	StateBackendSQLite = "sqlite"
	StateBackendRedis  = "redis"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	State    StateConfig
	Redis    RedisConfig
	Shipping ShippingConfig
	Currency CurrencyConfig
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
	Env          string `envconfig:"VERDANTLEAF_APP_ENV" default:"development"`
	LogLevel     string `envconfig:"VERDANTLEAF_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VERDANTLEAF_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type APIConfig struct {
	BaseURL     string        `envconfig:"VERDANTLEAF_API_BASE_URL" default:"http://localhost:5000/api"`
	Timeout     time.Duration `envconfig:"VERDANTLEAF_API_TIMEOUT" default:"10s"`
	ListRetries int           `envconfig:"VERDANTLEAF_API_LIST_RETRIES" default:"3"`
}

type StateConfig struct {
	Backend    string `envconfig:"VERDANTLEAF_STATE_BACKEND" default:"file"`
	Dir        string `envconfig:"VERDANTLEAF_STATE_DIR" default:".verdantleaf"`
	SQLitePath string `envconfig:"VERDANTLEAF_STATE_SQLITE_PATH" default:".verdantleaf/state.db"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VERDANTLEAF_REDIS_URL"`
	Address      string        `envconfig:"VERDANTLEAF_REDIS_ADDR"`
	Password     string        `envconfig:"VERDANTLEAF_REDIS_PASSWORD"`
	DB           int           `envconfig:"VERDANTLEAF_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"VERDANTLEAF_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VERDANTLEAF_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VERDANTLEAF_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// ShippingConfig is the single source of truth for the free-shipping rule.
// The cart summary and the checkout totals both read from here.
type ShippingConfig struct {
	FreeThreshold int64 `envconfig:"VERDANTLEAF_SHIPPING_FREE_THRESHOLD" default:"500"`
	FlatFee       int64 `envconfig:"VERDANTLEAF_SHIPPING_FLAT_FEE" default:"50"`
}

type CurrencyConfig struct {
	Symbol string `envconfig:"VERDANTLEAF_CURRENCY_SYMBOL" default:"₹"`
}

func (s StateConfig) validate() error {
	switch s.Backend {
	case StateBackendFile, StateBackendSQLite, StateBackendRedis:
		return nil
	default:
		return fmt.Errorf("unknown state backend %q", s.Backend)
	}
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every configuration variable.
	EnvPrefix = "SOCKSHOP"

	StorageBackendFile  = "file"
	StorageBackendRedis = "redis"
)

type Config struct {
	App      AppConfig
	API      APIConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Checkout CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Storage.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel     string `envconfig:"SOCKSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOCKSHOP_LOG_WARN_STACK" default:"false"`
}

type APIConfig struct {
	BaseURL string        `envconfig:"SOCKSHOP_API_BASE_URL" default:"https://api.sockshop.test"`
	Timeout time.Duration `envconfig:"SOCKSHOP_API_TIMEOUT" default:"15s"`
}

type StorageConfig struct {
	Backend string `envconfig:"SOCKSHOP_STORAGE_BACKEND" default:"file"`
	Dir     string `envconfig:"SOCKSHOP_STORAGE_DIR"`
}

func (s StorageConfig) IsRedis() bool {
	return strings.EqualFold(s.Backend, StorageBackendRedis)
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case StorageBackendFile, StorageBackendRedis:
		return nil
	default:
		return fmt.Errorf("storage backend must be %q or %q", StorageBackendFile, StorageBackendRedis)
	}
}

type RedisConfig struct {
	URL          string        `envconfig:"SOCKSHOP_REDIS_URL"`
	Address      string        `envconfig:"SOCKSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SOCKSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOCKSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOCKSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOCKSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOCKSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOCKSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOCKSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CacheConfig struct {
	// MaxAge of 0 keeps entries until an explicit invalidation.
	MaxAge time.Duration `envconfig:"SOCKSHOP_CACHE_MAX_AGE" default:"0"`
}

type CheckoutConfig struct {
	ReturnURL string `envconfig:"SOCKSHOP_CHECKOUT_RETURN_URL" default:"https://shop.sockshop.test/checkout/done"`
}

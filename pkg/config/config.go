package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Redis   RedisConfig
	SQLite  SQLiteConfig
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
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorageConfig selects the persisted-store backend and names the slots the
// cart and wishlist snapshots are written under.
type StorageConfig struct {
	Backend      string `envconfig:"STOREFRONT_STORAGE_BACKEND" default:"memory"`
	Namespace    string `envconfig:"STOREFRONT_STORAGE_NAMESPACE" default:"storefront"`
	CartSlot     string `envconfig:"STOREFRONT_STORAGE_CART_SLOT" default:"cart"`
	WishlistSlot string `envconfig:"STOREFRONT_STORAGE_WISHLIST_SLOT" default:"wishlist"`
}

func (s StorageConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(s.Backend)) {
	case BackendMemory, BackendSQLite, BackendRedis:
		return nil
	}
	return fmt.Errorf("unknown storage backend %q (expected %s, %s or %s)",
		s.Backend, BackendMemory, BackendSQLite, BackendRedis)
}

// Kind returns the normalized backend name.
func (s StorageConfig) Kind() string {
	return strings.ToLower(strings.TrimSpace(s.Backend))
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SQLiteConfig struct {
	Path string `envconfig:"STOREFRONT_SQLITE_PATH" default:"storefront-state.db"`
}

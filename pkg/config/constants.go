package config

// EnvPrefix is handed to envconfig; individual fields carry explicit names so
// the prefix only matters for variables without a tag.
const EnvPrefix = "storefront"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Environment variable names, referenced from tests and bootstrap logging.
const (
	EnvAppEnv         = "STOREFRONT_APP_ENV"
	EnvLogLevel       = "STOREFRONT_LOG_LEVEL"
	EnvStorageBackend = "STOREFRONT_STORAGE_BACKEND"
	EnvRedisURL       = "STOREFRONT_REDIS_URL"
	EnvSQLitePath     = "STOREFRONT_SQLITE_PATH"
)

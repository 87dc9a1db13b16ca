package config

const (
	EnvPrefix = "storefront"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	StateDriverFile     = "file"
	StateDriverMemory   = "memory"
	StateDriverSQLite   = "sqlite"
	StateDriverPostgres = "postgres"
	StateDriverRedis    = "redis"
)

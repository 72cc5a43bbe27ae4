package config

// EnvPrefix namespaces every variable the service reads.
const EnvPrefix = "SCENTVAULT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Variables referenced outside their struct tags, mostly in error messages.
const (
	EnvAppEnv = "SCENTVAULT_APP_ENV"
	EnvPort   = "SCENTVAULT_APP_PORT"

	EnvDBDSN  = "SCENTVAULT_DB_DSN"
	EnvDBHost = "SCENTVAULT_DB_HOST"
	EnvDBUser = "SCENTVAULT_DB_USER"
	EnvDBName = "SCENTVAULT_DB_NAME"

	EnvRedisURL = "SCENTVAULT_REDIS_URL"

	EnvJWTSecret  = "SCENTVAULT_JWT_SECRET"
	EnvJWTIssuer  = "SCENTVAULT_JWT_ISSUER"
	EnvJWTExpMins = "SCENTVAULT_JWT_EXPIRATION_MINUTES"

	EnvQuoteRateLimit       = "SCENTVAULT_RATE_LIMIT_QUOTE_LIMIT"
	EnvPricingMaxPairSample = "SCENTVAULT_PRICING_MAX_PAIR_SAMPLE"
)

const sqliteFallbackDSN = "file:scentvault.db?cache=shared"

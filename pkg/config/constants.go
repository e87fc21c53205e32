package config

// EnvPrefix namespaces every environment variable consumed by the app.
const EnvPrefix = "HKFASHION"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "HKFASHION_APP_ENV"
	EnvPort       = "HKFASHION_APP_PORT"
	EnvDBDSN      = "HKFASHION_DB_DSN"
	EnvDBHost     = "HKFASHION_DB_HOST"
	EnvDBUser     = "HKFASHION_DB_USER"
	EnvDBName     = "HKFASHION_DB_NAME"
	EnvRedisURL   = "HKFASHION_REDIS_URL"
	EnvJWTSecret  = "HKFASHION_JWT_SECRET"
	EnvJWTIssuer  = "HKFASHION_JWT_ISSUER"
	EnvJWTExpMins = "HKFASHION_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

const (
	defaultPort           = 3000
	defaultEnv            = "production"
	defaultLogLevel       = "info"
	defaultDBMaxOpenConns = 5
	defaultDBMaxIdleConns = 2
	defaultCacheTTLSecs   = 15

	EnvDev  = "development"
	EnvProd = "production"
)

// Environment variable names.
const (
	EnvConfigPath     = "LIGHTS_CONFIG"
	EnvPort           = "PORT"
	EnvAppEnv         = "APP_ENV"
	EnvNodeEnv        = "NODE_ENV"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogDir         = "LOG_DIR"
	EnvAdminPassword  = "ADMIN_PASSWORD"
	EnvJWTSecret      = "JWT_SECRET"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvRedisURL       = "REDIS_URL"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"
)

// databaseURLFallbacks are consulted in order when DATABASE_URL is unset.
var databaseURLFallbacks = []string{
	"POSTGRES_URL",
	"POSTGRES_PRISMA_URL",
	"POSTGRES_URL_NON_POOLING",
}

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Session       SessionConfig
	Catalog       CatalogConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"HKFASHION_APP_ENV" required:"true"`
	Port         string `envconfig:"HKFASHION_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HKFASHION_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HKFASHION_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HKFASHION_DB_DSN"`
	Driver string `envconfig:"HKFASHION_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"HKFASHION_DB_HOST"`
	Port     int    `envconfig:"HKFASHION_DB_PORT" default:"5432"`
	User     string `envconfig:"HKFASHION_DB_USER"`
	Password string `envconfig:"HKFASHION_DB_PASSWORD"`
	Name     string `envconfig:"HKFASHION_DB_NAME"`
	SSLMode  string `envconfig:"HKFASHION_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HKFASHION_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HKFASHION_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HKFASHION_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HKFASHION_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"HKFASHION_REDIS_URL" required:"true"`
	Address      string        `envconfig:"HKFASHION_REDIS_ADDR"`
	Password     string        `envconfig:"HKFASHION_REDIS_PASSWORD"`
	DB           int           `envconfig:"HKFASHION_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"HKFASHION_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"HKFASHION_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"HKFASHION_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"HKFASHION_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HKFASHION_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"HKFASHION_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"HKFASHION_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"HKFASHION_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"HKFASHION_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"HKFASHION_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"HKFASHION_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"HKFASHION_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"HKFASHION_ARGON_KEY_LEN" default:"32"`
}

// SessionConfig controls the anonymous visitor session that carries the cart.
type SessionConfig struct {
	CookieName   string        `envconfig:"HKFASHION_SESSION_COOKIE_NAME" default:"hk_session"`
	TTL          time.Duration `envconfig:"HKFASHION_SESSION_TTL" default:"336h"`
	CookieSecure bool          `envconfig:"HKFASHION_SESSION_COOKIE_SECURE" default:"false"`
}

type CatalogConfig struct {
	PageSize     int `envconfig:"HKFASHION_CATALOG_PAGE_SIZE" default:"12"`
	HomePageSize int `envconfig:"HKFASHION_CATALOG_HOME_SIZE" default:"8"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"HKFASHION_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"HKFASHION_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"HKFASHION_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"HKFASHION_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"HKFASHION_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"HKFASHION_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate  bool `envconfig:"HKFASHION_AUTO_MIGRATE" default:"false"`
	SeedDefaults bool `envconfig:"HKFASHION_SEED_DEFAULT_PAGES" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

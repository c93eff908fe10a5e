package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix scopes every environment variable consumed by the service.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "SOUTHSTEAK_DB_DSN"
	EnvDBHost = "SOUTHSTEAK_DB_HOST"
	EnvDBUser = "SOUTHSTEAK_DB_USER"
	EnvDBName = "SOUTHSTEAK_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Admin        AdminConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	Cron         CronConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"SOUTHSTEAK_APP_ENV" required:"true"`
	Port         string `envconfig:"SOUTHSTEAK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SOUTHSTEAK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SOUTHSTEAK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SOUTHSTEAK_DB_DSN"`
	Driver string `envconfig:"SOUTHSTEAK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SOUTHSTEAK_DB_HOST"`
	LegacyPort     int    `envconfig:"SOUTHSTEAK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SOUTHSTEAK_DB_USER"`
	LegacyPassword string `envconfig:"SOUTHSTEAK_DB_PASSWORD"`
	LegacyName     string `envconfig:"SOUTHSTEAK_DB_NAME"`
	LegacySSLMode  string `envconfig:"SOUTHSTEAK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SOUTHSTEAK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SOUTHSTEAK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SOUTHSTEAK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SOUTHSTEAK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SOUTHSTEAK_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SOUTHSTEAK_REDIS_ADDR"`
	Password     string        `envconfig:"SOUTHSTEAK_REDIS_PASSWORD"`
	DB           int           `envconfig:"SOUTHSTEAK_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SOUTHSTEAK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SOUTHSTEAK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SOUTHSTEAK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SOUTHSTEAK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SOUTHSTEAK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SOUTHSTEAK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SOUTHSTEAK_JWT_ISSUER" default:"southsteak"`
	ExpirationMinutes int    `envconfig:"SOUTHSTEAK_JWT_EXPIRATION_MINUTES" default:"480"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"SOUTHSTEAK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SOUTHSTEAK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SOUTHSTEAK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SOUTHSTEAK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SOUTHSTEAK_ARGON_KEY_LEN" default:"32"`
}

// AdminConfig carries the single dashboard operator credential.
type AdminConfig struct {
	Email        string `envconfig:"SOUTHSTEAK_ADMIN_EMAIL" required:"true"`
	PasswordHash string `envconfig:"SOUTHSTEAK_ADMIN_PASSWORD_HASH" required:"true"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"SOUTHSTEAK_CART_TTL" default:"24h"`
}

type CheckoutConfig struct {
	MessengerPageID string `envconfig:"SOUTHSTEAK_MESSENGER_PAGE_ID" required:"true"`
}

type CronConfig struct {
	Secret   string        `envconfig:"SOUTHSTEAK_CRON_SECRET"`
	Interval time.Duration `envconfig:"SOUTHSTEAK_CRON_INTERVAL" default:"24h"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SOUTHSTEAK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

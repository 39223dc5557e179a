package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "ADMINECOM_APP_ENV"
	EnvPort     = "ADMINECOM_APP_PORT"
	EnvDBDSN    = "ADMINECOM_DB_DSN"
	EnvDBHost   = "ADMINECOM_DB_HOST"
	EnvDBUser   = "ADMINECOM_DB_USER"
	EnvDBName   = "ADMINECOM_DB_NAME"
	EnvRedisURL = "ADMINECOM_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Upstream     UpstreamConfig
	Reports      ReportsConfig
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
	Env          string `envconfig:"ADMINECOM_APP_ENV" required:"true"`
	Port         string `envconfig:"ADMINECOM_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ADMINECOM_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ADMINECOM_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"ADMINECOM_DB_DSN"`

	LegacyHost     string `envconfig:"ADMINECOM_DB_HOST"`
	LegacyPort     int    `envconfig:"ADMINECOM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ADMINECOM_DB_USER"`
	LegacyPassword string `envconfig:"ADMINECOM_DB_PASSWORD"`
	LegacyName     string `envconfig:"ADMINECOM_DB_NAME"`
	LegacySSLMode  string `envconfig:"ADMINECOM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ADMINECOM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ADMINECOM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ADMINECOM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ADMINECOM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ADMINECOM_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ADMINECOM_REDIS_ADDR"`
	Password     string        `envconfig:"ADMINECOM_REDIS_PASSWORD"`
	DB           int           `envconfig:"ADMINECOM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ADMINECOM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ADMINECOM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ADMINECOM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ADMINECOM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ADMINECOM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// UpstreamConfig points at the external order store the console reads from.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"ADMINECOM_UPSTREAM_BASE_URL" required:"true"`
	APIKey  string        `envconfig:"ADMINECOM_UPSTREAM_API_KEY"`
	Timeout time.Duration `envconfig:"ADMINECOM_UPSTREAM_TIMEOUT" default:"15s"`
}

type ReportsConfig struct {
	SnapshotTTL     time.Duration `envconfig:"ADMINECOM_REPORTS_SNAPSHOT_TTL" default:"5m"`
	RefreshInterval time.Duration `envconfig:"ADMINECOM_REPORTS_REFRESH_INTERVAL" default:"10m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ADMINECOM_AUTO_MIGRATE" default:"false"`
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

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "GAMESTORE"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Seed     SeedConfig
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
	Env          string `envconfig:"GAMESTORE_APP_ENV" required:"true"`
	Port         string `envconfig:"GAMESTORE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GAMESTORE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GAMESTORE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GAMESTORE_DB_DSN"`
	Driver string `envconfig:"GAMESTORE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GAMESTORE_DB_HOST"`
	LegacyPort     int    `envconfig:"GAMESTORE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GAMESTORE_DB_USER"`
	LegacyPassword string `envconfig:"GAMESTORE_DB_PASSWORD"`
	LegacyName     string `envconfig:"GAMESTORE_DB_NAME"`
	LegacySSLMode  string `envconfig:"GAMESTORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GAMESTORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GAMESTORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GAMESTORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GAMESTORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GAMESTORE_REDIS_URL"`
	Address      string        `envconfig:"GAMESTORE_REDIS_ADDR"`
	Password     string        `envconfig:"GAMESTORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"GAMESTORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GAMESTORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GAMESTORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GAMESTORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GAMESTORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GAMESTORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"GAMESTORE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"GAMESTORE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"GAMESTORE_JWT_EXPIRATION_MINUTES" default:"120"`
}

// SessionTTL returns the lifetime shared by the token, cookie, and whitelist.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GAMESTORE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GAMESTORE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GAMESTORE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GAMESTORE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GAMESTORE_ARGON_KEY_LEN" default:"32"`
}

// SeedConfig drives the one-time default manager seed in cmd/migrate.
type SeedConfig struct {
	ManagerNickname string `envconfig:"GAMESTORE_SEED_MANAGER_NICKNAME" default:"Default"`
	ManagerEmail    string `envconfig:"GAMESTORE_SEED_MANAGER_EMAIL" default:"default@gmail.com"`
	ManagerPassword string `envconfig:"GAMESTORE_SEED_MANAGER_PASSWORD" default:"12345678"`
}

var legacyDBEnvVars = []string{
	"GAMESTORE_DB_HOST",
	"GAMESTORE_DB_USER",
	"GAMESTORE_DB_NAME",
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		"GAMESTORE_DB_HOST": db.LegacyHost,
		"GAMESTORE_DB_USER": db.LegacyUser,
		"GAMESTORE_DB_NAME": db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either GAMESTORE_DB_DSN or %s are required", strings.Join(missing, ", "))
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

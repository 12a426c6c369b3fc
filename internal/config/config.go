package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	envDevelopment   = "development"
	defaultJWTSecret = "dev-secret"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Events   EventsConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name           string
	Env            string
	Host           string
	Port           string
	Version        string
	RequestTimeout time.Duration
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	ConnectTimeout time.Duration
	RunMigrations  bool
	MigrationsDir  string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig holds the token secret shared with the authentication service
// and the cost used when administrators reset passwords.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// EventsConfig controls where user administration events are published.
type EventsConfig struct {
	RedisChannel string
}

// Load reads configuration from the environment and an optional .env file.
// Malformed values are errors, not silent fallbacks.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := &envReader{}
	cfg := &Config{
		App: AppConfig{
			Name:           env.str("APP_NAME", "user-admin-service"),
			Env:            env.str("APP_ENV", envDevelopment),
			Host:           env.str("APP_HOST", "0.0.0.0"),
			Port:           env.str("APP_PORT", "8080"),
			Version:        env.str("APP_VERSION", "dev"),
			RequestTimeout: env.duration("HTTP_REQUEST_TIMEOUT", 30*time.Second),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(env.integer("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(env.integer("POSTGRES_MIN_CONNS", 2)),
			ConnectTimeout: env.duration("POSTGRES_CONNECT_TIMEOUT", 5*time.Second),
			RunMigrations:  env.boolean("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  env.str("POSTGRES_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     env.str("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       env.integer("REDIS_DB", 0),
		},
		Logger: LoggerConfig{
			Level: env.str("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             env.str("AUTH_JWT_SECRET", defaultJWTSecret),
			AccessTokenTTLMinutes: env.integer("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            env.integer("AUTH_BCRYPT_COST", 12),
		},
		Events: EventsConfig{
			RedisChannel: env.str("EVENTS_REDIS_CHANNEL", "user-admin.events"),
		},
	}
	if err := errors.Join(env.errs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.App.Env != envDevelopment && (c.Auth.JWTSecret == "" || c.Auth.JWTSecret == defaultJWTSecret) {
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be set when APP_ENV=%s", c.App.Env))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("AUTH_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	if c.Postgres.MaxConns > 0 && c.Postgres.MinConns > c.Postgres.MaxConns {
		errs = append(errs, errors.New("POSTGRES_MIN_CONNS exceeds POSTGRES_MAX_CONNS"))
	}
	if c.App.RequestTimeout < 0 {
		errs = append(errs, errors.New("HTTP_REQUEST_TIMEOUT must not be negative"))
	}
	return errors.Join(errs...)
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// envReader collects parse errors so one Load reports every bad variable.
type envReader struct {
	errs []error
}

func (r *envReader) str(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func (r *envReader) integer(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return parsed
}

func (r *envReader) boolean(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return parsed
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return parsed
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service. It is read
// once at startup and never mutated afterwards.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	GoogleBooks  GoogleBooksConfig
	Notification NotificationConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters. JWTSecret and
// TokenExpiryDays are required; Load fails when they are absent so a
// misconfigured process never serves a single request.
type AuthConfig struct {
	JWTSecret       string
	TokenExpiryDays int
	BcryptCost      int
}

// GoogleBooksConfig points at the external catalog API.
type GoogleBooksConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults
// where possible and failing fast on missing required values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtSecret, err := requireEnv("AUTH_JWT_SECRET")
	if err != nil {
		return nil, err
	}
	expiryDaysRaw, err := requireEnv("AUTH_TOKEN_EXPIRY_DAYS")
	if err != nil {
		return nil, err
	}
	expiryDays, err := strconv.Atoi(expiryDaysRaw)
	if err != nil || expiryDays <= 0 {
		return nil, fmt.Errorf("AUTH_TOKEN_EXPIRY_DAYS must be a positive integer, got %q", expiryDaysRaw)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "book-catalog-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:       jwtSecret,
			TokenExpiryDays: expiryDays,
			BcryptCost:      getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		GoogleBooks: GoogleBooksConfig{
			BaseURL:        getEnv("GOOGLE_BOOKS_BASE_URL", "https://www.googleapis.com/books/v1"),
			TimeoutSeconds: getEnvAsInt("GOOGLE_BOOKS_TIMEOUT_SECONDS", 10),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@example.com"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the outbound call timeout for the catalog API.
func (g GoogleBooksConfig) Timeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

func requireEnv(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("environment variable %s is not set or is empty", key)
	}
	return val, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingFirebaseCredentials is returned by Validate when the service
// account blob is absent. It is a hard failure, there is no fallback.
var ErrMissingFirebaseCredentials = errors.New("FIREBASE_ADMIN_SERVICE_ACCOUNT_JSON is required")

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Firebase FirebaseConfig
	Session  SessionConfig
	Redis    RedisConfig
	Security SecurityConfig
	App      AppConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	LoginPath    string
}

type DatabaseConfig struct {
	Driver   string
	DSN      string
	MaxConns int
	MinConns int
	Migrate  bool
	Timeout  time.Duration
}

type FirebaseConfig struct {
	// ServiceAccountJSON is the raw service account credential document.
	ServiceAccountJSON string
}

type SessionConfig struct {
	CookieName   string
	CheckRevoked bool
	Timeout      time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

type SecurityConfig struct {
	AllowedOrigins     []string
	BriefRatePerMinute int
	BriefRateBurst     int
}

type AppConfig struct {
	Environment    string
	LogLevel       string
	LogFormat      string
	Version        string
	MetricsEnabled bool
}

// Load reads the environment and validates everything the API server needs.
func Load() (*Config, error) {
	cfg := Read()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads the environment without validation. Tools that only touch the
// database call ValidateDatabase instead of Validate.
func Read() *Config {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvAsDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			LoginPath:    getEnv("LOGIN_PATH", "/login"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
			Migrate:  getEnvAsBool("DB_MIGRATE", true),
			Timeout:  getEnvAsDuration("DB_TIMEOUT", 5*time.Second),
		},
		Firebase: FirebaseConfig{
			ServiceAccountJSON: getEnv("FIREBASE_ADMIN_SERVICE_ACCOUNT_JSON", ""),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "session"),
			CheckRevoked: getEnvAsBool("SESSION_CHECK_REVOKED", true),
			Timeout:      getEnvAsDuration("AUTH_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("IDENTITY_CACHE_TTL", 10*time.Minute),
		},
		Security: SecurityConfig{
			AllowedOrigins:     getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			BriefRatePerMinute: getEnvAsInt("BRIEF_RATE_PER_MINUTE", 30),
			BriefRateBurst:     getEnvAsInt("BRIEF_RATE_BURST", 10),
		},
		App: AppConfig{
			Environment:    getEnv("APP_ENV", "development"),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			LogFormat:      getEnv("LOG_FORMAT", "text"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}

	return cfg
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if err := c.ValidateDatabase(); err != nil {
		return err
	}

	if strings.TrimSpace(c.Firebase.ServiceAccountJSON) == "" {
		return ErrMissingFirebaseCredentials
	}

	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE_NAME must not be empty")
	}
	if c.Session.Timeout <= 0 {
		return fmt.Errorf("AUTH_TIMEOUT must be positive")
	}

	if c.Security.BriefRatePerMinute <= 0 || c.Security.BriefRateBurst <= 0 {
		return fmt.Errorf("BRIEF_RATE_PER_MINUTE and BRIEF_RATE_BURST must be positive")
	}

	return nil
}

func (c *Config) ValidateDatabase() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if c.Database.Timeout <= 0 {
		return fmt.Errorf("DB_TIMEOUT must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "default", defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	out := make([]string, 0, 4)
	for _, p := range strings.Split(valueStr, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

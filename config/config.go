package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSecretsDir = "/run/secrets"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis backs token revocation; empty disables it.
	RedisURL string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Upstream recipe APIs
	SpoonacularAPIKey  string
	SpoonacularBaseURL string
	MealDBAPIKey       string
	MealDBBaseURL      string

	// Photo storage; an empty bucket disables uploads.
	S3BucketName string
	AWSRegion    string

	CORSAllowedOrigins []string
	LogLevel           string
}

// LoadConfig creates a new Config instance. Each value comes from the
// environment variable, then a secret file named after the lower-cased key,
// then a default.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env == Development {
		// A missing .env is fine; the process environment still applies.
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(value("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Environment:        env,
		ServerHost:         value("SERVER_HOST", "0.0.0.0"),
		ServerPort:         value("SERVER_PORT", "8080"),
		DBDriver:           value("DB_DRIVER", "postgres"),
		DBHost:             value("DB_HOST", "localhost"),
		DBPort:             value("DB_PORT", "5432"),
		DBUser:             value("DB_USER", "postgres"),
		DBPassword:         value("DB_PASSWORD", ""),
		DBName:             value("DB_NAME", "larder"),
		DBSSLMode:          value("DB_SSL_MODE", "disable"),
		SQLitePath:         value("SQLITE_PATH", "larder.db"),
		MigrationsDir:      value("MIGRATIONS_DIR", "migrations"),
		RedisURL:           value("REDIS_URL", ""),
		JWTSecret:          value("JWT_SECRET", ""),
		TokenTTL:           ttl,
		SpoonacularAPIKey:  value("SPOONACULAR_API_KEY", ""),
		SpoonacularBaseURL: value("SPOONACULAR_BASE_URL", "https://api.spoonacular.com"),
		MealDBAPIKey:       value("MEALDB_API_KEY", "1"),
		MealDBBaseURL:      value("MEALDB_BASE_URL", "https://www.themealdb.com"),
		S3BucketName:       value("S3_BUCKET_NAME", ""),
		AWSRegion:          value("AWS_REGION", "us-east-1"),
		CORSAllowedOrigins: splitList(value("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		LogLevel:           value("LOG_LEVEL", "info"),
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN returns the connection string for the configured Postgres database.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr returns the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func value(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = defaultSecretsDir
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

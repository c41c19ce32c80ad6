package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
	JWT     JWTConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Env  string
}

// StorageConfig holds the flat-file storage configuration
type StorageConfig struct {
	// DataDir is the directory holding the per-entity record files
	// (rooms.txt, tenants.txt, payments.txt, users.txt). Created on first use.
	DataDir string
}

// AuthConfig holds authentication bootstrap configuration
type AuthConfig struct {
	// DefaultAdminPassword is used to seed the admin account when the
	// user file is empty.
	DefaultAdminPassword string
}

// JWTConfig holds JWT-related configuration
type JWTConfig struct {
	SigningKey      string
	ExpirationHours int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// MetricsConfig holds metrics-related configuration
type MetricsConfig struct {
	Prefix string
}

// Load loads the application configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8086"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Storage: StorageConfig{
			DataDir: getEnv("DATA_DIR", "data"),
		},
		Auth: AuthConfig{
			DefaultAdminPassword: getEnv("AUTH_DEFAULT_ADMIN_PASSWORD", "admin123"),
		},
		JWT: JWTConfig{
			SigningKey:      getEnv("JWT_SIGNING_KEY", "kostservicesecretkey"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "kost"),
		},
	}, nil
}

// LogConfig returns fields attached to every log entry
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", "kost-service"),
		zap.String("environment", c.Server.Env),
	}
}

// Helper functions to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

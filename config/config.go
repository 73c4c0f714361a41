package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Upstream recipe API configuration. The fallback key is tried when the
	// primary key is out of quota.
	SpoonacularAPIKey         string
	SpoonacularAPIKeyFallback string
	SpoonacularAPIURL         string

	// Registration invite code that grants the ADMIN role.
	AdminInvite string

	// Comma-separated list of allowed CORS origins.
	CORSOrigins string
}

// LoadConfig creates a new Config instance from environment variables,
// falling back to file-based secrets (VAR_FILE pointing at a file) and then
// to development defaults.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getSecret("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "plateful"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getSecret("REDIS_PASSWORD", ""),
		RedisURL:      getEnv("REDIS_URL", ""),

		JWTSecret: getSecret("JWT_SECRET", ""),

		SpoonacularAPIKey:         getSecret("SPOONACULAR_API_KEY", ""),
		SpoonacularAPIKeyFallback: getSecret("SPOONACULAR_API_KEY_FALLBACK", ""),
		SpoonacularAPIURL:         getEnv("SPOONACULAR_API_URL", ""),

		AdminInvite: getSecret("ADMIN_INVITE", "let-me-in"),

		CORSOrigins: getEnv("CORS_ORIGINS", ""),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv reads an environment variable with a default.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getSecret reads a sensitive value from the environment, or from the file
// named by KEY_FILE (Docker secrets style), with a default.
func getSecret(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				return v
			}
		}
	}
	return fallback
}

// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ServerConfig holds all server-related settings
type ServerConfig struct {
	Port           int
	Host           string
	MetricsEnabled bool
}

// DatabaseConfig holds document-store configuration settings
type DatabaseConfig struct {
	Type string // "mongo" or "memory" (memory is for local development/tests)
	URI  string
	Name string
}

// AuthConfig holds bearer-token verification settings
type AuthConfig struct {
	JWTSecret string
}

// PaymentConfig holds payment-provider settings
type PaymentConfig struct {
	StripeSecretKey string
}

// Config holds the complete application configuration
type Config struct {
	Server         *ServerConfig
	Database       *DatabaseConfig
	Auth           *AuthConfig
	Payment        *PaymentConfig
	AllowedOrigins []string
	Debug          bool
}

// DefaultConfig provides default server settings
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Port:           3000,
		Host:           "0.0.0.0",
		MetricsEnabled: true,
	}
}

// DefaultDatabaseConfig provides default database settings
func DefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type: "mongo",
		Name: "ThreadQube",
	}
}

// LoadConfig loads configuration from environment variables and applies defaults
func LoadConfig() (*Config, error) {
	// Try to load .env file from multiple possible locations
	envLocations := []string{
		".env",       // Current directory
		"../../.env", // Project root when running from cmd/api
	}

	envLoaded := false
	for _, location := range envLocations {
		if err := godotenv.Load(location); err == nil {
			envLoaded = true
			break
		}
	}

	if !envLoaded {
		// Silent failure if no .env exists, which is fine in deployment
		_ = godotenv.Load()
	}

	// Start with default server config
	serverConfig := DefaultConfig()

	// Override server settings from environment if provided
	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil {
			serverConfig.Port = port
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		serverConfig.Host = host
	}

	if metricsEnabled := os.Getenv("METRICS_ENABLED"); metricsEnabled != "" {
		serverConfig.MetricsEnabled = metricsEnabled == "true"
	}

	// Initialize database config
	dbConfig := DefaultDatabaseConfig()

	if dbType := os.Getenv("DB_TYPE"); dbType != "" {
		dbConfig.Type = dbType
	}

	if name := os.Getenv("DB_NAME"); name != "" {
		dbConfig.Name = name
	}

	switch dbConfig.Type {
	case "mongo":
		// Prioritize MONGODB_URI if provided
		if uri := os.Getenv("MONGODB_URI"); uri != "" {
			dbConfig.URI = uri
		} else {
			// Fall back to individual credentials, matching the original
			// Atlas-style connection string
			user := os.Getenv("DB_USER")
			if user == "" {
				return nil, fmt.Errorf("DB_USER environment variable is required when MONGODB_URI is not set")
			}
			pass := os.Getenv("DB_PASS")
			if pass == "" {
				return nil, fmt.Errorf("DB_PASS environment variable is required when MONGODB_URI is not set")
			}
			host := getEnvOrDefault("DB_HOST", "localhost:27017")
			dbConfig.URI = fmt.Sprintf("mongodb://%s:%s@%s/?retryWrites=true&w=majority", user, pass, host)
		}
	case "memory":
		// Nothing to configure; the in-memory store takes no credentials.
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q (expected \"mongo\" or \"memory\")", dbConfig.Type)
	}

	authConfig := &AuthConfig{
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if authConfig.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	paymentConfig := &PaymentConfig{
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
	}

	// Initialize complete config
	config := &Config{
		Server:         serverConfig,
		Database:       dbConfig,
		Auth:           authConfig,
		Payment:        paymentConfig,
		AllowedOrigins: []string{"*"}, // Default to allow all origins
		Debug:          false,
	}

	// Override remaining settings from environment if provided
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.AllowedOrigins = strings.Split(origins, ",")
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		config.Debug = true
	}

	return config, nil
}

// Helper function to get environment variable with default fallback
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Package config manages client configuration.
package config

import (
	"os"
	"time"
)

// Config holds the settings shared by every command.
type Config struct {
	// BaseURL of the HBnB API including the /api/v1 prefix.
	BaseURL string

	// Timeout for each HTTP request.
	Timeout time.Duration

	// TokenDir is where the credential file lives.
	TokenDir string
}

// Load reads configuration from environment variables with defaults
// matching the development server.
func Load() *Config {
	return &Config{
		BaseURL:  getEnv("HBNB_BASE_URL", "http://127.0.0.1:5000/api/v1"),
		Timeout:  getDurationEnv("HBNB_TIMEOUT", 30*time.Second),
		TokenDir: getEnv("HBNB_TOKEN_DIR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

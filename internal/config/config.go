package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Environment
	Env string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Remote categorizer
	GeminiModel        string
	ClassifyTimeoutDur time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env: getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "voxpense"),
		DBPassword: getEnv("DB_PASSWORD", "voxpense"),
		DBName:     getEnv("DB_NAME", "voxpense"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	// Parse the remote-classification timeout
	timeoutStr := getEnv("CLASSIFY_TIMEOUT", "5s")
	timeoutDur, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid CLASSIFY_TIMEOUT value '%s', falling back to 5s\n", timeoutStr)
		timeoutDur = 5 * time.Second
	}
	config.ClassifyTimeoutDur = timeoutDur

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

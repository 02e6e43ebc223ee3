package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	MONGOSTRING string
	DBName      string
	SeedOnStart bool
}

// LoadConfig loads configuration from .env file
func LoadConfig() *AppConfig {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: Error loading .env file (might not exist in production): %v", err)
	}

	cfg := &AppConfig{
		Port:        getEnv("PORT", "3000"),
		MONGOSTRING: getEnv("MONGOSTRING", ""),
		DBName:      getEnv("DB_NAME", "staff-administration-db"),
		SeedOnStart: getEnv("SEED_ON_START", "false") == "true",
	}

	// GetCollection resolves the database through this package-level name.
	DBName = cfg.DBName

	return cfg
}

// Helper function to get environment variable or fallback to default
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

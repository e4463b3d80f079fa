package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the per-namespace asset slots.
const (
	StorageDatabase = "database"
	StorageBadger   = "badger"
	StorageMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DBDriver   string
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// MigrationsPath is the directory holding the PostgreSQL SQL migrations.
	MigrationsPath string

	// Asset storage
	StorageBackend string
	BadgerPath     string
	StorageBaseKey string
	SeedDemoData   bool

	// Portfolio presentation
	Currency    string
	RecentLimit int

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Maintenance endpoints (scheduled revaluation)
	MaintenanceAPIKey string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBPath:     getEnv("DB_PATH", "assetvault.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "assetvault"),
		DBPassword: getEnv("DB_PASSWORD", "assetvault"),
		DBName:     getEnv("DB_NAME", "assetvault"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageDatabase)),
		BadgerPath:     getEnv("BADGER_PATH", "data/badger"),
		StorageBaseKey: getEnv("STORAGE_BASE_KEY", "personal_assets"),
		SeedDemoData:   getBool("SEED_DEMO_DATA", true),

		Currency:    strings.ToUpper(getEnv("CURRENCY", "USD")),
		RecentLimit: getInt("RECENT_LIMIT", 5),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		MaintenanceAPIKey: getEnv("MAINTENANCE_API_KEY", ""),
	}

	// Parse JWT expiration duration
	expStr := getEnv("JWT_EXPIRES_IN", "24h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 24h\n", expStr)
		expDur = 24 * time.Hour
	}
	config.JWTExpirationDur = expDur

	switch config.StorageBackend {
	case StorageDatabase, StorageBadger, StorageMemory:
	default:
		log.Printf("Warning: unknown STORAGE_BACKEND '%s', falling back to %s\n", config.StorageBackend, StorageDatabase)
		config.StorageBackend = StorageDatabase
	}

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

// Set replaces the active configuration. Tests use it to pin secrets and limits.
func Set(cfg *Config) {
	appConfig = cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, v, defaultValue)
		return defaultValue
	}
	return b
}

func getInt(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, v, defaultValue)
		return defaultValue
	}
	return n
}

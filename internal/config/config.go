package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Corpus backends selectable via CORPUS_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config is the whole application configuration, populated from
// environment variables.
type Config struct {
	App      AppConfig
	Corpus   CorpusConfig
	Database DatabaseConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

// CorpusConfig selects where the dialogue corpus lives. The memory
// backend loads the CSV files from Dir at startup; the postgres
// backend uses DatabaseConfig.
type CorpusConfig struct {
	Backend string
	Dir     string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	MaxConns int
	MinConns int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Movie Dialogue API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Corpus: CorpusConfig{
			Backend: getEnv("CORPUS_BACKEND", BackendMemory),
			Dir:     getEnv("CORPUS_DIR", "data"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "dialogue"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
			MinConns: getEnvInt("DB_MIN_CONNS", 2),
		},
	}

	switch cfg.Corpus.Backend {
	case BackendMemory, BackendPostgres:
	default:
		return nil, fmt.Errorf("invalid CORPUS_BACKEND %q", cfg.Corpus.Backend)
	}
	return cfg, nil
}

// Database connect/retry knobs; stable enough to not be configurable.
const (
	DBMaxRetries     = 3
	DBRetryDelay     = time.Second
	DBConnectTimeout = 5 * time.Second
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the pipeline.
// Every environment variable is read here and nowhere else; components
// receive the values they need by parameter.
type Config struct {
	Env string // development, staging, production

	// Blob store (data lake)
	Blob BlobConfig

	// Upstream report source
	Report ReportConfig

	// Optional run-history store
	Database DatabaseConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// BlobConfig holds object store configuration.
type BlobConfig struct {
	// ConnectionString carries endpoint and credentials as a
	// semicolon-separated k=v list (S3/MinIO compatible). Empty means
	// the default AWS credential chain.
	ConnectionString string
	Container        string
	Region           string

	// Bronze object location. Silver and gold folders are fixed
	// constants owned by their stages.
	BronzeFolder string
	BronzeFile   string
}

// ReportConfig holds upstream API configuration.
type ReportConfig struct {
	URL     string
	Timeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration for the run-history
// recorder. An empty URL disables recording.
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// Load reads configuration from environment variables. This is the
// only function that calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Blob: BlobConfig{
			ConnectionString: getEnv("CONNECTION_STRING", ""),
			Container:        getEnv("CONTAINER_NAME", ""),
			Region:           getEnv("AWS_REGION", "us-east-1"),
			BronzeFolder:     getEnv("BLOB_FOLDER", "covid-bronze"),
			BronzeFile:       getEnv("BLOB_FILE_NAME", "covid_cases.json"),
		},

		Report: ReportConfig{
			URL:     getEnv("REPORT_URL", "https://covid19-brazil-api.now.sh/api/report/v1"),
			Timeout: getEnvAsDuration("REPORT_TIMEOUT", "30s"),
		},

		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 5),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 1),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Blob.Container == "" {
		return fmt.Errorf("CONTAINER_NAME is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
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
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for card mappings
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	// HTTP server
	ListenAddr  string
	CORSOrigins []string

	// Mapping storage
	StorageType      string
	DataDir          string
	DBPath           string
	MappingCacheSize int

	// Ledger access; an empty LedgerURL selects the in-memory ledger
	LedgerURL       string
	ContractAddress string

	// Reveal policy
	VerifyCommunityCards bool
	AllowFoldedReveal    bool

	// Showdown archive
	ElasticsearchURL      string
	ElasticsearchUsername string
	ElasticsearchPassword string
	ElasticsearchIndex    string
	ArchiveRooms          []string
	ArchiveInterval       time.Duration

	// Environment
	Environment string // "development" or "production"
	LogLevel    string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))
	cfg := &Config{
		ListenAddr:            getEnvWithDefault("LISTEN_ADDR", ":8080"),
		CORSOrigins:           splitList(os.Getenv("CORS_ORIGINS")),
		StorageType:           getEnvWithDefault("STORAGE_TYPE", StorageMemory),
		DataDir:               dataDir,
		DBPath:                getEnvWithDefault("DB_PATH", filepath.Join(dataDir, "cardvault.db")),
		LedgerURL:             strings.TrimRight(os.Getenv("LEDGER_URL"), "/"),
		ContractAddress:       os.Getenv("CONTRACT_ADDRESS"),
		ElasticsearchURL:      os.Getenv("ELASTICSEARCH_URL"),
		ElasticsearchUsername: os.Getenv("ELASTICSEARCH_USERNAME"),
		ElasticsearchPassword: os.Getenv("ELASTICSEARCH_PASSWORD"),
		ElasticsearchIndex:    getEnvWithDefault("ELASTICSEARCH_INDEX_PREFIX", "cardvault"),
		ArchiveRooms:          splitList(os.Getenv("ARCHIVE_ROOMS")),
		Environment:           getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:              getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if cfg.MappingCacheSize, err = strconv.Atoi(getEnvWithDefault("MAPPING_CACHE_SIZE", "1024")); err != nil {
		return nil, fmt.Errorf("MAPPING_CACHE_SIZE: %w", err)
	}
	if cfg.VerifyCommunityCards, err = strconv.ParseBool(getEnvWithDefault("VERIFY_COMMUNITY_CARDS", "true")); err != nil {
		return nil, fmt.Errorf("VERIFY_COMMUNITY_CARDS: %w", err)
	}
	if cfg.AllowFoldedReveal, err = strconv.ParseBool(getEnvWithDefault("ALLOW_FOLDED_REVEAL", "false")); err != nil {
		return nil, fmt.Errorf("ALLOW_FOLDED_REVEAL: %w", err)
	}
	if cfg.ArchiveInterval, err = time.ParseDuration(getEnvWithDefault("ARCHIVE_INTERVAL", "30s")); err != nil {
		return nil, fmt.Errorf("ARCHIVE_INTERVAL: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.StorageType == StorageSQLite {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// validate checks if the configuration is usable
func (c *Config) validate() error {
	if c.StorageType != StorageMemory && c.StorageType != StorageSQLite {
		return fmt.Errorf("STORAGE_TYPE must be %q or %q, got %q", StorageMemory, StorageSQLite, c.StorageType)
	}
	if c.MappingCacheSize <= 0 {
		return fmt.Errorf("MAPPING_CACHE_SIZE must be positive")
	}
	if c.LedgerURL != "" && c.ContractAddress == "" {
		return fmt.Errorf("CONTRACT_ADDRESS is required when LEDGER_URL is set")
	}
	if c.ArchiveInterval <= 0 {
		return fmt.Errorf("ARCHIVE_INTERVAL must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

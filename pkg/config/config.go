package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	CMS        CMSConfig
	Enrichment EnrichmentConfig
	Logging    LoggingConfig
	OTEL       OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CMSConfig holds settings for the CMS open-data API client
type CMSConfig struct {
	BaseURL  string
	DataYear string

	// Dataset ID overrides; empty means use the built-in table.
	ProviderDatasetID  string
	ServiceDatasetID   string
	GeographyDatasetID string

	HTTPTimeout time.Duration
	PageDelay   time.Duration
	MaxPages    int

	CacheBackend string // "memory" or "redis"
	CacheTTL     time.Duration
}

// EnrichmentConfig bounds the per-NPI service lookups of an indication search
type EnrichmentConfig struct {
	MaxLookups     int
	Concurrency    int
	Timeout        time.Duration
	MaxProviders   int
	MaxServiceRows int
}

// LoggingConfig holds logger configuration
type LoggingConfig struct {
	Environment string
	Level       string
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		CMS: CMSConfig{
			BaseURL:            getEnv("CMS_BASE_URL", "https://data.cms.gov/data-api/v1/dataset"),
			DataYear:           getEnv("CMS_DATA_YEAR", "2022"),
			ProviderDatasetID:  getEnv("CMS_PROVIDER_DATASET_ID", ""),
			ServiceDatasetID:   getEnv("CMS_SERVICE_DATASET_ID", ""),
			GeographyDatasetID: getEnv("CMS_GEOGRAPHY_DATASET_ID", ""),
			HTTPTimeout:        getEnvAsDuration("CMS_HTTP_TIMEOUT", 30*time.Second),
			PageDelay:          getEnvAsDuration("CMS_PAGE_DELAY", 100*time.Millisecond),
			MaxPages:           getEnvAsInt("CMS_MAX_PAGES", 50),
			CacheBackend:       getEnv("CMS_CACHE_BACKEND", "memory"),
			CacheTTL:           getEnvAsDuration("CMS_CACHE_TTL", 30*time.Minute),
		},
		Enrichment: EnrichmentConfig{
			MaxLookups:     getEnvAsInt("ENRICH_MAX_LOOKUPS", 10),
			Concurrency:    getEnvAsInt("ENRICH_CONCURRENCY", 4),
			Timeout:        getEnvAsDuration("ENRICH_TIMEOUT", 0),
			MaxProviders:   getEnvAsInt("ENRICH_MAX_PROVIDERS", 500),
			MaxServiceRows: getEnvAsInt("ENRICH_MAX_SERVICE_ROWS", 100),
		},
		Logging: LoggingConfig{
			Environment: getEnv("APP_ENV", "production"),
			Level:       getEnv("LOG_LEVEL", "info"),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "physician-search"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.CMS.CacheBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported CMS_CACHE_BACKEND %q (want memory or redis)", c.CMS.CacheBackend)
	}
	if c.CMS.MaxPages < 1 || c.CMS.MaxPages > 50 {
		return fmt.Errorf("CMS_MAX_PAGES must be between 1 and 50, got %d", c.CMS.MaxPages)
	}
	if c.CMS.PageDelay < 100*time.Millisecond {
		return fmt.Errorf("CMS_PAGE_DELAY must be at least 100ms, got %s", c.CMS.PageDelay)
	}
	if c.CMS.CacheTTL < time.Second {
		return fmt.Errorf("CMS_CACHE_TTL must be at least 1s, got %s", c.CMS.CacheTTL)
	}
	// The fan-out cap is a hard bound on outbound requests per indication search.
	if c.Enrichment.MaxLookups < 0 || c.Enrichment.MaxLookups > 10 {
		return fmt.Errorf("ENRICH_MAX_LOOKUPS must be between 0 and 10, got %d", c.Enrichment.MaxLookups)
	}
	if c.Enrichment.Concurrency < 1 {
		c.Enrichment.Concurrency = 1
	}
	return nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ServerAddr returns the listen address
func (c *ServerConfig) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

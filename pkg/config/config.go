package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Generator GeneratorConfig
	Worker    WorkerConfig
	Catalog   CatalogConfig
	Env       string
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeneratorConfig holds the text generator (OpenAI compatible chat API) configuration
type GeneratorConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	Timeout         time.Duration
	MaxAttempts     int
	BreakerFailures int
}

// WorkerConfig sizes the background generation pool
type WorkerConfig struct {
	Count      int
	QueueSize  int
	RunTimeout time.Duration
}

// CatalogConfig holds catalog cache configuration
type CatalogConfig struct {
	CacheTTL  time.Duration
	LocalSize int
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
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "coachplan"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Generator: GeneratorConfig{
			APIKey:          getEnv("GENERATOR_API_KEY", ""),
			BaseURL:         getEnv("GENERATOR_BASE_URL", "https://api.deepseek.com/v1"),
			Model:           getEnv("GENERATOR_MODEL", "deepseek-chat"),
			Timeout:         getEnvAsDuration("GENERATOR_TIMEOUT", 60*time.Second),
			MaxAttempts:     getEnvAsInt("GENERATOR_MAX_ATTEMPTS", 3),
			BreakerFailures: getEnvAsInt("GENERATOR_BREAKER_FAILURES", 5),
		},
		Worker: WorkerConfig{
			Count:      getEnvAsInt("WORKER_COUNT", 4),
			QueueSize:  getEnvAsInt("WORKER_QUEUE_SIZE", 64),
			RunTimeout: getEnvAsDuration("GENERATION_RUN_TIMEOUT", 5*time.Minute),
		},
		Catalog: CatalogConfig{
			CacheTTL:  getEnvAsDuration("CATALOG_CACHE_TTL", 300*time.Second),
			LocalSize: getEnvAsInt("CATALOG_LOCAL_CACHE_SIZE", 256),
		},
		Env: getEnv("APP_ENV", "development"),
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "coachplan"),
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
	if c.Worker.Count <= 0 {
		return fmt.Errorf("WORKER_COUNT must be positive, got %d", c.Worker.Count)
	}
	if c.Worker.QueueSize < 0 {
		return fmt.Errorf("WORKER_QUEUE_SIZE must not be negative, got %d", c.Worker.QueueSize)
	}
	if c.Generator.MaxAttempts <= 0 {
		return fmt.Errorf("GENERATOR_MAX_ATTEMPTS must be positive, got %d", c.Generator.MaxAttempts)
	}
	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
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

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// getEnvAsDuration accepts Go duration strings ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

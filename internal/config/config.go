package config

import (
	"fmt"
	"os"
	"strconv"
)

// Record store drivers.
const (
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// minSessionSecret is the shortest accepted session signing key, in bytes.
const minSessionSecret = 32

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Upload   UploadConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host       string
	Port       int
	CORSOrigin string
}

// StoreConfig selects where collections are persisted.
type StoreConfig struct {
	Driver   string // "bolt", "postgres" or "memory"
	BoltPath string
}

// DatabaseConfig holds database-related configuration. Only used by the
// postgres store driver.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds session and login configuration.
type AuthConfig struct {
	SessionSecret string
	SessionMaxAge int // seconds
	SessionSecure bool
	AdminUsername string
	AdminPassword string
	// ProtectAll gates every API route instead of only products and dashboard.
	ProtectAll bool
}

// UploadConfig holds limits and the local directory for uploaded files.
type UploadConfig struct {
	Dir           string
	URLPrefix     string
	ImageMaxBytes int64
	CSVMaxBytes   int64
}

// S3Config holds AWS S3 configuration for product images and logos.
type S3Config struct {
	Enabled   bool
	Bucket    string
	Region    string
	Prefix    string // Path prefix within bucket (e.g., "images/")
	PublicURL string // Base URL objects are served from; defaults to the bucket's virtual-hosted URL
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:       getEnv("SERVER_HOST", "0.0.0.0"),
			Port:       getEnvAsInt("SERVER_PORT", 8080),
			CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),
		},
		Store: StoreConfig{
			Driver:   getEnv("STORE_DRIVER", StoreBolt),
			BoltPath: getEnv("BOLT_PATH", "data/inventory.db"),
		},
		Database: LoadDatabase(),
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			SessionSecret: getEnv("SESSION_SECRET", ""),
			SessionMaxAge: getEnvAsInt("SESSION_MAX_AGE", 7*24*60*60),
			SessionSecure: getEnvAsBool("SESSION_SECURE", false),
			AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			ProtectAll:    getEnvAsBool("AUTH_PROTECT_ALL", false),
		},
		Upload: UploadConfig{
			Dir:           getEnv("UPLOAD_DIR", "uploads"),
			URLPrefix:     getEnv("UPLOAD_URL_PREFIX", "/uploads/"),
			ImageMaxBytes: getEnvAsInt64("IMAGE_MAX_BYTES", 5<<20),
			CSVMaxBytes:   getEnvAsInt64("CSV_MAX_BYTES", 10<<20),
		},
		S3: S3Config{
			Enabled:   getEnvAsBool("S3_ENABLED", false),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "us-east-1"),
			Prefix:    getEnv("S3_PREFIX", "images/"),
			PublicURL: getEnv("S3_PUBLIC_URL", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads the postgres settings from environment variables.
func LoadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            getEnvAsInt("DB_PORT", 5432),
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Database:        getEnv("DB_NAME", "stockroom"),
		MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 10),
		MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 1),
		MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Store.Driver {
	case StoreBolt:
		if c.Store.BoltPath == "" {
			return fmt.Errorf("bolt path is required for the bolt store")
		}
	case StorePostgres:
		if err := c.Database.Validate(); err != nil {
			return err
		}
	case StoreMemory:
	default:
		return fmt.Errorf("invalid store driver: %s (must be bolt, postgres, or memory)", c.Store.Driver)
	}

	if len(c.Auth.SessionSecret) < minSessionSecret {
		return fmt.Errorf("session secret must be at least %d bytes", minSessionSecret)
	}

	if c.Auth.SessionMaxAge < 1 {
		return fmt.Errorf("session max age must be positive")
	}

	if c.Auth.AdminUsername == "" {
		return fmt.Errorf("admin username is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.Upload.ImageMaxBytes < 1 || c.Upload.CSVMaxBytes < 1 {
		return fmt.Errorf("upload size limits must be positive")
	}

	// The local directory also backs S3 when uploads fall back.
	if c.Upload.Dir == "" {
		return fmt.Errorf("upload directory is required")
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// Validate checks the settings the postgres store driver needs.
func (c *DatabaseConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid database port: %d", c.Port)
	}

	if c.User == "" {
		return fmt.Errorf("database user is required")
	}

	if c.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.MaxConnections < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}

	if c.MinConnections < 1 {
		return fmt.Errorf("database min connections must be at least 1")
	}

	if c.MinConnections > c.MaxConnections {
		return fmt.Errorf("database min connections cannot exceed max connections")
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64 retrieves an environment variable as a 64-bit integer or returns a default value.
func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

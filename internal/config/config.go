// Package config handles application configuration loading from environment
// variables and an optional YAML file. It provides a centralized Config
// struct used across the application.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Gateway modes select where category reorders are persisted.
const (
	GatewayAPI      = "api"
	GatewayDatabase = "database"
)

// devJWTSecret is only accepted outside production.
const devJWTSecret = "development-only-jwt-secret-change-me"

// Config holds all application configuration values.
type Config struct {
	// Server settings
	Host      string
	Port      string
	Env       string // "development", "production", "testing"
	LogFormat string // "text" or "json"

	// Remote blog API
	APIBaseURL      string
	APITimeout      time.Duration
	APIServiceToken string
	GatewayMode     string // "api" or "database"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string
	ValkeyDB       int

	// Identity provider tokens
	JWTSecret string
	JWTIssuer string

	// S3-compatible object storage for uploaded images
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3PublicURL string

	TreeCacheTTL time.Duration
}

// source resolves a key from the environment first, then from the file.
type source struct {
	file map[string]string
}

// Load reads configuration from environment variables, falling back to the
// YAML file at path (or CONFIG_FILE when path is empty) and then to
// development defaults. Returns an error if critical values are missing in
// production mode.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	src := source{}
	if path != "" {
		file, err := readFile(path)
		if err != nil {
			return nil, err
		}
		src.file = file
	}

	cfg := &Config{
		Host:      src.get("APP_HOST", "0.0.0.0"),
		Port:      src.get("APP_PORT", "8080"),
		Env:       src.get("APP_ENV", "development"),
		LogFormat: src.get("LOG_FORMAT", ""),

		APIBaseURL:      src.get("API_BASE_URL", "http://localhost:3000/api"),
		APIServiceToken: src.get("API_SERVICE_TOKEN", ""),
		GatewayMode:     src.get("GATEWAY_MODE", GatewayAPI),

		DBHost:     src.get("POSTGRES_HOST", "localhost"),
		DBPort:     src.get("POSTGRES_PORT", "5432"),
		DBUser:     src.get("POSTGRES_USER", "blogconsole"),
		DBPassword: src.get("POSTGRES_PASSWORD", "changeme"),
		DBName:     src.get("POSTGRES_DB", "blogconsole"),

		ValkeyHost:     src.get("VALKEY_HOST", "localhost"),
		ValkeyPort:     src.get("VALKEY_PORT", "6379"),
		ValkeyPassword: src.get("VALKEY_PASSWORD", ""),

		JWTSecret: src.get("AUTH_JWT_SECRET", ""),
		JWTIssuer: src.get("AUTH_ISSUER", ""),

		S3Endpoint:  src.get("S3_ENDPOINT", ""),
		S3Region:    src.get("S3_REGION", "us-east-1"),
		S3AccessKey: src.get("S3_ACCESS_KEY", ""),
		S3SecretKey: src.get("S3_SECRET_KEY", ""),
		S3Bucket:    src.get("S3_BUCKET", ""),
		S3PublicURL: src.get("S3_PUBLIC_URL", ""),
	}

	var err error
	if cfg.APITimeout, err = src.duration("API_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.TreeCacheTTL, err = src.duration("TREE_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ValkeyDB, err = strconv.Atoi(src.get("VALKEY_DB", "0")); err != nil {
		return nil, fmt.Errorf("parsing VALKEY_DB: %w", err)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDev() {
			cfg.LogFormat = "text"
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks cross-field rules and fills development-only defaults.
func (c *Config) validate() error {
	switch c.GatewayMode {
	case GatewayAPI:
		if c.APIBaseURL == "" {
			return fmt.Errorf("API_BASE_URL is required in api gateway mode")
		}
	case GatewayDatabase:
	default:
		return fmt.Errorf("GATEWAY_MODE must be %q or %q, got %q", GatewayAPI, GatewayDatabase, c.GatewayMode)
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}

	if c.Env == "production" {
		if c.DBPassword == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if c.JWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET must be set in production")
		}
	}
	if c.JWTSecret == "" {
		c.JWTSecret = devJWTSecret
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// S3Enabled reports whether image uploads are configured.
func (c *Config) S3Enabled() bool {
	return c.S3Endpoint != "" && c.S3Bucket != ""
}

var envRef = regexp.MustCompile(`\$\{([^}]+)\}`)

// readFile parses a flat YAML mapping of configuration keys to values.
// ${VAR} references inside the file are expanded from the environment.
func readFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	expanded := envRef.ReplaceAllStringFunc(string(data), func(match string) string {
		return os.Getenv(envRef.FindStringSubmatch(match)[1])
	})

	var values map[string]string
	if err := yaml.Unmarshal([]byte(expanded), &values); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return values, nil
}

// get returns the environment value of key, else the file value, else
// fallback. Empty values count as unset.
func (s source) get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := s.file[key]; v != "" {
		return v
	}
	return fallback
}

func (s source) duration(key string, fallback time.Duration) (time.Duration, error) {
	raw := s.get(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing %s %q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, raw)
	}
	return d, nil
}

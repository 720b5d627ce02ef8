package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the Universe Builder engine.
// Configuration can come from a YAML file (config.yaml) or environment
// variables. Environment variables always override YAML values. Secrets
// (DATABASE_URL, GOOGLE_API_KEY) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8000"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	Version  string `yaml:"-"` // Set at load time, not from config

	// Database configuration (PostgreSQL)
	Database DatabaseConfig `yaml:"database"`

	// AI provider configuration
	AI AIConfig `yaml:"ai"`
}

// DatabaseConfig holds PostgreSQL database configuration.
type DatabaseConfig struct {
	// URL is the full connection string. Secret - env only.
	URL string `yaml:"-" env:"DATABASE_URL"`

	Host           string `yaml:"host" env:"PGHOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PGPORT" env-default:"5432"`
	User           string `yaml:"user" env:"PGUSER" env-default:"universe"`
	Password       string `yaml:"-" env:"PGPASSWORD"` // Secret - not in YAML
	Database       string `yaml:"database" env:"PGDATABASE" env-default:"universe_builder"`
	SSLMode        string `yaml:"ssl_mode" env:"PGSSLMODE" env-default:"disable"`
	MaxConnections int32  `yaml:"max_connections" env:"PGMAX_CONNECTIONS" env-default:"25"`

	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

// AIConfig holds settings for the external generation provider.
type AIConfig struct {
	// APIKey is the server-level Gemini credential. Secret - env only.
	// Requests may override it per call via the X-User-API-Key header.
	APIKey string `yaml:"-" env:"GOOGLE_API_KEY"`

	// BaseURL is the OpenAI-compatible endpoint of the provider.
	BaseURL string `yaml:"base_url" env:"AI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta/openai"`

	// Models is a comma-separated whitelist; the first entry is the default.
	ModelsStr string `yaml:"models" env:"AI_MODELS" env-default:"gemini-2.5-flash-lite,gemini-2.5-flash,gemini-2.5-pro"`

	// RequestTimeout bounds a single provider call so a slow provider cannot
	// hold a request open indefinitely.
	RequestTimeout time.Duration `yaml:"request_timeout" env:"AI_REQUEST_TIMEOUT" env-default:"120s"`

	// Models is the parsed list from ModelsStr (not from config file).
	Models []string `yaml:"-"`
}

// IsConfigured returns true if a server-level API key is present.
func (c *AIConfig) IsConfigured() bool {
	return c.APIKey != ""
}

// DefaultModel returns the first whitelisted model.
func (c *AIConfig) DefaultModel() string {
	if len(c.Models) == 0 {
		return ""
	}
	return c.Models[0]
}

// AllowsModel reports whether name is in the whitelist. The empty string is
// allowed and means "use the default model".
func (c *AIConfig) AllowsModel(name string) bool {
	if name == "" {
		return true
	}
	for _, m := range c.Models {
		if m == name {
			return true
		}
	}
	return false
}

// Load reads configuration from config.yaml with environment variable
// overrides. When config.yaml does not exist, configuration comes from the
// environment alone. The version parameter is injected at build time.
func Load(version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if _, err := os.Stat("config.yaml"); err == nil {
		if err := cleanenv.ReadConfig("config.yaml", cfg); err != nil {
			return nil, fmt.Errorf("failed to read config.yaml: %w", err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	cfg.AI.Models = parseModels(cfg.AI.ModelsStr)

	return cfg, nil
}

// parseModels splits the comma-separated model whitelist.
func parseModels(value string) []string {
	var models []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			models = append(models, trimmed)
		}
	}
	return models
}

// ConnectionString returns the PostgreSQL connection string, preferring the
// full DATABASE_URL when set.
func (c *DatabaseConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}
